//go:build !pcap
// +build !pcap

package interference

import (
	"fmt"

	"github.com/banshee-data/radarsim/internal/simradar/waveform"
)

// LoadPCAPArbMod is a stub when the pcap build tag is absent (libpcap
// unavailable), mirroring internal/lidar/network/pcap_realtime_stub.go.
func LoadPCAPArbMod(pcapFile string, udpPort int, sampleRate float64) (waveform.ArbMod, error) {
	return waveform.ArbMod{}, fmt.Errorf("interference: pcap replay not compiled in (requires pcap build tag)")
}
