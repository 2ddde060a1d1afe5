//go:build pcap
// +build pcap

package interference

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/banshee-data/radarsim/internal/simradar/waveform"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
)

// LoadPCAPArbMod replays a captured UDP IQ stream as an interference
// source's intra-pulse modulation, the offline counterpart to
// internal/lidar/network/pcap_realtime.go's live replay: instead of
// feeding a frame builder, each UDP payload is decoded as interleaved
// little-endian float32 (I, Q) pairs and appended to an ArbMod table
// timestamped at sampleRate, so an interferer's waveform can be sourced
// from a capture instead of a closed-form Table.
func LoadPCAPArbMod(pcapFile string, udpPort int, sampleRate float64) (waveform.ArbMod, error) {
	if sampleRate <= 0 {
		return waveform.ArbMod{}, fmt.Errorf("interference: pcap replay sample rate must be positive, got %g", sampleRate)
	}

	handle, err := pcap.OpenOffline(pcapFile)
	if err != nil {
		return waveform.ArbMod{}, fmt.Errorf("interference: opening pcap file %s: %w", pcapFile, err)
	}
	defer handle.Close()

	filterStr := fmt.Sprintf("udp port %d", udpPort)
	if err := handle.SetBPFFilter(filterStr); err != nil {
		return waveform.ArbMod{}, fmt.Errorf("interference: setting BPF filter %q: %w", filterStr, err)
	}

	packetSource := gopacket.NewPacketSource(handle, handle.LinkType())
	var samples []complex128
	for packet := range packetSource.Packets() {
		udpLayer := packet.Layer(layers.LayerTypeUDP)
		if udpLayer == nil {
			continue
		}
		udp, ok := udpLayer.(*layers.UDP)
		if !ok {
			continue
		}
		payload := udp.Payload
		for i := 0; i+8 <= len(payload); i += 8 {
			iPart := math.Float32frombits(binary.LittleEndian.Uint32(payload[i:]))
			qPart := math.Float32frombits(binary.LittleEndian.Uint32(payload[i+4:]))
			samples = append(samples, complex(float64(iPart), float64(qPart)))
		}
	}
	if len(samples) == 0 {
		return waveform.ArbMod{}, fmt.Errorf("interference: pcap file %s on udp port %d yielded no IQ samples", pcapFile, udpPort)
	}

	t := make([]float64, len(samples))
	for i := range t {
		t[i] = float64(i) / sampleRate
	}
	return waveform.ArbMod{Enabled: true, T: t, Var: samples}, nil
}
