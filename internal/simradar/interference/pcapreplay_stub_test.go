//go:build !pcap
// +build !pcap

package interference

import "testing"

func TestLoadPCAPArbMod_Stub(t *testing.T) {
	_, err := LoadPCAPArbMod("test.pcap", 4040, 20e6)
	if err == nil {
		t.Fatal("expected an error from the stub implementation")
	}
}
