package waveform

import "fmt"

// BasebandType selects whether a Receiver's baseband output keeps the
// full complex (I/Q) contribution or only its real part.
type BasebandType int

const (
	BasebandComplex BasebandType = iota
	BasebandReal
)

func (t BasebandType) String() string {
	if t == BasebandReal {
		return "real"
	}
	return "complex"
}

// Receiver is the ordered sequence of RxChannel plus the shared receive
// chain: sample rate, RF/baseband gain stages, load resistance, noise
// bandwidth, and the baseband output type.
type Receiver struct {
	Channels         []RxChannel
	Fs               float64
	RFGainDB         float64
	LoadOhm          float64
	BasebandGainDB   float64
	NoiseBandwidthHz float64
	BasebandType     BasebandType
}

// Validate checks the receiver has at least one channel and physically
// sane sample rate / load / noise bandwidth.
func (r Receiver) Validate() error {
	if len(r.Channels) == 0 {
		return fmt.Errorf("waveform: receiver has no channels")
	}
	if r.Fs <= 0 {
		return fmt.Errorf("waveform: receiver sample rate must be positive, got %v", r.Fs)
	}
	if r.LoadOhm <= 0 {
		return fmt.Errorf("waveform: receiver load resistance must be positive, got %v", r.LoadOhm)
	}
	if r.NoiseBandwidthHz <= 0 {
		return fmt.Errorf("waveform: receiver noise bandwidth must be positive, got %v", r.NoiseBandwidthHz)
	}
	return nil
}

// ApplyOutputType collapses v to its real part when the receiver's
// baseband output is real-valued, per spec.md §4.6/§4.7's "real-output
// receivers write only the real part" rule.
func (r Receiver) ApplyOutputType(v complex128) complex128 {
	if r.BasebandType == BasebandReal {
		return complex(real(v), 0)
	}
	return v
}
