package grpcsvc

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// wireMessage is satisfied by RayRecord and StreamRequest.
type wireMessage interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

// codecName is registered with grpc's encoding package and selected via
// grpc.CallContentSubtype/grpc.ForceServerCodec — this service never
// carries google.golang.org/protobuf-generated messages, so it cannot use
// the default "proto" codec.
const codecName = "raylog-wire"

type wireCodec struct{}

func (wireCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(wireMessage)
	if !ok {
		return nil, fmt.Errorf("grpcsvc: %T does not implement wireMessage", v)
	}
	return m.Marshal()
}

func (wireCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(wireMessage)
	if !ok {
		return fmt.Errorf("grpcsvc: %T does not implement wireMessage", v)
	}
	return m.Unmarshal(data)
}

func (wireCodec) Name() string { return codecName }

func init() {
	encoding.RegisterCodec(wireCodec{})
}
