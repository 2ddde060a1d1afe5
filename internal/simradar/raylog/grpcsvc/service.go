// Package grpcsvc streams an on-disk ray log to a client over gRPC,
// satisfying spec.md §6 operation 5's read-only access requirement over
// the network rather than only on local disk. Modeled on the structure
// of internal/lidar/visualiser's StreamFrames RPC, minus the proto
// toolchain: RayRecord/StreamRequest are hand-encoded against
// raylog.proto via protowire (see message.go, codec.go) since this
// module never runs protoc.
package grpcsvc

import (
	"context"

	"google.golang.org/grpc"
)

// RayLogServiceServer is the server-side interface raylog.proto's
// RayLogService compiles to.
type RayLogServiceServer interface {
	StreamRecords(req *StreamRequest, stream RayLogService_StreamRecordsServer) error
}

// RayLogService_StreamRecordsServer is the server-side stream handle for
// the StreamRecords RPC.
type RayLogService_StreamRecordsServer interface {
	Send(*RayRecord) error
	grpc.ServerStream
}

type rayLogServiceStreamRecordsServer struct {
	grpc.ServerStream
}

func (x *rayLogServiceStreamRecordsServer) Send(m *RayRecord) error {
	return x.ServerStream.SendMsg(m)
}

func streamRecordsHandler(srv any, stream grpc.ServerStream) error {
	req := new(StreamRequest)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}
	return srv.(RayLogServiceServer).StreamRecords(req, &rayLogServiceStreamRecordsServer{stream})
}

// ServiceDesc is the grpc.ServiceDesc raylog.proto's RayLogService
// compiles to.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: "raylog.RayLogService",
	HandlerType: (*RayLogServiceServer)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamRecords",
			Handler:       streamRecordsHandler,
			ServerStreams: true,
		},
	},
	Metadata: "raylog.proto",
}

// RegisterRayLogServiceServer registers srv with s.
func RegisterRayLogServiceServer(s grpc.ServiceRegistrar, srv RayLogServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// RayLogServiceClient is the client-side interface for RayLogService.
type RayLogServiceClient interface {
	StreamRecords(ctx context.Context, in *StreamRequest, opts ...grpc.CallOption) (RayLogService_StreamRecordsClient, error)
}

type rayLogServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewRayLogServiceClient wraps cc as a RayLogServiceClient.
func NewRayLogServiceClient(cc grpc.ClientConnInterface) RayLogServiceClient {
	return &rayLogServiceClient{cc}
}

func (c *rayLogServiceClient) StreamRecords(ctx context.Context, in *StreamRequest, opts ...grpc.CallOption) (RayLogService_StreamRecordsClient, error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], "/raylog.RayLogService/StreamRecords", opts...)
	if err != nil {
		return nil, err
	}
	x := &rayLogServiceStreamRecordsClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// RayLogService_StreamRecordsClient is the client-side stream handle for
// the StreamRecords RPC.
type RayLogService_StreamRecordsClient interface {
	Recv() (*RayRecord, error)
	grpc.ClientStream
}

type rayLogServiceStreamRecordsClient struct {
	grpc.ClientStream
}

func (x *rayLogServiceStreamRecordsClient) Recv() (*RayRecord, error) {
	m := new(RayRecord)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
