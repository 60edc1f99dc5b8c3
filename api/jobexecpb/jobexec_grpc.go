package jobexecpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	serviceName = "jobexec.JobExecService"
)

// JobExecServiceClient is the client API for JobExecService.
type JobExecServiceClient interface {
	IssueJwt(ctx context.Context, in *IssueJwtRequest, opts ...grpc.CallOption) (*IssueJwtResponse, error)
	Spawn(ctx context.Context, in *SpawnRequest, opts ...grpc.CallOption) (*SpawnResponse, error)
	Stop(ctx context.Context, in *StopRequest, opts ...grpc.CallOption) (*StopResponse, error)
	StreamLog(ctx context.Context, in *StreamLogRequest, opts ...grpc.CallOption) (JobExecService_StreamLogClient, error)
	Status(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error)
}

type jobExecServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewJobExecServiceClient wraps cc as a JobExecServiceClient.
func NewJobExecServiceClient(cc grpc.ClientConnInterface) JobExecServiceClient {
	return &jobExecServiceClient{cc}
}

func (c *jobExecServiceClient) IssueJwt(ctx context.Context, in *IssueJwtRequest, opts ...grpc.CallOption) (*IssueJwtResponse, error) {
	out := new(IssueJwtResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/IssueJwt", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *jobExecServiceClient) Spawn(ctx context.Context, in *SpawnRequest, opts ...grpc.CallOption) (*SpawnResponse, error) {
	out := new(SpawnResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Spawn", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *jobExecServiceClient) Stop(ctx context.Context, in *StopRequest, opts ...grpc.CallOption) (*StopResponse, error) {
	out := new(StopResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Stop", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *jobExecServiceClient) Status(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	out := new(StatusResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Status", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *jobExecServiceClient) StreamLog(ctx context.Context, in *StreamLogRequest, opts ...grpc.CallOption) (JobExecService_StreamLogClient, error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], "/"+serviceName+"/StreamLog", opts...)
	if err != nil {
		return nil, err
	}
	x := &jobExecServiceStreamLogClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// JobExecService_StreamLogClient is the stream handle returned by a
// StreamLog call.
type JobExecService_StreamLogClient interface {
	Recv() (*StreamLogResponse, error)
	grpc.ClientStream
}

type jobExecServiceStreamLogClient struct {
	grpc.ClientStream
}

func (x *jobExecServiceStreamLogClient) Recv() (*StreamLogResponse, error) {
	m := new(StreamLogResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// JobExecServiceServer is the server API for JobExecService.
type JobExecServiceServer interface {
	IssueJwt(context.Context, *IssueJwtRequest) (*IssueJwtResponse, error)
	Spawn(context.Context, *SpawnRequest) (*SpawnResponse, error)
	Stop(context.Context, *StopRequest) (*StopResponse, error)
	StreamLog(*StreamLogRequest, JobExecService_StreamLogServer) error
	Status(context.Context, *StatusRequest) (*StatusResponse, error)
}

// UnimplementedJobExecServiceServer can be embedded to satisfy
// JobExecServiceServer without implementing every method up front.
type UnimplementedJobExecServiceServer struct{}

func (UnimplementedJobExecServiceServer) IssueJwt(context.Context, *IssueJwtRequest) (*IssueJwtResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method IssueJwt not implemented")
}
func (UnimplementedJobExecServiceServer) Spawn(context.Context, *SpawnRequest) (*SpawnResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Spawn not implemented")
}
func (UnimplementedJobExecServiceServer) Stop(context.Context, *StopRequest) (*StopResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Stop not implemented")
}
func (UnimplementedJobExecServiceServer) StreamLog(*StreamLogRequest, JobExecService_StreamLogServer) error {
	return status.Errorf(codes.Unimplemented, "method StreamLog not implemented")
}
func (UnimplementedJobExecServiceServer) Status(context.Context, *StatusRequest) (*StatusResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Status not implemented")
}

// JobExecService_StreamLogServer is the stream handle passed to a StreamLog
// implementation.
type JobExecService_StreamLogServer interface {
	Send(*StreamLogResponse) error
	grpc.ServerStream
}

type jobExecServiceStreamLogServer struct {
	grpc.ServerStream
}

func (x *jobExecServiceStreamLogServer) Send(m *StreamLogResponse) error {
	return x.ServerStream.SendMsg(m)
}

func RegisterJobExecServiceServer(s grpc.ServiceRegistrar, srv JobExecServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func _JobExecService_IssueJwt_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(IssueJwtRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(JobExecServiceServer).IssueJwt(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/IssueJwt"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(JobExecServiceServer).IssueJwt(ctx, req.(*IssueJwtRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _JobExecService_Spawn_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SpawnRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(JobExecServiceServer).Spawn(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Spawn"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(JobExecServiceServer).Spawn(ctx, req.(*SpawnRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _JobExecService_Stop_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(StopRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(JobExecServiceServer).Stop(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Stop"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(JobExecServiceServer).Stop(ctx, req.(*StopRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _JobExecService_Status_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(StatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(JobExecServiceServer).Status(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Status"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(JobExecServiceServer).Status(ctx, req.(*StatusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _JobExecService_StreamLog_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(StreamLogRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(JobExecServiceServer).StreamLog(m, &jobExecServiceStreamLogServer{stream})
}

// ServiceDesc is the grpc.ServiceDesc for JobExecService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*JobExecServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "IssueJwt", Handler: _JobExecService_IssueJwt_Handler},
		{MethodName: "Spawn", Handler: _JobExecService_Spawn_Handler},
		{MethodName: "Stop", Handler: _JobExecService_Stop_Handler},
		{MethodName: "Status", Handler: _JobExecService_Status_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamLog",
			Handler:       _JobExecService_StreamLog_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "jobexec.proto",
}
