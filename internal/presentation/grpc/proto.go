package grpc

// proto.go hand-writes what protoc-gen-go-grpc would emit for
// loancalc.v1.CalculatorService. Messages travel with the JSON codec and
// share their shape with the REST API.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/andre1397/calculadora-TOTVS/internal/application/dto"
)

// Fully-qualified names of the service and its methods.
const (
	CalculatorServiceName            = "loancalc.v1.CalculatorService"
	CalculateScheduleFullMethodName  = "/loancalc.v1.CalculatorService/CalculateSchedule"
	calculateScheduleMethodShortName = "CalculateSchedule"
)

// CalculateScheduleRequest is the request message of CalculateSchedule.
type CalculateScheduleRequest = dto.CalculateScheduleRequest

// CalculateScheduleResponse is the response message of CalculateSchedule.
type CalculateScheduleResponse = dto.CalculateScheduleResponse

// CalculatorServiceServer is the server API for CalculatorService.
type CalculatorServiceServer interface {
	CalculateSchedule(context.Context, *CalculateScheduleRequest) (*CalculateScheduleResponse, error)
	mustEmbedUnimplementedCalculatorServiceServer()
}

// UnimplementedCalculatorServiceServer provides forward-compatible default implementations.
type UnimplementedCalculatorServiceServer struct{}

func (UnimplementedCalculatorServiceServer) CalculateSchedule(context.Context, *CalculateScheduleRequest) (*CalculateScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CalculateSchedule not implemented")
}
func (UnimplementedCalculatorServiceServer) mustEmbedUnimplementedCalculatorServiceServer() {}

// RegisterCalculatorServiceServer registers the CalculatorServiceServer with the gRPC server.
func RegisterCalculatorServiceServer(s grpclib.ServiceRegistrar, srv CalculatorServiceServer) {
	s.RegisterService(&_CalculatorService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _CalculatorService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: CalculatorServiceName,
	HandlerType: (*CalculatorServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: calculateScheduleMethodShortName, Handler: _CalculatorService_CalculateSchedule_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "loancalc/v1/calculator.proto",
}

//nolint:revive,errcheck // gRPC handler registration
func _CalculatorService_CalculateSchedule_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CalculateScheduleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculatorServiceServer).CalculateSchedule(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: CalculateScheduleFullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CalculatorServiceServer).CalculateSchedule(ctx, req.(*CalculateScheduleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// CalculatorServiceClient is the client API for CalculatorService.
type CalculatorServiceClient interface {
	CalculateSchedule(ctx context.Context, in *CalculateScheduleRequest, opts ...grpclib.CallOption) (*CalculateScheduleResponse, error)
}

type calculatorServiceClient struct {
	cc grpclib.ClientConnInterface
}

// NewCalculatorServiceClient returns a client that always speaks the JSON codec.
func NewCalculatorServiceClient(cc grpclib.ClientConnInterface) CalculatorServiceClient {
	return &calculatorServiceClient{cc: cc}
}

func (c *calculatorServiceClient) CalculateSchedule(ctx context.Context, in *CalculateScheduleRequest, opts ...grpclib.CallOption) (*CalculateScheduleResponse, error) {
	out := new(CalculateScheduleResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, CalculateScheduleFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
