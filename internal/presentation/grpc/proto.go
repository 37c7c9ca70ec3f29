package grpc

// proto.go defines the gRPC server interface for scamguard/v1/scamguard.proto.
// It stands in for buf-generated code; messages travel with the JSON codec
// registered in json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "scamguard.v1.ScamDetectorService"

// ScamDetectorServiceServer is the server API for ScamDetectorService.
type ScamDetectorServiceServer interface {
	AnalyzeText(context.Context, *AnalyzeTextRequest) (*AnalyzeTextResponse, error)
	GetAnalysis(context.Context, *GetAnalysisRequest) (*GetAnalysisResponse, error)
	ListAnalyses(context.Context, *ListAnalysesRequest) (*ListAnalysesResponse, error)
	GetStatistics(context.Context, *GetStatisticsRequest) (*GetStatisticsResponse, error)
	mustEmbedUnimplementedScamDetectorServiceServer()
}

// UnimplementedScamDetectorServiceServer provides forward-compatible default implementations.
type UnimplementedScamDetectorServiceServer struct{}

func (UnimplementedScamDetectorServiceServer) AnalyzeText(context.Context, *AnalyzeTextRequest) (*AnalyzeTextResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzeText not implemented")
}
func (UnimplementedScamDetectorServiceServer) GetAnalysis(context.Context, *GetAnalysisRequest) (*GetAnalysisResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAnalysis not implemented")
}
func (UnimplementedScamDetectorServiceServer) ListAnalyses(context.Context, *ListAnalysesRequest) (*ListAnalysesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListAnalyses not implemented")
}
func (UnimplementedScamDetectorServiceServer) GetStatistics(context.Context, *GetStatisticsRequest) (*GetStatisticsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetStatistics not implemented")
}
func (UnimplementedScamDetectorServiceServer) mustEmbedUnimplementedScamDetectorServiceServer() {}

// RegisterScamDetectorServiceServer registers the ScamDetectorServiceServer with the gRPC server.
func RegisterScamDetectorServiceServer(s *grpclib.Server, srv ScamDetectorServiceServer) {
	s.RegisterService(&_ScamDetectorService_serviceDesc, srv)
}

var _ScamDetectorService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ScamDetectorServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AnalyzeText", Handler: _ScamDetectorService_AnalyzeText_Handler},
		{MethodName: "GetAnalysis", Handler: _ScamDetectorService_GetAnalysis_Handler},
		{MethodName: "ListAnalyses", Handler: _ScamDetectorService_ListAnalyses_Handler},
		{MethodName: "GetStatistics", Handler: _ScamDetectorService_GetStatistics_Handler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "scamguard/v1/scamguard.proto",
}

func _ScamDetectorService_AnalyzeText_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(AnalyzeTextRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScamDetectorServiceServer).AnalyzeText(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/AnalyzeText"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScamDetectorServiceServer).AnalyzeText(ctx, req.(*AnalyzeTextRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _ScamDetectorService_GetAnalysis_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetAnalysisRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScamDetectorServiceServer).GetAnalysis(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetAnalysis"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScamDetectorServiceServer).GetAnalysis(ctx, req.(*GetAnalysisRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _ScamDetectorService_ListAnalyses_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListAnalysesRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScamDetectorServiceServer).ListAnalyses(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ListAnalyses"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScamDetectorServiceServer).ListAnalyses(ctx, req.(*ListAnalysesRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _ScamDetectorService_GetStatistics_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetStatisticsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScamDetectorServiceServer).GetStatistics(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetStatistics"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScamDetectorServiceServer).GetStatistics(ctx, req.(*GetStatisticsRequest))
	}
	return interceptor(ctx, req, info, handler)
}
