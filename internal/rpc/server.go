package rpc

import (
	"context"

	"github.com/go-logr/logr"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/bayleafwalker/dnp-manager/internal/resolver"
)

// Server serves the Resolver service on top of a resolver.Resolver.
type Server struct {
	resolver resolver.Resolver
	log      logr.Logger
	metrics  *Metrics
}

// NewServer returns a Server. m may be nil.
func NewServer(r resolver.Resolver, log logr.Logger, m *Metrics) *Server {
	return &Server{resolver: r, log: log, metrics: m}
}

func (s *Server) Resolve(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	logger := s.log.WithValues("requested", req.Requested, "packageCount", len(req.Packages))

	res, err := s.resolver.Resolve(ctx, req)
	if err != nil {
		logger.Info("candidate set rejected", "error", err.Error())
		s.metrics.observeOutcome("invalid", 0)
		return nil, toStatus(err)
	}
	s.metrics.observeOutcome(string(res.Outcome), res.Checked)
	logger.V(1).Info("resolved", "success", res.Success, "checked", res.Checked, "total", res.Total)

	out, err := encodeResult(res)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}
