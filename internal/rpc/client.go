package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/bayleafwalker/dnp-manager/internal/resolver"
)

// Client calls a remote Resolver service. It satisfies resolver.Resolver.
type Client struct {
	cc grpc.ClientConnInterface
}

var _ resolver.Resolver = (*Client)(nil)

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Resolve sends req to the server. Caller errors reported by the server
// still match the resolver sentinels with errors.Is.
func (c *Client) Resolve(ctx context.Context, req resolver.Request) (resolver.Result, error) {
	in, err := encodeRequest(req)
	if err != nil {
		return resolver.Result{}, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, resolveFullMethod, in, out); err != nil {
		return resolver.Result{}, fromStatus(err)
	}
	return decodeResult(out)
}
