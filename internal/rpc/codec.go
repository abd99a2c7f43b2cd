package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/bayleafwalker/dnp-manager/internal/resolver"
)

// wireResult is resolver.Result with counters carried as strings, since
// Struct numbers are float64.
type wireResult struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	State   map[string]string `json:"state"`
	Outcome resolver.Outcome  `json:"outcome"`
	Checked uint64            `json:"checked,string"`
	Total   uint64            `json:"total,string"`
}

func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, err
	}
	return out, nil
}

func fromStruct(in *structpb.Struct, v any) error {
	data, err := protojson.Marshal(in)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func encodeRequest(req resolver.Request) (*structpb.Struct, error) {
	out, err := toStruct(req)
	if err != nil {
		return nil, fmt.Errorf("rpc: encode request: %w", err)
	}
	return out, nil
}

func decodeRequest(in *structpb.Struct) (resolver.Request, error) {
	var req resolver.Request
	if in == nil {
		return req, fmt.Errorf("rpc: empty request")
	}
	if err := fromStruct(in, &req); err != nil {
		return resolver.Request{}, fmt.Errorf("rpc: decode request: %w", err)
	}
	return req, nil
}

func encodeResult(res resolver.Result) (*structpb.Struct, error) {
	out, err := toStruct(wireResult(res))
	if err != nil {
		return nil, fmt.Errorf("rpc: encode result: %w", err)
	}
	return out, nil
}

func decodeResult(in *structpb.Struct) (resolver.Result, error) {
	var w wireResult
	if err := fromStruct(in, &w); err != nil {
		return resolver.Result{}, fmt.Errorf("rpc: decode result: %w", err)
	}
	if w.State == nil {
		w.State = map[string]string{}
	}
	return resolver.Result(w), nil
}
