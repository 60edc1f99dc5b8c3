package rpc

import (
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// DialOption returns the grpc.DialOption that makes a client send requests
// using the JSON codec registered above.
func DialOption() grpc.DialOption {
	return grpc.WithDefaultCallOptions(grpc.CallContentSubtype(jsonContentSubtype))
}

// jsonContentSubtype is the gRPC content-subtype this codec is registered
// under ("application/grpc+json" on the wire). No protoc invocation is
// available to produce compiled protobuf descriptors (see DESIGN.md), so
// jobexecpb's messages are plain Go structs moved over gRPC's HTTP/2 framing
// and streaming machinery using JSON instead of a binary protobuf encoding.
const jsonContentSubtype = "json"

// jsonCodec implements google.golang.org/grpc/encoding.Codec.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonContentSubtype
}
