package vaultproto

import (
	"encoding/json"
	"sync"

	"google.golang.org/grpc/encoding"
)

// JSONCodecName is the content-subtype both ends of the vault API use.
const JSONCodecName = "json"

var registerCodecOnce sync.Once

// jsonCodec carries the hand-maintained API messages over gRPC as JSON.
type jsonCodec struct{}

func (c *jsonCodec) Name() string {
	return JSONCodecName
}

func (c *jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (c *jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// EnsureJSONCodec registers the JSON codec with the grpc encoding registry.
// Both the server and the client must call it before the first RPC; codec
// lookup happens per-process, not per-connection.
func EnsureJSONCodec() {
	registerCodecOnce.Do(func() {
		encoding.RegisterCodec(&jsonCodec{})
	})
}
