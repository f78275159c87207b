// Package stormcodec registers the serialization formats supported by the
// whisper database. MessagePack is the default; CBOR and Binc are provided
// for databases created with an alternate codec.
package stormcodec

import (
	"github.com/asdine/storm/v3/codec"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/pkg/errors"
)

// Default is the codec used when none is configured.
var Default = msgpack.Codec

// ByName returns the codec registered under the given name.
// An empty name returns the default codec.
func ByName(name string) (codec.MarshalUnmarshaler, error) {
	switch name {
	case "", "msgpack":
		return msgpack.Codec, nil
	case "cbor":
		return CBOR, nil
	case "binc":
		return Binc, nil
	}
	return nil, errors.Errorf("unknown database codec: %s", name)
}
