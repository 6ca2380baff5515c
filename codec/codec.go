// Package codec centralizes encoding of table frames.
//
// A codec turns a value into bytes and back. The compression codecs wrap
// another codec, so Zstd(GoJSON{}) is a compressed JSON codec whose name is
// "go-json+zstd".
package codec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCodec is returned by Lookup for names that do not describe a
// built-in codec.
var ErrUnknownCodec = errors.New("unknown codec")

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
//
// Compressed codecs are named after their inner codec followed by the
// compression suffix, e.g. "json+lz4".
func ByName(name string) (Codec, bool) {
	base, suffix, compressed := strings.Cut(name, "+")

	var c Codec
	switch base {
	case "json":
		c = JSON{}
	case "go-json":
		c = GoJSON{}
	default:
		return nil, false
	}
	if !compressed {
		return c, true
	}

	switch suffix {
	case "zstd":
		return Zstd(c), true
	case "lz4":
		return LZ4(c), true
	default:
		return nil, false
	}
}

// Lookup is like ByName but returns ErrUnknownCodec for unknown names.
func Lookup(name string) (Codec, error) {
	c, ok := ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return c, nil
}

// MustMarshal is a helper for internal tests/benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
