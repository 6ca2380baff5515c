package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/tabula/internal/conv"
)

// ErrCorruptFrame is returned when compressed bytes cannot be decoded.
var ErrCorruptFrame = errors.New("corrupt compressed frame")

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

type zstdCodec struct {
	inner Codec
}

// Zstd wraps inner with zstd compression.
func Zstd(inner Codec) Codec {
	if inner == nil {
		inner = Default
	}
	return zstdCodec{inner: inner}
}

func (c zstdCodec) Marshal(v any) ([]byte, error) {
	data, err := c.inner.Marshal(v)
	if err != nil {
		return nil, err
	}
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return enc.EncodeAll(data, nil), nil
}

func (c zstdCodec) Unmarshal(data []byte, v any) error {
	dec := getZstdDecoder()
	defer putZstdDecoder(dec)

	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptFrame, err)
	}
	return c.inner.Unmarshal(raw, v)
}

func (c zstdCodec) Name() string { return c.inner.Name() + "+zstd" }

// lz4 block header.
// Format: [UncompressedSize uint32][CompressedSize uint32][Data...]
// If CompressedSize == 0, the block is stored uncompressed.
const blockHeaderSize = 8

type lz4Codec struct {
	inner Codec
}

// LZ4 wraps inner with lz4 block compression.
func LZ4(inner Codec) Codec {
	if inner == nil {
		inner = Default
	}
	return lz4Codec{inner: inner}
}

func (c lz4Codec) Marshal(v any) ([]byte, error) {
	data, err := c.inner.Marshal(v)
	if err != nil {
		return nil, err
	}
	size, err := conv.IntToUint32(len(data))
	if err != nil {
		return nil, err
	}

	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}

	// Incompressible input is stored as is.
	if n == 0 || n >= len(data) {
		out := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(out[0:], size)
		binary.LittleEndian.PutUint32(out[4:], 0)
		copy(out[blockHeaderSize:], data)
		return out, nil
	}

	out := make([]byte, blockHeaderSize+n)
	binary.LittleEndian.PutUint32(out[0:], size)
	binary.LittleEndian.PutUint32(out[4:], uint32(n)) //nolint:gosec // n < len(data)
	copy(out[blockHeaderSize:], compressed[:n])
	return out, nil
}

func (c lz4Codec) Unmarshal(data []byte, v any) error {
	if len(data) < blockHeaderSize {
		return fmt.Errorf("%w: block too small for header", ErrCorruptFrame)
	}
	rawSize, err := conv.Uint32ToInt(binary.LittleEndian.Uint32(data[0:]))
	if err != nil {
		return err
	}
	packedSize, err := conv.Uint32ToInt(binary.LittleEndian.Uint32(data[4:]))
	if err != nil {
		return err
	}
	body := data[blockHeaderSize:]

	if packedSize == 0 {
		if len(body) < rawSize {
			return fmt.Errorf("%w: block data too small", ErrCorruptFrame)
		}
		return c.inner.Unmarshal(body[:rawSize], v)
	}

	if len(body) < packedSize {
		return fmt.Errorf("%w: compressed block data too small", ErrCorruptFrame)
	}
	raw := make([]byte, rawSize)
	n, err := lz4.UncompressBlock(body[:packedSize], raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptFrame, err)
	}
	if n != rawSize {
		return fmt.Errorf("%w: decompressed size mismatch", ErrCorruptFrame)
	}
	return c.inner.Unmarshal(raw, v)
}

func (c lz4Codec) Name() string { return c.inner.Name() + "+lz4" }
