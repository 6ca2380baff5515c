package codec

import (
	"testing"
)

func benchmarkCodecMarshal(b *testing.B, c Codec, v any) {
	b.Helper()
	b.ReportAllocs()

	warm, err := c.Marshal(v)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(warm)))

	var sink []byte
	b.ResetTimer()
	for b.Loop() {
		out, err := c.Marshal(v)
		if err != nil {
			b.Fatal(err)
		}
		sink = out
	}
	_ = sink
}

func benchmarkCodecUnmarshal[T any](b *testing.B, c Codec, data []byte, dst *T) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	var v T
	b.ResetTimer()
	for b.Loop() {
		if err := c.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
	if dst != nil {
		*dst = v
	}
}

func benchCodecs() []Codec {
	return []Codec{JSON{}, GoJSON{}, Zstd(GoJSON{}), LZ4(GoJSON{})}
}

func BenchmarkCodec_Marshal_Frame(b *testing.B) {
	frame := sampleFrame(1000)
	for _, c := range benchCodecs() {
		b.Run(c.Name(), func(b *testing.B) { benchmarkCodecMarshal(b, c, frame) })
	}
}

func BenchmarkCodec_Unmarshal_Frame(b *testing.B) {
	frame := sampleFrame(1000)
	for _, c := range benchCodecs() {
		data := MustMarshal(c, frame)
		b.Run(c.Name(), func(b *testing.B) {
			var sink testFrame
			benchmarkCodecUnmarshal(b, c, data, &sink)
			_ = sink
		})
	}
}
