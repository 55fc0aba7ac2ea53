package generate

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/brc/compress"
	"github.com/arloliu/brc/format"
	"github.com/arloliu/brc/parser"
)

func TestAppendRecord(t *testing.T) {
	tests := []struct {
		scaled int64
		want   string
	}{
		{0, "X;0.0\n"},
		{5, "X;0.5\n"},
		{-5, "X;-0.5\n"},
		{123, "X;12.3\n"},
		{-999, "X;-99.9\n"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, string(AppendRecord(nil, "X", tt.scaled)))
	}
}

func TestScale(t *testing.T) {
	require.Equal(t, int64(123), Scale(12.34))
	require.Equal(t, int64(-124), Scale(-12.36))
	require.Equal(t, int64(999), Scale(150))
	require.Equal(t, int64(-999), Scale(-150))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	n, err := Write(&buf, WithRecords(5000), WithSeed(7), WithStations(10))
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)

	// every generated record passes strict validation
	keys := map[string]struct{}{}
	st, err := parser.Scan(buf.Bytes(), parser.SinkFunc(func(key []byte, v int64) {
		keys[string(key)] = struct{}{}
		require.LessOrEqual(t, v, int64(999))
		require.GreaterOrEqual(t, v, int64(-999))
	}))
	require.NoError(t, err)
	require.Equal(t, int64(5000), st.Records)
	require.LessOrEqual(t, len(keys), 10)
	require.Zero(t, st.Discarded)
}

func TestWrite_Deterministic(t *testing.T) {
	var a, b, c bytes.Buffer
	_, err := Write(&a, WithRecords(100), WithSeed(42))
	require.NoError(t, err)
	_, err = Write(&b, WithRecords(100), WithSeed(42))
	require.NoError(t, err)
	_, err = Write(&c, WithRecords(100), WithSeed(43))
	require.NoError(t, err)

	require.Equal(t, a.Bytes(), b.Bytes())
	require.NotEqual(t, a.Bytes(), c.Bytes())
}

func TestWrite_Compressed(t *testing.T) {
	var plain, packed bytes.Buffer
	_, err := Write(&plain, WithRecords(300), WithSeed(3))
	require.NoError(t, err)
	_, err = Write(&packed, WithRecords(300), WithSeed(3), WithCompression(format.CompressionZstd))
	require.NoError(t, err)

	require.Equal(t, format.CompressionZstd, compress.DetectBytes(packed.Bytes()))

	codec, err := compress.GetCodec(format.CompressionZstd)
	require.NoError(t, err)
	out, err := codec.Decompress(packed.Bytes())
	require.NoError(t, err)
	require.Equal(t, plain.Bytes(), out)
}

func TestWrite_InvalidOptions(t *testing.T) {
	var buf bytes.Buffer
	for _, opt := range []Option{
		WithRecords(-1),
		WithStations(len(Stations) + 1),
		WithStdDev(-1),
		WithCompression(format.CompressionAuto),
		WithCompression(format.CompressionType(77)),
	} {
		_, err := Write(&buf, opt)
		require.Error(t, err)
	}
	require.Zero(t, buf.Len())
}
