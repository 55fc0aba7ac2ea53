package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/brc/errs"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name string
		want Strategy
	}{
		{"naive", StrategyNaive},
		{"streaming", StrategyStreaming},
		{"single_thread_optimized", StrategyStreaming},
		{"latest", StrategyStreaming},
		{"MAPPED", StrategyMapped},
		{"single_thread_optimized_mmap", StrategyMapped},
		{"parallel", StrategyParallel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStrategy(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ParseStrategy("turbo")
	require.ErrorIs(t, err, errs.ErrUnknownStrategy)
}

func TestStrategy_StringRoundTrip(t *testing.T) {
	for _, s := range Strategies() {
		got, err := ParseStrategy(s.String())
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
	require.Equal(t, "unknown", Strategy(0).String())
}

func TestParseCompression(t *testing.T) {
	for _, c := range []CompressionType{CompressionAuto, CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		require.Equal(t, c, got)
	}

	got, err := ParseCompression("")
	require.NoError(t, err)
	require.Equal(t, CompressionAuto, got)

	_, err = ParseCompression("brotli")
	require.ErrorIs(t, err, errs.ErrUnknownCompression)
}

func TestParsePolicies(t *testing.T) {
	for _, p := range []MalformedPolicy{MalformedAbort, MalformedSkip, MalformedUnchecked} {
		got, err := ParseMalformedPolicy(p.String())
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
	for _, p := range []EncodingPolicy{EncodingValidate, EncodingUnchecked} {
		got, err := ParseEncodingPolicy(p.String())
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
	for _, p := range []TrailingPolicy{TrailingDiscard, TrailingFlush} {
		got, err := ParseTrailingPolicy(p.String())
		require.NoError(t, err)
		require.Equal(t, p, got)
	}

	_, err := ParseMalformedPolicy("retry")
	require.ErrorIs(t, err, errs.ErrUnknownPolicy)
	_, err = ParseEncodingPolicy("latin1")
	require.ErrorIs(t, err, errs.ErrUnknownPolicy)
	_, err = ParseTrailingPolicy("keep")
	require.ErrorIs(t, err, errs.ErrUnknownPolicy)
}
