package parser

import (
	"fmt"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTemp(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0.0", 0},
		{"-0.0", 0},
		{"1.2", 12},
		{"-1.2", -12},
		{"12.3", 123},
		{"-12.3", -123},
		{"99.9", 999},
		{"-99.9", -999},
		{"10.0", 100},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, ParseTemp([]byte(tt.in)))

			v, ok := ParseTempStrict([]byte(tt.in))
			require.True(t, ok)
			require.Equal(t, tt.want, v)
		})
	}
}

func TestParseTemp_MatchesFloatRounding(t *testing.T) {
	for scaled := -999; scaled <= 999; scaled++ {
		abs := scaled
		sign := ""
		if abs < 0 {
			abs = -abs
			sign = "-"
		}
		token := fmt.Sprintf("%s%d.%d", sign, abs/10, abs%10)

		f, err := strconv.ParseFloat(token, 64)
		require.NoError(t, err)
		want := int64(math.Round(f * 10))

		require.Equal(t, want, ParseTemp([]byte(token)), token)

		got, ok := ParseTempStrict([]byte(token))
		require.True(t, ok, token)
		require.Equal(t, want, got, token)
	}
}

func TestParseTemp_IgnoresOtherBytes(t *testing.T) {
	require.Equal(t, int64(123), ParseTemp([]byte("1x2.3")))
	require.Equal(t, int64(-5), ParseTemp([]byte("0.-5")))
	require.Equal(t, int64(0), ParseTemp(nil))
}

func TestParseTempStrict_Rejects(t *testing.T) {
	bad := []string{
		"",
		"-",
		".5",
		"5",
		"5.",
		"123.4",
		"1.23",
		"+1.2",
		"1,2",
		"a.b",
		"--1.2",
		"1.2\r",
		" 1.2",
		"-100.0",
	}

	for _, in := range bad {
		t.Run(strconv.Quote(in), func(t *testing.T) {
			_, ok := ParseTempStrict([]byte(in))
			require.False(t, ok)
		})
	}
}

func BenchmarkParseTemp(b *testing.B) {
	token := []byte("-12.3")

	b.Run("Fast", func(b *testing.B) {
		for b.Loop() {
			_ = ParseTemp(token)
		}
	})

	b.Run("Strict", func(b *testing.B) {
		for b.Loop() {
			_, _ = ParseTempStrict(token)
		}
	})
}
