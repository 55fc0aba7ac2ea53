package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/brc/errs"
	"github.com/arloliu/brc/format"
	"github.com/arloliu/brc/parser"
	"github.com/arloliu/brc/stats"
)

func buildFrom(t *testing.T, input string, policy format.EncodingPolicy) (Report, error) {
	t.Helper()

	tbl := stats.NewTable(0)
	_, err := parser.Scan([]byte(input), tbl)
	require.NoError(t, err)

	return Build(tbl, policy)
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "TwoStations",
			input: "Hamburg;12.0\nHamburg;14.0\nPalma;25.5\n",
			want:  "{Hamburg=13.0/14.0/12.0, Palma=25.5/25.5/25.5}",
		},
		{
			name:  "NegativeInterleaved",
			input: "A;-5.3\nB;0.0\nA;10.0\n",
			want:  "{A=2.4/10.0/-5.3, B=0.0/0.0/0.0}",
		},
		{
			name:  "Empty",
			input: "",
			want:  "{}",
		},
		{
			name:  "SingleValueSeedsAllThree",
			input: "Oslo;-9.9\n",
			want:  "{Oslo=-9.9/-9.9/-9.9}",
		},
		{
			name:  "SortedByBytes",
			input: "b;1.0\nÄ;2.0\nB;3.0\na;4.0\n",
			want:  "{B=3.0/3.0/3.0, a=4.0/4.0/4.0, b=1.0/1.0/1.0, Ä=2.0/2.0/2.0}",
		},
		{
			name:  "Extremes",
			input: "x;99.9\nx;-99.9\n",
			want:  "{x=0.0/99.9/-99.9}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := buildFrom(t, tt.input, format.EncodingValidate)
			require.NoError(t, err)
			require.Equal(t, tt.want, r.String())
			require.Equal(t, tt.want, string(r.AppendTo(nil)))
		})
	}
}

func TestBuild_Rows(t *testing.T) {
	r, err := buildFrom(t, "A;-5.3\nB;0.0\nA;10.0\n", format.EncodingValidate)
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())

	require.Equal(t, "A", r.Rows[0].Key)
	require.InDelta(t, 2.35, r.Rows[0].Mean, 1e-9)
	require.InDelta(t, 10.0, r.Rows[0].Max, 1e-9)
	require.InDelta(t, -5.3, r.Rows[0].Min, 1e-9)
}

func TestBuild_InvalidEncoding(t *testing.T) {
	input := "ok;1.0\n\xff\xfe;2.0\n"

	_, err := buildFrom(t, input, format.EncodingValidate)
	require.ErrorIs(t, err, errs.ErrInvalidEncoding)

	var iee *errs.InvalidEncodingError
	require.ErrorAs(t, err, &iee)
	require.Equal(t, []byte{0xff, 0xfe}, iee.Key)

	r, err := buildFrom(t, input, format.EncodingUnchecked)
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())
	require.Equal(t, "{ok=1.0/1.0/1.0, \xff\xfe=2.0/2.0/2.0}", r.String())
}

func TestReport_WriteTo(t *testing.T) {
	r, err := buildFrom(t, "Palma;25.5\n", format.EncodingValidate)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, "{Palma=25.5/25.5/25.5}\n", buf.String())
	require.Equal(t, int64(buf.Len()), n)
}

func TestReport_WriteToReusesBuffers(t *testing.T) {
	var input bytes.Buffer
	for i := 0; i < 500; i++ {
		input.WriteString("station-")
		input.WriteByte(byte('a' + i%26))
		input.WriteByte(byte('a' + i/26))
		input.WriteString(";1.0\n")
	}

	large, err := buildFrom(t, input.String(), format.EncodingValidate)
	require.NoError(t, err)
	small, err := buildFrom(t, "Palma;25.5\n", format.EncodingValidate)
	require.NoError(t, err)

	for _, r := range []Report{large, small, large, small} {
		var buf bytes.Buffer
		n, err := r.WriteTo(&buf)
		require.NoError(t, err)
		require.Equal(t, r.String()+"\n", buf.String())
		require.Equal(t, int64(buf.Len()), n)
	}
}
