// Package report finalizes an aggregate table into the sorted output line
//
//	{KEY1=AVG1/MAX1/MIN1, KEY2=AVG2/MAX2/MIN2, ...}
//
// with every number printed with exactly one fractional digit.
package report

import (
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/arloliu/brc/errs"
	"github.com/arloliu/brc/format"
	"github.com/arloliu/brc/internal/pool"
	"github.com/arloliu/brc/stats"
)

// Row is the finalized aggregate of one key.
type Row struct {
	Key  string
	Mean float64
	Max  float64
	Min  float64
}

// Report is the ordered list of rows, ascending by key bytes.
type Report struct {
	Rows []Row
}

// Build sorts the table by key and converts every bucket to decimal values.
//
// Keys are checked for valid UTF-8 here, once per distinct key, under
// format.EncodingValidate; format.EncodingUnchecked copies the bytes as-is.
//
// Parameters:
//   - t: aggregated table; left unchanged
//   - policy: key encoding policy
//
// Returns:
//   - Report: one row per key, ascending by key bytes
//   - error: *errs.InvalidEncodingError for the first invalid key in sorted order
func Build(t *stats.Table, policy format.EncodingPolicy) (Report, error) {
	entries := t.Entries()
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		if policy == format.EncodingValidate && !utf8.Valid(e.Key) {
			return Report{}, &errs.InvalidEncodingError{Key: append([]byte(nil), e.Key...)}
		}
		rows = append(rows, Row{
			Key:  string(e.Key),
			Mean: e.Bucket.Mean(),
			Max:  e.Bucket.MaxValue(),
			Min:  e.Bucket.MinValue(),
		})
	}

	return Report{Rows: rows}, nil
}

// Len returns the number of rows.
func (r Report) Len() int {
	return len(r.Rows)
}

// AppendTo appends the formatted report line, without a newline, to dst.
func (r Report) AppendTo(dst []byte) []byte {
	dst = append(dst, '{')
	for i, row := range r.Rows {
		if i > 0 {
			dst = append(dst, ", "...)
		}
		dst = append(dst, row.Key...)
		dst = append(dst, '=')
		dst = strconv.AppendFloat(dst, row.Mean, 'f', 1, 64)
		dst = append(dst, '/')
		dst = strconv.AppendFloat(dst, row.Max, 'f', 1, 64)
		dst = append(dst, '/')
		dst = strconv.AppendFloat(dst, row.Min, 'f', 1, 64)
	}

	return append(dst, '}')
}

func (r Report) String() string {
	// 24 bytes covers a typical station name plus three numbers.
	return string(r.AppendTo(make([]byte, 0, 2+len(r.Rows)*24)))
}

// WriteTo writes the report line followed by a newline.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	bb := pool.GetTokenBuffer()
	defer pool.PutTokenBuffer(bb)

	bb.B = r.AppendTo(bb.B)
	bb.B = append(bb.B, '\n')

	return bb.WriteTo(w)
}
