package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/brc/engine"
	"github.com/arloliu/brc/format"
)

func TestRecorder_Observe(t *testing.T) {
	rec := NewRecorder()

	rec.Observe(engine.Summary{
		Strategy:  format.StrategyParallel,
		Bytes:     1024,
		Records:   64,
		Skipped:   2,
		Discarded: 5,
		Keys:      7,
		Elapsed:   20 * time.Millisecond,
	}, nil)
	rec.Observe(engine.Summary{Strategy: format.StrategyNaive, Records: 1}, errors.New("boom"))

	families, err := rec.Gatherer().Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				values[mf.GetName()] += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}

	require.InDelta(t, 2, values["brc_runs_total"], 0)
	require.InDelta(t, 1024, values["brc_bytes_read_total"], 0)
	require.InDelta(t, 65, values["brc_records_total"], 0)
	require.InDelta(t, 2, values["brc_records_skipped_total"], 0)
	require.InDelta(t, 5, values["brc_trailing_bytes_discarded_total"], 0)
	require.InDelta(t, 0, values["brc_keys"], 0, "gauge holds the last run")
	require.InDelta(t, 2, values["brc_run_duration_seconds"], 0)
}

func TestRecorder_WriteToTextfile(t *testing.T) {
	rec := NewRecorder()
	rec.Observe(engine.Summary{Strategy: format.StrategyStreaming, Records: 3, Keys: 2}, nil)

	path := filepath.Join(t.TempDir(), "brc.prom")
	require.NoError(t, rec.WriteToTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	require.Contains(t, text, "brc_records_total 3")
	require.Contains(t, text, "brc_keys 2")
	require.Contains(t, text, `brc_runs_total{result="ok",strategy="streaming"} 1`)
}
