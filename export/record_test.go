package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joamatab/lekkersim/element"
	"github.com/joamatab/lekkersim/element/base"
	"github.com/joamatab/lekkersim/maths"
	"github.com/joamatab/lekkersim/network"
)

func sweep(t *testing.T) *network.SweepResult {
	t.Helper()
	b := network.NewBuilder("thermal")
	b.Place(base.NewPhaseShifter(""))
	require.NoError(t, b.AddParam("PS", func(args element.Params) (float64, error) {
		return 0.1 * args["PW"], nil
	}, network.ArgDefault("PW", 0)))
	require.NoError(t, b.RaisePins())
	n, err := b.Build()
	require.NoError(t, err)
	res, err := n.Sweep(context.Background(), nil, map[string][]float64{"PW": maths.Linspace(0, 10, 11)})
	require.NoError(t, err)
	return res
}

func TestRecordColumns(t *testing.T) {
	rec, err := NewRecord(sweep(t), "a0", "b0")
	require.NoError(t, err)
	require.Equal(t, 11, rec.Len())
	require.Equal(t, []string{"PW", "T", "Phase", "Re", "Im"}, rec.Columns())

	phase, err := rec.Column(ColumnPhase)
	require.NoError(t, err)
	want := maths.Linspace(0, math.Pi, 11)
	for i := range want {
		require.InDelta(t, want[i], phase[i], 1e-9)
	}

	pw, err := rec.Column("PW")
	require.NoError(t, err)
	require.Equal(t, maths.Linspace(0, 10, 11), pw)

	tr, err := rec.Column(ColumnT)
	require.NoError(t, err)
	for _, v := range tr {
		require.InDelta(t, 1, v, 1e-12)
	}

	idx, err := rec.Column(ColumnIndex)
	require.NoError(t, err)
	require.Equal(t, 10.0, idx[10])

	_, err = rec.Column("nope")
	require.ErrorIs(t, err, ErrUnknownColumn)

	_, err = NewRecord(sweep(t), "a0", "zz")
	require.ErrorIs(t, err, network.ErrUnknownPin)
}

func TestRecordCSV(t *testing.T) {
	rec, err := NewRecord(sweep(t), "a0", "b0")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, rec.WriteCSV(&buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 12)
	require.Equal(t, []string{"PW", "T", "Phase", "Amplitude"}, rows[0])
	require.Equal(t, []string{"0", "1", "0", "(1+0i)"}, rows[1])
	require.Equal(t, "10", rows[11][0])
}

func TestRecordRender(t *testing.T) {
	rec, err := NewRecord(sweep(t), "a0", "b0")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, rec.Render(&buf))

	var back Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	require.Equal(t, rec.Names, back.Names)
	require.Equal(t, rec.T, back.T)
	require.Equal(t, rec.Amplitude(3), back.Amplitude(3))
}

func TestChartsSave(t *testing.T) {
	rec, err := NewRecord(sweep(t), "a0", "b0")
	require.NoError(t, err)
	c := NewCharts(rec)
	require.Equal(t, "PW", c.DefaultX())

	_, err = c.Plot("", "T", "nope")
	require.ErrorIs(t, err, ErrUnknownColumn)

	dir := t.TempDir()
	for _, name := range []string{"t.png", "t.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, c.Save(path, "", ColumnT, ColumnPhase))
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Positive(t, info.Size())
	}

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, FormatOf("x.SVG"), "PW"))
	require.Contains(t, buf.String(), "<svg")
}
