package lekkersim

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joamatab/lekkersim/element"
)

const thermal = `
network "TH_PS" {
  component "ps" { kind = "phase_shifter" }
  derived "PS" {
    expr = 0.1 * PW
    args = { PW = 0 }
  }
  raise_pins = true
}

network "MZM" {
  param "wl" { default = 1.55 }
  component "bm1" { kind = "beam_splitter" }
  component "bm2" { kind = "beam_splitter" }
  component "up" {
    network = "TH_PS"
    rename  = { PW = "PW1" }
  }
  component "wg1" {
    kind = "waveguide"
    args = { L = 500, n = 2.5 }
  }
  component "wg2" {
    kind = "waveguide"
    args = { L = 500, n = 2.5 }
  }
  connect {
    from = "bm1.b0"
    to   = "wg1.a0"
  }
  connect {
    from = "wg1.b0"
    to   = "up.a0"
  }
  connect {
    from = "up.b0"
    to   = "bm2.a0"
  }
  connect {
    from = "bm1.b1"
    to   = "wg2.a0"
  }
  connect {
    from = "wg2.b0"
    to   = "bm2.a1"
  }
  raise_pins = true
}
`

func TestSimulator(t *testing.T) {
	sim := NewSimulator()
	_, err := sim.Network("MZM")
	require.ErrorIs(t, err, ErrNoNetwork)
	require.Nil(t, sim.Networks())

	require.NoError(t, sim.LoadBytes(context.Background(), []byte(thermal), "mzm.hcl"))
	require.Equal(t, []string{"TH_PS", "MZM"}, sim.Networks())

	r, err := sim.Solve("MZM", element.Params{"PW1": 5})
	require.NoError(t, err)
	tr, err := r.T("a0", "b0")
	require.NoError(t, err)
	require.InDelta(t, 0.5, tr, 1e-9, "PS=0.5 时两端口各一半")

	rec, err := sim.Export(context.Background(), "MZM", nil, map[string][]float64{"PW1": {0, 5, 10}}, "a0", "b0")
	require.NoError(t, err)
	require.Equal(t, 3, rec.Len())
	for i, want := range []float64{0, 0.5, 1} {
		require.InDelta(t, want, rec.T[i], 1e-9)
	}

	_, err = sim.Solve("nope", nil)
	require.ErrorIs(t, err, ErrNoNetwork)
	_, err = sim.Sweep(context.Background(), "nope", nil, nil)
	require.ErrorIs(t, err, ErrNoNetwork)
}

func TestSimulatorLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mzm.hcl")
	require.NoError(t, os.WriteFile(path, []byte(thermal), 0o644))

	sim := NewSimulator()
	require.NoError(t, sim.Load(context.Background(), path))
	sw, err := sim.Sweep(context.Background(), "TH_PS", nil, map[string][]float64{"PW": {0, 10}})
	require.NoError(t, err)
	require.Equal(t, 2, sw.Len())
	ph, err := sw.Models[1].Phase("a0", "b0")
	require.NoError(t, err)
	require.InDelta(t, math.Pi, math.Abs(ph), 1e-9)

	require.Error(t, sim.Load(context.Background(), filepath.Join(t.TempDir(), "missing.hcl")))
	require.Equal(t, []string{"TH_PS", "MZM"}, sim.Networks(), "加载失败时保留已有网络")
}
