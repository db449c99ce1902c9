package load

import (
	"context"
	"math"
	"math/cmplx"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joamatab/lekkersim/element"
	"github.com/joamatab/lekkersim/element/base"
	"github.com/joamatab/lekkersim/network"
)

const library = `
network "TH_PS" {
  component "ps" { kind = "phase_shifter" }
  derived "PS" {
    expr = 0.1 * PW
    args = { PW = 0 }
  }
  raise_pins = true
}

network "TWO" {
  component "ps1" {
    network = "TH_PS"
    rename  = { PW = "PW1" }
  }
  component "ps2" {
    network = "TH_PS"
    rename  = { PW = "PW2" }
  }
  connect {
    from = "ps1.b0"
    to   = "ps2.a0"
  }
  expose "a0" { pin = "ps1.a0" }
  expose "b0" { pin = "ps2.b0" }
  param "PW1" { default = 5 }
}

network "MZI" {
  param "wl" { default = 1.55 }
  component "bm1" { kind = "beam_splitter" }
  component "bm2" {
    kind = "beam_splitter"
    args = { ratio = 0.5 }
  }
  component "ps" { kind = "phase_shifter" }
  connect {
    from = "bm1.b0"
    to   = "ps.a0"
  }
  connect {
    from = "ps.b0"
    to   = "bm2.a0"
  }
  connect {
    from = "bm1.b1"
    to   = "bm2.a1"
  }
  raise_pins = true
}
`

func loadString(t *testing.T, src string, opts ...network.Option) *Library {
	t.Helper()
	lib, err := NewLoader(opts...).LoadBytes(context.Background(), []byte(src), "test.hcl")
	require.NoError(t, err)
	return lib
}

func phase(t *testing.T, n *network.Network, params element.Params, a, b string) float64 {
	t.Helper()
	r, err := n.Solve(params)
	require.NoError(t, err)
	ph, err := r.Phase(a, b)
	require.NoError(t, err)
	return ph
}

func TestLoadLibrary(t *testing.T) {
	lib := loadString(t, library)
	require.Equal(t, []string{"TH_PS", "TWO", "MZI"}, lib.Names())
	require.Equal(t, 3, lib.Len())

	th, ok := lib.Get("TH_PS")
	require.True(t, ok)
	require.Equal(t, []string{"a0", "b0"}, th.Pins())
	require.Equal(t, element.Defaults{"PW": element.Default(0)}, th.DefaultParams())
	require.InDelta(t, 0.5*math.Pi, phase(t, th, element.Params{"PW": 5}, "a0", "b0"), 1e-12)

	two, ok := lib.Get("TWO")
	require.True(t, ok)
	require.Equal(t, []string{"a0", "b0"}, two.Pins())
	require.Equal(t, element.Defaults{"PW1": element.Default(5), "PW2": element.Default(0)}, two.DefaultParams())
	require.InDelta(t, 0.5*math.Pi, phase(t, two, nil, "a0", "b0"), 1e-12, "PW1 默认为 5")
	require.InDelta(t, 0.5*math.Pi, phase(t, two, element.Params{"PW1": 2, "PW2": 3}, "a0", "b0"), 1e-12)

	_, ok = lib.Get("nope")
	require.False(t, ok)
}

func TestLoadInterferometer(t *testing.T) {
	mzi, ok := loadString(t, library).Get("MZI")
	require.True(t, ok)
	require.Equal(t, []string{"a0", "a1", "b0", "b1"}, mzi.Pins())
	for _, ps := range []float64{0, 0.3, 1} {
		r, err := mzi.Solve(element.Params{"PS": ps})
		require.NoError(t, err)
		tr, err := r.T("a0", "b0")
		require.NoError(t, err)
		require.InDelta(t, math.Pow(math.Sin(0.5*math.Pi*ps), 2), tr, 1e-9, "PS=%v", ps)
	}
}

func TestUserWaveguide(t *testing.T) {
	lib := loadString(t, `
network "WG" {
  component "wg" {
    kind  = "user_waveguide"
    args  = { L = 500 }
    neff  = 2.5 + 0.1 * pol
    modes = ["TE", "TM"]
    mode "TE" { params = { pol = 0 } }
    mode "TM" { params = { pol = 1 } }
  }
  raise_pins = true
}

network "SINE" {
  component "wg" {
    kind   = "user_waveguide"
    args   = { L = 100 }
    neff   = 2 + sin(pi * x) + pow(y, 2)
    params = { y = 1 }
  }
  raise_pins = true
}
`)
	wg, ok := lib.Get("WG")
	require.True(t, ok)
	require.Equal(t, []string{"a0_TE", "b0_TE", "a0_TM", "b0_TM"}, wg.Pins())
	require.Equal(t, element.Defaults{"wl": element.Required()}, wg.DefaultParams(), "模式固定的 pol 不是网络参数")

	r, err := wg.Solve(element.Params{"wl": 1.55})
	require.NoError(t, err)
	for mode, n := range map[string]float64{"TE": 2.5, "TM": 2.6} {
		s, err := base.NewWaveguide(500, n).Recompute(element.Params{"wl": 1.55})
		require.NoError(t, err)
		got, err := r.Amplitude("a0_"+mode, "b0_"+mode)
		require.NoError(t, err)
		require.InDelta(t, 0, cmplx.Abs(got-s.Get(0, 1)), 1e-9, mode)
	}
	cross, err := r.Amplitude("a0_TE", "b0_TM")
	require.NoError(t, err)
	require.Zero(t, cross, "模式之间不耦合")

	sine, ok := lib.Get("SINE")
	require.True(t, ok)
	require.Equal(t, element.Defaults{
		"wl": element.Required(),
		"x":  element.Required(),
		"y":  element.Default(1),
	}, sine.DefaultParams())
	r, err = sine.Solve(element.Params{"wl": 1.5, "x": 0.5})
	require.NoError(t, err)
	got, err := r.Amplitude("a0", "b0")
	require.NoError(t, err)
	s, err := base.NewWaveguide(100, 4).Recompute(element.Params{"wl": 1.5})
	require.NoError(t, err)
	require.InDelta(t, 0, cmplx.Abs(got-s.Get(0, 1)), 1e-9)
}

func TestUserWaveguidePartialModes(t *testing.T) {
	lib := loadString(t, `
network "WG" {
  component "wg" {
    kind  = "user_waveguide"
    args  = { L = 500 }
    neff  = 3.2 - 0.1 * pol
    modes = ["TE", "TM"]
    mode "TE" { params = { pol = 0 } }
  }
  raise_pins = true
}
`)
	wg, ok := lib.Get("WG")
	require.True(t, ok)
	require.Equal(t, element.Defaults{"wl": element.Required(), "pol": element.Required()}, wg.DefaultParams(),
		"TM 未固定 pol，需要由网络参数给出")

	r, err := wg.Solve(element.Params{"wl": 1.55, "pol": 1})
	require.NoError(t, err)
	for mode, n := range map[string]float64{"TE": 3.2, "TM": 3.1} {
		s, err := base.NewWaveguide(500, n).Recompute(element.Params{"wl": 1.55})
		require.NoError(t, err)
		got, err := r.Amplitude("a0_"+mode, "b0_"+mode)
		require.NoError(t, err)
		require.InDelta(t, 0, cmplx.Abs(got-s.Get(0, 1)), 1e-9, mode)
	}

	_, err = wg.Solve(element.Params{"wl": 1.55})
	require.ErrorIs(t, err, network.ErrMissingParameter)
}

func TestDerivedBinding(t *testing.T) {
	lib := loadString(t, `
network "BOUND" {
  component "ps" { kind = "phase_shifter" }
  derived "PS" {
    expr = max(0, V) * k
    args = { k = 0.25 }
    bind = { V = "voltage" }
  }
  raise_pins = true
}
`)
	n, ok := lib.Get("BOUND")
	require.True(t, ok)
	require.Equal(t, element.Defaults{"voltage": element.Required(), "k": element.Default(0.25)}, n.DefaultParams())
	require.InDelta(t, 0.5*math.Pi, phase(t, n, element.Params{"voltage": 2}, "a0", "b0"), 1e-12)
	require.InDelta(t, 0, phase(t, n, element.Params{"voltage": -2}, "a0", "b0"), 1e-12)

	_, err := n.Solve(nil)
	require.ErrorIs(t, err, network.ErrMissingParameter)
}

func TestExpressionError(t *testing.T) {
	lib := loadString(t, `
network "ROOT" {
  component "ps" { kind = "phase_shifter" }
  derived "PS" { expr = sqrt(x) }
  raise_pins = true
}
`)
	n, _ := lib.Get("ROOT")
	_, err := n.Solve(element.Params{"x": -1})
	require.ErrorIs(t, err, ErrExpression)
	require.InDelta(t, 0.5*math.Pi, phase(t, n, element.Params{"x": 0.25}, "a0", "b0"), 1e-12)
}

func TestStrictPorts(t *testing.T) {
	src := `
network "OPEN" {
  strict_ports = true
  component "ps" { kind = "phase_shifter" }
  expose "in" { pin = "ps.a0" }
}
`
	_, err := NewLoader().LoadBytes(context.Background(), []byte(src), "open.hcl")
	require.ErrorIs(t, err, network.ErrDanglingPin)

	lib, err := NewLoader().LoadBytes(context.Background(), []byte(`
network "OPEN" {
  component "ps" { kind = "phase_shifter" }
  expose "in" { pin = "ps.a0" }
}
`), "open.hcl")
	require.NoError(t, err)
	n, _ := lib.Get("OPEN")
	require.Equal(t, []string{"in"}, n.Pins())
}

func TestWavelengthAttribute(t *testing.T) {
	lib, err := NewLoader().LoadBytes(context.Background(), []byte(`
network "PS" {
  wavelength = true
  raise_pins = true
  component "ps" { kind = "phase_shifter" }
}
`), "ps.hcl")
	require.NoError(t, err)
	n, _ := lib.Get("PS")
	require.Equal(t, element.Defaults{"PS": element.Default(0), "wl": element.Required()}, n.DefaultParams())
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"语法错误", `network "x" {`, ErrParse},
		{"未知块", `
network "x" {
  wire {}
}`, ErrParse},
		{"网络重名", `
network "x" { raise_pins = true }
network "x" { raise_pins = true }`, ErrDuplicateNetwork},
		{"引用后面的网络", `
network "a" {
  component "c" { network = "b" }
}
network "b" { raise_pins = true }`, ErrUnknownNetwork},
		{"未知元件", `
network "x" {
  component "c" { kind = "flux" }
}`, element.ErrUnknownKind},
		{"非法参数", `
network "x" {
  component "c" {
    kind = "waveguide"
    args = { len = 1 }
  }
}`, element.ErrInvalidArgument},
		{"kind 与 network 并存", `
network "a" { raise_pins = true }
network "b" {
  component "c" {
    kind    = "phase_shifter"
    network = "a"
  }
}`, ErrInvalidComponent},
		{"缺少 kind", `
network "x" {
  component "c" {
  }
}`, ErrInvalidComponent},
		{"缺少 neff", `
network "x" {
  component "c" {
    kind = "user_waveguide"
    args = { L = 1 }
  }
}`, ErrInvalidComponent},
		{"未知组件", `
network "x" {
  component "c" { kind = "phase_shifter" }
  connect {
    from = "c.a0"
    to   = "d.a0"
  }
}`, ErrUnknownComponent},
		{"未知引脚", `
network "x" {
  component "c" { kind = "phase_shifter" }
  expose "in" { pin = "c.a9" }
}`, network.ErrUnknownPin},
		{"引脚格式", `
network "x" {
  component "c" { kind = "phase_shifter" }
  expose "in" { pin = "a0" }
}`, network.ErrUnknownPin},
		{"组件重名", `
network "x" {
  component "c" { kind = "phase_shifter" }
  component "c" { kind = "phase_shifter" }
}`, network.ErrDuplicateName},
		{"多余入参", `
network "x" {
  component "c" { kind = "phase_shifter" }
  derived "PS" {
    expr = 2 * a
    args = { b = 1 }
  }
}`, ErrExpression},
		{"模式不在列表", `
network "x" {
  component "c" {
    kind  = "user_waveguide"
    args  = { L = 1 }
    neff  = 2
    modes = ["TE"]
    mode "TM" {
    }
  }
}`, ErrInvalidComponent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().LoadBytes(context.Background(), []byte(tc.src), "bad.hcl")
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "lib")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "a.hcl"), []byte(`
network "TH_PS" {
  component "ps" { kind = "phase_shifter" }
  derived "PS" {
    expr = 0.1 * PW
    args = { PW = 0 }
  }
  raise_pins = true
}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "notes.txt"), []byte("ignored"), 0o644))
	top := filepath.Join(dir, "top.hcl")
	require.NoError(t, os.WriteFile(top, []byte(`
network "TOP" {
  component "t" { network = "TH_PS" }
  raise_pins = true
}`), 0o644))

	lib, err := NewLoader().Load(context.Background(), sub, top)
	require.NoError(t, err)
	require.Equal(t, []string{"TH_PS", "TOP"}, lib.Names())

	_, err = NewLoader().Load(context.Background(), top, sub)
	require.ErrorIs(t, err, ErrUnknownNetwork, "文件顺序决定可引用的网络")

	_, err = NewLoader().Load(context.Background(), filepath.Join(dir, "missing.hcl"))
	require.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewLoader().Load(ctx, sub)
	require.ErrorIs(t, err, context.Canceled)
}
