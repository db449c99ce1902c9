package base

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joamatab/lekkersim/element"
)

func TestWaveguide(t *testing.T) {
	wg := NewWaveguide(0.25, 1)
	require.Equal(t, element.Defaults{"wl": element.Required()}, wg.Defaults())

	s, err := wg.Recompute(element.Params{"wl": 1})
	require.NoError(t, err)
	require.InDelta(t, math.Pi/2, cmplx.Phase(s.Get(0, 1)), 1e-12)
	require.InDelta(t, 1, cmplx.Abs(s.Get(1, 0)), 1e-15)

	_, err = wg.Recompute(element.Params{})
	require.ErrorIs(t, err, element.ErrMissingParameter)

	_, err = wg.Recompute(element.Params{"wl": 0})
	require.ErrorIs(t, err, element.ErrInvalidArgument)
}

func TestUserWaveguide(t *testing.T) {
	neff := func(p element.Params) (float64, error) {
		// TE 与 TM 有效折射率不同
		return 2 + 0.5*p["pol"] + p["w"], nil
	}
	wg := NewUserWaveguide(1, neff,
		element.Defaults{"w": element.Default(0), "pol": element.Required()},
		element.Mode{Tag: "TE", Params: element.Params{"pol": 0}},
		element.Mode{Tag: "TM", Params: element.Params{"pol": 1}},
	)
	require.Equal(t, element.Defaults{
		"w":   element.Default(0),
		"pol": element.Required(),
		"wl":  element.Required(),
	}, wg.Defaults(), "模式固定的参数由放置决定是否排除，模型本身保留")
	require.Len(t, wg.Modes(), 2)

	var _ element.Multimode = wg

	s, err := wg.Recompute(element.Params{"wl": 4, "w": 0, "pol": 1})
	require.NoError(t, err)
	// neff = 2.5, L/wl = 0.25 => 相位 2π·0.625 = 1.25π ≡ −0.75π
	require.InDelta(t, -0.75*math.Pi, cmplx.Phase(s.Get(0, 1)), 1e-12)
}
