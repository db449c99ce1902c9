package base

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joamatab/lekkersim/element"
)

func TestPhaseShifter(t *testing.T) {
	ps := NewPhaseShifter("")
	require.Equal(t, []string{"a0", "b0"}, ps.Pins())
	require.Equal(t, element.Defaults{"PS": element.Default(0)}, ps.Defaults())

	s, err := ps.Recompute(element.Params{"PS": 0})
	require.NoError(t, err)
	require.InDelta(t, 0, cmplx.Phase(s.Get(0, 1)), 1e-15)

	s, err = ps.Recompute(element.Params{"PS": 0.5})
	require.NoError(t, err)
	require.InDelta(t, math.Pi/2, cmplx.Phase(s.Get(0, 1)), 1e-12)
	require.Equal(t, s.Get(0, 1), s.Get(1, 0), "移相器应互易")

	_, err = ps.Recompute(element.Params{})
	require.ErrorIs(t, err, element.ErrMissingParameter)

	named := NewPhaseShifter("PW")
	require.Contains(t, named.Defaults(), "PW")
}

func TestAttenuator(t *testing.T) {
	s, err := NewAttenuator(10).Recompute(nil)
	require.NoError(t, err)
	require.InDelta(t, 0.1, real(s.Get(0, 1)), 1e-15)
	require.InDelta(t, 0.1, real(s.Get(1, 0)), 1e-15)
	require.Equal(t, complex(0, 0), s.Get(0, 0))
}

func TestRecomputeReturnsFreshMatrix(t *testing.T) {
	att := NewAttenuator(0)
	a, err := att.Recompute(nil)
	require.NoError(t, err)
	a.Set(0, 1, 5)
	b, err := att.Recompute(nil)
	require.NoError(t, err)
	require.Equal(t, complex(1, 0), b.Get(0, 1), "修改返回矩阵不应影响模型")
}
