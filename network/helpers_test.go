package network

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joamatab/lekkersim/element"
	"github.com/joamatab/lekkersim/element/base"
)

// phaseOf 求解并返回 arg S[a,b]
func phaseOf(t *testing.T, n *Network, params element.Params, a, b string) float64 {
	t.Helper()
	r, err := n.Solve(params)
	require.NoError(t, err)
	ph, err := r.Phase(a, b)
	require.NoError(t, err)
	return ph
}

// transOf 求解并返回 |S[a,b]|²
func transOf(t *testing.T, n *Network, params element.Params, a, b string) float64 {
	t.Helper()
	r, err := n.Solve(params)
	require.NoError(t, err)
	tr, err := r.T(a, b)
	require.NoError(t, err)
	return tr
}

func build(t *testing.T, b *Builder) *Network {
	t.Helper()
	n, err := b.Build()
	require.NoError(t, err)
	return n
}

// shifter 单个移相器组成的网络，引脚 a0 b0
func shifter(t *testing.T, opts ...PlaceOption) *Network {
	t.Helper()
	b := NewBuilder("shifter")
	b.Place(base.NewPhaseShifter(""), opts...)
	require.NoError(t, b.RaisePins())
	return build(t, b)
}

// thermalShifter 以功率 PW 驱动的移相器，PS = 0.1·PW
func thermalShifter(t *testing.T) *Network {
	t.Helper()
	b := NewBuilder("thermal")
	b.Place(base.NewPhaseShifter(""))
	require.NoError(t, b.AddParam("PS", func(args element.Params) (float64, error) {
		return 0.1 * args["PW"], nil
	}, ArgDefault("PW", 0)))
	require.NoError(t, b.RaisePins())
	return build(t, b)
}

func coupler(t *testing.T) *base.BeamSplitter {
	t.Helper()
	bs, err := base.NewBeamSplitter(0.5)
	require.NoError(t, err)
	return bs
}

// mzm 两臂各带移相器、波导和衰减器的马赫-曾德尔调制器
func mzm(t *testing.T, opts ...Option) *Network {
	t.Helper()
	b := NewBuilder("MZM_BB", opts...)
	bs := coupler(t)
	wg := base.NewWaveguide(500, 2.5)
	ps := base.NewPhaseShifter("")
	at := base.NewAttenuator(0)

	bm1 := b.Place(bs, Named("bm1"))
	up := b.Place(wg, At("a0", bm1.Pin("b0")))
	up = b.Place(ps, At("a0", up.Pin("b0")), Rename(map[string]string{"PS": "PS1"}))
	up = b.Place(ps, At("a0", up.Pin("b0")), Rename(map[string]string{"PS": "DP"}))
	up = b.Place(at, At("a0", up.Pin("b0")))
	bm2 := b.Place(bs, Named("bm2"), At("a0", up.Pin("b0")))
	low := b.Place(wg, At("a0", bm1.Pin("b1")))
	low = b.Place(ps, At("a0", low.Pin("b0")), Rename(map[string]string{"PS": "PS2"}))
	low = b.Place(at, At("a0", low.Pin("b0")))
	require.NoError(t, b.Connect(low.Pin("b0"), bm2.Pin("a1")))

	require.NoError(t, b.Expose("a0", bm1.Pin("a0")))
	require.NoError(t, b.Expose("a1", bm1.Pin("a1")))
	require.NoError(t, b.Expose("b0", bm2.Pin("b0")))
	require.NoError(t, b.Expose("b1", bm2.Pin("b1")))
	b.SetDefaults(element.Params{"PS1": 0, "PS2": 0.5, "DP": 0})
	return build(t, b)
}
