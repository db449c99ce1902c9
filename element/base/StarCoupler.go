package base

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/joamatab/lekkersim/element"
)

// StarCouplerType 定义元件
var StarCouplerType = element.AddElement("star_coupler", func(args element.Args) (element.Model, error) {
	if err := args.Check("n", "m", "phi"); err != nil {
		return nil, err
	}
	n, err := args.Int("n", 1)
	if err != nil {
		return nil, err
	}
	m, err := args.Int("m", 1)
	if err != nil {
		return nil, err
	}
	sc, err := NewStarCoupler(n, m, args.Float("phi", 0.1))
	if err != nil {
		return nil, err
	}
	return sc, nil
})

// StarCoupler N×M 自由传播区（星形耦合器），输入 a0..a{N-1}，输出 b0..b{M-1}。
// 内部矩阵 Sint[i,j] = e^{−iπ·phi·(i−N/2+0.5)(j−M/2+0.5)}。
type StarCoupler struct {
	fixed
	N, M int
	Phi  float64
}

// NewStarCoupler 创建星形耦合器
func NewStarCoupler(n, m int, phi float64) (*StarCoupler, error) {
	if n < 1 || m < 1 {
		return nil, fmt.Errorf("%w: 端口数 %d×%d", element.ErrInvalidArgument, n, m)
	}
	ab := make([][]complex128, n)
	ba := make([][]complex128, m)
	for j := range ba {
		ba[j] = make([]complex128, n)
	}
	sn, sm := complex(math.Sqrt(float64(n)), 0), complex(math.Sqrt(float64(m)), 0)
	for i := 0; i < n; i++ {
		ab[i] = make([]complex128, m)
		for j := 0; j < m; j++ {
			x := (float64(i) - 0.5*float64(n) + 0.5) * (float64(j) - 0.5*float64(m) + 0.5)
			v := cmplx.Exp(complex(0, -math.Pi*phi*x))
			ab[i][j] = v / sm
			ba[j][i] = cmplx.Conj(v) / sn
		}
	}
	pins := append(element.SetPin("a", n), element.SetPin("b", m)...)
	return &StarCoupler{
		fixed: fixed{&element.Config{Name: "fpr", Pin: pins}, blocks(ab, ba)},
		N:     n,
		M:     m,
		Phi:   phi,
	}, nil
}
