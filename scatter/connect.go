package scatter

import (
	"fmt"
	"math/cmplx"

	"github.com/joamatab/lekkersim/maths"
)

// Connect 连接同一系统内的两个引脚并将二者消去。
//
// 记 b = S·a，连接意味着 a[pa] = b[pb] 且 a[pb] = b[pa]。消元后其余引脚间的
// 散射矩阵为
//
//	S'[i,j] = S[i,j] + ( S[i,pa]·((1−S[pa,pb])·S[pb,j] + S[pb,pb]·S[pa,j])
//	                   + S[i,pb]·((1−S[pb,pa])·S[pa,j] + S[pa,pa]·S[pb,j]) ) / den
//	den     = (1−S[pa,pb])·(1−S[pb,pa]) − S[pa,pa]·S[pb,pb]
//
// |den| ≤ tol 时返回 ErrDegenerateConnection。剩余引脚保持原相对顺序。
func (sys *System) Connect(pinA, pinB string, tol float64) (*System, error) {
	a, ok := sys.index[pinA]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPin, pinA)
	}
	b, ok := sys.index[pinB]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPin, pinB)
	}
	if a == b {
		return nil, fmt.Errorf("%w: %q", ErrSelfConnection, pinA)
	}

	s := sys.s
	saa, sab, sba, sbb := s.Get(a, a), s.Get(a, b), s.Get(b, a), s.Get(b, b)
	den := (1-sab)*(1-sba) - saa*sbb
	if cmplx.Abs(den) <= tol {
		return nil, fmt.Errorf("%w: %q-%q |den|=%.3g", ErrDegenerateConnection, pinA, pinB, cmplx.Abs(den))
	}

	rest := make([]int, 0, len(sys.pins)-2)
	pins := make([]string, 0, len(sys.pins)-2)
	for i, p := range sys.pins {
		if i != a && i != b {
			rest = append(rest, i)
			pins = append(pins, p)
		}
	}

	// 预先计算两列出射系数，内层循环只剩乘加
	n := len(rest)
	colA := make([]complex128, n)
	colB := make([]complex128, n)
	for k, j := range rest {
		colA[k] = ((1-sab)*s.Get(b, j) + sbb*s.Get(a, j)) / den
		colB[k] = ((1-sba)*s.Get(a, j) + saa*s.Get(b, j)) / den
	}

	m := maths.NewDenseMatrix[complex128](n, n)
	for r, i := range rest {
		sia, sib := s.Get(i, a), s.Get(i, b)
		for c, j := range rest {
			m.Set(r, c, s.Get(i, j)+sia*colA[c]+sib*colB[c])
		}
	}
	return New(pins, m)
}
