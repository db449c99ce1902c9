// Package base 提供常用光子元件模型，并在导入时注册到元件类型表。
package base

import (
	"fmt"

	"github.com/joamatab/lekkersim/element"
	"github.com/joamatab/lekkersim/maths"
)

// fixed 矩阵与参数无关的元件，Recompute 返回预先计算矩阵的副本
type fixed struct {
	*element.Config
	s maths.Matrix[complex128]
}

// Recompute 返回固定矩阵
func (f *fixed) Recompute(element.Params) (maths.Matrix[complex128], error) {
	return f.s.Clone(), nil
}

// ratioRange 检查比例参数位于 [lo, hi]
func ratioRange(name string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s=%g 超出 [%g, %g]", element.ErrInvalidArgument, name, v, lo, hi)
	}
	return nil
}

// blocks 按 [[0, ab], [ba, 0]] 组装 a/b 两组引脚之间的散射矩阵，
// ab[i][j] = S[a_i, b_j]，ba[j][i] = S[b_j, a_i]
func blocks(ab, ba [][]complex128) maths.Matrix[complex128] {
	n, m := len(ab), len(ba)
	s := element.NewScattering(n + m)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			s.Set(i, n+j, ab[i][j])
			s.Set(n+j, i, ba[j][i])
		}
	}
	return s
}
