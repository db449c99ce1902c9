package element

import (
	"math"
	"math/cmplx"

	"github.com/joamatab/lekkersim/maths"
)

// NewScattering 创建 n 阶零散射矩阵
func NewScattering(n int) maths.Matrix[complex128] {
	return maths.NewDenseMatrix[complex128](n, n)
}

// SetPair 互易设置 S[i,j] = S[j,i] = v
func SetPair(m maths.Matrix[complex128], i, j int, v complex128) {
	m.Set(i, j, v)
	m.Set(j, i, v)
}

// ExpIPi 返回 e^{iπ·x}
func ExpIPi(x float64) complex128 {
	return cmplx.Exp(complex(0, math.Pi*x))
}
