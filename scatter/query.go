package scatter

import (
	"fmt"
	"math/cmplx"

	"github.com/joamatab/lekkersim/maths"
)

// Amplitude 返回复幅度 S[a, b]，互易器件上即 a、b 之间的传输幅度。
func (sys *System) Amplitude(a, b string) (complex128, error) {
	return sys.Get(a, b)
}

// T 返回功率传输 |S[a, b]|²。
func (sys *System) T(a, b string) (float64, error) {
	v, err := sys.Amplitude(a, b)
	if err != nil {
		return 0, err
	}
	m := cmplx.Abs(v)
	return m * m, nil
}

// Phase 返回 arg S[a, b]，范围 [−π, π]。
func (sys *System) Phase(a, b string) (float64, error) {
	v, err := sys.Amplitude(a, b)
	if err != nil {
		return 0, err
	}
	return cmplx.Phase(v), nil
}

// Output 给定各输入引脚的复幅度，返回所有引脚的出射幅度 S·a。
// 未出现在 inputs 中的引脚输入视为零。
func (sys *System) Output(inputs map[string]complex128) (map[string]complex128, error) {
	a := maths.NewDenseVector[complex128](sys.Size())
	for pin, v := range inputs {
		i, ok := sys.index[pin]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPin, pin)
		}
		a.Set(i, v)
	}
	b := sys.s.MatrixVectorMultiply(a)
	out := make(map[string]complex128, sys.Size())
	for i, p := range sys.pins {
		out[p] = b.Get(i)
	}
	return out, nil
}

// OutputPower 与 Output 相同，但返回各引脚的出射功率 |b|²。
func (sys *System) OutputPower(inputs map[string]complex128) (map[string]float64, error) {
	amp, err := sys.Output(inputs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(amp))
	for p, v := range amp {
		m := cmplx.Abs(v)
		out[p] = m * m
	}
	return out, nil
}
