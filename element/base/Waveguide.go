package base

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/joamatab/lekkersim/element"
	"github.com/joamatab/lekkersim/maths"
)

// WaveguideType 定义元件
var WaveguideType = element.AddElement("waveguide", func(args element.Args) (element.Model, error) {
	if err := args.Check("L", "n"); err != nil {
		return nil, err
	}
	return NewWaveguide(args.Float("L", 0), args.Float("n", 1)), nil
})

// Waveguide 固定折射率波导，传输相位 2π·n·L/wl
type Waveguide struct {
	*element.Config
	Length float64 // 长度，与波长同单位
	Neff   float64 // 有效折射率
}

// NewWaveguide 创建波导，波长 wl 作为必填参数
func NewWaveguide(length, neff float64) *Waveguide {
	return &Waveguide{
		Config: &element.Config{
			Name:      "wg",
			Pin:       []string{"a0", "b0"},
			ValueInit: element.Defaults{"wl": element.Required()},
		},
		Length: length,
		Neff:   neff,
	}
}

// Recompute 计算传输矩阵
func (wg *Waveguide) Recompute(params element.Params) (maths.Matrix[complex128], error) {
	wl, err := params.Float("wl")
	if err != nil {
		return nil, err
	}
	return propagate(wg.Neff, wg.Length, wl)
}

// propagate 二端口无反射传输 e^{2iπ·n·L/wl}
func propagate(neff, length, wl float64) (maths.Matrix[complex128], error) {
	if wl <= 0 {
		return nil, fmt.Errorf("%w: wl=%g 必须为正", element.ErrInvalidArgument, wl)
	}
	s := element.NewScattering(2)
	element.SetPair(s, 0, 1, cmplx.Exp(complex(0, 2*math.Pi*neff*length/wl)))
	return s, nil
}
