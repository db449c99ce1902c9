package base

import (
	"github.com/joamatab/lekkersim/element"
	"github.com/joamatab/lekkersim/maths"
)

// PhaseShifterType 定义元件
var PhaseShifterType = element.AddElement("phase_shifter", func(args element.Args) (element.Model, error) {
	if err := args.Check(); err != nil {
		return nil, err
	}
	return NewPhaseShifter(""), nil
})

// PhaseShifter 可调移相器，S[a0,b0] = S[b0,a0] = e^{iπ·PS}
type PhaseShifter struct {
	*element.Config
	Param string
}

// NewPhaseShifter 创建移相器，param 为空时参数名为 "PS"，默认值 0
func NewPhaseShifter(param string) *PhaseShifter {
	if param == "" {
		param = "PS"
	}
	return &PhaseShifter{
		Config: &element.Config{
			Name:      "ps",
			Pin:       []string{"a0", "b0"},
			ValueInit: element.Defaults{param: element.Default(0)},
		},
		Param: param,
	}
}

// Recompute 计算相移矩阵
func (ps *PhaseShifter) Recompute(params element.Params) (maths.Matrix[complex128], error) {
	v, err := params.Float(ps.Param)
	if err != nil {
		return nil, err
	}
	s := element.NewScattering(2)
	element.SetPair(s, 0, 1, element.ExpIPi(v))
	return s, nil
}
