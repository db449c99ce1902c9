package base

import (
	"math"

	"github.com/joamatab/lekkersim/element"
	"github.com/joamatab/lekkersim/maths"
)

// PolRotType 定义元件，给出 angle 时角度固定，否则角度为参数 "angle"
var PolRotType = element.AddElement("pol_rot", func(args element.Args) (element.Model, error) {
	if err := args.Check("angle"); err != nil {
		return nil, err
	}
	if args.Has("angle") {
		return NewPolRot(args.Float("angle", 0)), nil
	}
	return NewPolRotParam(""), nil
})

// PolRot 偏振旋转器，引脚 a0_TE a0_TM b0_TE b0_TM，角度单位为度
type PolRot struct {
	*element.Config
	Param string   // 参数化角度的参数名
	Angle *float64 // 非空时角度固定
}

var polRotPins = []string{"a0_TE", "a0_TM", "b0_TE", "b0_TM"}

// NewPolRot 创建固定角度的旋转器
func NewPolRot(angle float64) *PolRot {
	return &PolRot{
		Config: &element.Config{Name: "pr", Pin: polRotPins, ValueInit: element.Defaults{}},
		Angle:  &angle,
	}
}

// NewPolRotParam 创建角度可调的旋转器，param 为空时参数名为 "angle"，默认值 0
func NewPolRotParam(param string) *PolRot {
	if param == "" {
		param = "angle"
	}
	return &PolRot{
		Config: &element.Config{Name: "pr", Pin: polRotPins, ValueInit: element.Defaults{param: element.Default(0)}},
		Param:  param,
	}
}

// Recompute 计算旋转矩阵
func (pr *PolRot) Recompute(params element.Params) (maths.Matrix[complex128], error) {
	var angle float64
	if pr.Angle != nil {
		angle = *pr.Angle
	} else {
		v, err := params.Float(pr.Param)
		if err != nil {
			return nil, err
		}
		angle = v
	}
	c := complex(math.Cos(math.Pi*angle/180), 0)
	s := complex(math.Sin(math.Pi*angle/180), 0)
	return blocks(
		[][]complex128{{c, s}, {-s, c}},
		[][]complex128{{c, -s}, {s, c}},
	), nil
}
