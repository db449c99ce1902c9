package base

import (
	"math"

	"github.com/joamatab/lekkersim/element"
	"github.com/joamatab/lekkersim/maths"
)

// MirrorType 定义元件
var MirrorType = element.AddElement("mirror", func(args element.Args) (element.Model, error) {
	if err := args.Check("ref", "phase"); err != nil {
		return nil, err
	}
	m, err := NewMirror(args.Float("ref", 0.5), args.Float("phase", 0))
	if err != nil {
		return nil, err
	}
	return m, nil
})

// PerfectMirrorType 定义元件
var PerfectMirrorType = element.AddElement("perfect_mirror", func(args element.Args) (element.Model, error) {
	if err := args.Check("phase"); err != nil {
		return nil, err
	}
	return NewPerfectMirror(args.Float("phase", 0)), nil
})

// Mirror 部分反射镜，反射功率 ref
type Mirror struct {
	fixed
	Ref, Phase float64
}

// NewMirror 创建反射镜
func NewMirror(ref, phase float64) (*Mirror, error) {
	if err := ratioRange("ref", ref, 0, 1); err != nil {
		return nil, err
	}
	t := complex(math.Sqrt(ref), 0)
	c := complex(math.Sqrt(1-ref), 0)
	e := element.ExpIPi(phase)
	s := maths.NewDenseMatrixFrom([][]complex128{{t * e, c}, {-c, t / e}})
	return &Mirror{
		fixed: fixed{&element.Config{Name: "mr", Pin: []string{"a0", "b0"}}, s},
		Ref:   ref,
		Phase: phase,
	}, nil
}

// PerfectMirror 全反射单端口
type PerfectMirror struct {
	fixed
	Phase float64
}

// NewPerfectMirror 创建全反射镜
func NewPerfectMirror(phase float64) *PerfectMirror {
	s := maths.NewDenseMatrixFrom([][]complex128{{element.ExpIPi(phase)}})
	return &PerfectMirror{
		fixed: fixed{&element.Config{Name: "pm", Pin: []string{"a0"}}, s},
		Phase: phase,
	}
}
