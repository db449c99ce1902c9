package base

import (
	"math"

	"github.com/joamatab/lekkersim/element"
	"github.com/joamatab/lekkersim/maths"
)

// SplitterType 定义元件
var SplitterType = element.AddElement("splitter", func(args element.Args) (element.Model, error) {
	if err := args.Check(); err != nil {
		return nil, err
	}
	return NewSplitter(), nil
})

// GeneralSplitterType 定义元件
var GeneralSplitterType = element.AddElement("general_splitter", func(args element.Args) (element.Model, error) {
	if err := args.Check("cross", "phase"); err != nil {
		return nil, err
	}
	sp, err := NewGeneralSplitter(args.Float("cross", 0), args.Float("phase", 0))
	if err != nil {
		return nil, err
	}
	return sp, nil
})

var splitterPins = []string{"a0", "b0", "b1"}

// Splitter 理想 1×2 分束器
type Splitter struct{ fixed }

// NewSplitter 创建分束器
func NewSplitter() *Splitter {
	h := complex(1/math.Sqrt2, 0)
	s := maths.NewDenseMatrixFrom([][]complex128{{0, h, h}, {h, 0, 0}, {h, 0, 0}})
	return &Splitter{fixed{&element.Config{Name: "sp", Pin: splitterPins}, s}}
}

// GeneralSplitter 输出端之间带串扰的 1×2 分束器，cross ∈ [0, 0.5]
type GeneralSplitter struct {
	fixed
	Cross, Phase float64
}

// NewGeneralSplitter 创建分束器
func NewGeneralSplitter(cross, phase float64) (*GeneralSplitter, error) {
	if err := ratioRange("cross", cross, 0, 0.5); err != nil {
		return nil, err
	}
	c := complex(math.Sqrt(cross), 0)
	t := complex(math.Sqrt(0.5-cross), 0)
	e := element.ExpIPi(phase)
	s := maths.NewDenseMatrixFrom([][]complex128{{0, t, t}, {t, 0, c * e}, {t, c / e, 0}})
	return &GeneralSplitter{
		fixed: fixed{&element.Config{Name: "gsp", Pin: splitterPins}, s},
		Cross: cross,
		Phase: phase,
	}, nil
}
