package base

import (
	"math"

	"github.com/joamatab/lekkersim/element"
)

// BeamSplitterType 定义元件
var BeamSplitterType = element.AddElement("beam_splitter", func(args element.Args) (element.Model, error) {
	if err := args.Check("ratio"); err != nil {
		return nil, err
	}
	bs, err := NewBeamSplitter(args.Float("ratio", 0.5))
	if err != nil {
		return nil, err
	}
	return bs, nil
})

// GeneralBeamSplitterType 定义元件
var GeneralBeamSplitterType = element.AddElement("general_beam_splitter", func(args element.Args) (element.Model, error) {
	if err := args.Check("ratio", "phase"); err != nil {
		return nil, err
	}
	bs, err := NewGeneralBeamSplitter(args.Float("ratio", 0.5), args.Float("phase", 0.5))
	if err != nil {
		return nil, err
	}
	return bs, nil
})

// BeamSplitter 对称定向耦合器，引脚 a0 a1 b0 b1。
// 直通幅度 t=√(1−ratio)，交叉幅度 i·√ratio，矩阵互易且幺正。
type BeamSplitter struct {
	fixed
	Ratio float64
}

// NewBeamSplitter 创建耦合器，ratio 为交叉功率比
func NewBeamSplitter(ratio float64) (*BeamSplitter, error) {
	if err := ratioRange("ratio", ratio, 0, 1); err != nil {
		return nil, err
	}
	t := complex(math.Sqrt(1-ratio), 0)
	c := complex(0, math.Sqrt(ratio))
	k := [][]complex128{{t, c}, {c, t}}
	return &BeamSplitter{
		fixed: fixed{&element.Config{Name: "bs", Pin: fourPort}, blocks(k, k)},
		Ratio: ratio,
	}, nil
}

// GeneralBeamSplitter 带附加相位的耦合器（非互易约定）
type GeneralBeamSplitter struct {
	fixed
	Ratio, Phase float64
}

// NewGeneralBeamSplitter 创建耦合器，phase 以 π 为单位
func NewGeneralBeamSplitter(ratio, phase float64) (*GeneralBeamSplitter, error) {
	if err := ratioRange("ratio", ratio, 0, 1); err != nil {
		return nil, err
	}
	c := complex(math.Sqrt(ratio), 0)
	t := complex(math.Sqrt(1-ratio), 0)
	e := element.ExpIPi(phase)
	ab := [][]complex128{{t * e, c}, {-c, t / e}}
	ba := [][]complex128{{t / e, c}, {-c, t * e}}
	return &GeneralBeamSplitter{
		fixed: fixed{&element.Config{Name: "gbs", Pin: fourPort}, blocks(ab, ba)},
		Ratio: ratio,
		Phase: phase,
	}, nil
}

var fourPort = []string{"a0", "a1", "b0", "b1"}
