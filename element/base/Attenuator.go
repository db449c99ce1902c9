package base

import (
	"math"

	"github.com/joamatab/lekkersim/element"
)

// AttenuatorType 定义元件
var AttenuatorType = element.AddElement("attenuator", func(args element.Args) (element.Model, error) {
	if err := args.Check("loss"); err != nil {
		return nil, err
	}
	return NewAttenuator(args.Float("loss", 0)), nil
})

// Attenuator 固定衰减，传输幅度 10^(−0.1·loss)
type Attenuator struct {
	fixed
	Loss float64
}

// NewAttenuator 创建衰减器
func NewAttenuator(loss float64) *Attenuator {
	s := element.NewScattering(2)
	element.SetPair(s, 0, 1, complex(math.Pow(10, -0.1*loss), 0))
	return &Attenuator{
		fixed: fixed{&element.Config{Name: "att", Pin: []string{"a0", "b0"}}, s},
		Loss:  loss,
	}
}
