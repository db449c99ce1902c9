package base

import (
	"fmt"
	"slices"

	"github.com/joamatab/lekkersim/element"
	"github.com/joamatab/lekkersim/maths"
)

// NeffFunc 由本地参数计算有效折射率
type NeffFunc func(params element.Params) (float64, error)

// UserWaveguide 有效折射率由用户函数给出的波导。
// 声明了模式时按模式展开，每个模式的固定参数（如 pol）一并传给 Neff。
// 模式固定的参数仍保留在 Defaults 中，未固定它的模式从网络参数取值。
type UserWaveguide struct {
	*element.Config
	Length float64
	Neff   NeffFunc
	modes  []element.Mode
}

// NewUserWaveguide 创建用户波导，defaults 补充 Neff 需要的参数，wl 始终为必填。
func NewUserWaveguide(length float64, neff NeffFunc, defaults element.Defaults, modes ...element.Mode) *UserWaveguide {
	defs := defaults.Clone()
	if _, ok := defs["wl"]; !ok {
		defs["wl"] = element.Required()
	}
	return &UserWaveguide{
		Config: &element.Config{
			Name:      "uwg",
			Pin:       []string{"a0", "b0"},
			ValueInit: defs,
		},
		Length: length,
		Neff:   neff,
		modes:  slices.Clone(modes),
	}
}

// Modes 实现 element.Multimode
func (wg *UserWaveguide) Modes() []element.Mode { return slices.Clone(wg.modes) }

// Recompute 计算传输矩阵
func (wg *UserWaveguide) Recompute(params element.Params) (maths.Matrix[complex128], error) {
	wl, err := params.Float("wl")
	if err != nil {
		return nil, err
	}
	n, err := wg.Neff(params)
	if err != nil {
		return nil, fmt.Errorf("计算有效折射率: %w", err)
	}
	return propagate(n, wg.Length, wl)
}
