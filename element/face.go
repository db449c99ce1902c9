// Package element 定义散射元件模型的公共契约、参数记录和元件类型注册表。
package element

import (
	"github.com/joamatab/lekkersim/maths"
)

// Model 元件模型接口
//
// 模型是无状态的：Recompute 只依赖传入的参数，同一实例可被多个网络、
// 多个并发求解共享。
type Model interface {
	// Pins 有序引脚名，决定散射矩阵的行列顺序
	Pins() []string
	// Defaults 参数名到默认值的表，未设置默认值的参数为必填
	Defaults() Defaults
	// Recompute 由完全解析的本地参数计算 N×N 散射矩阵
	Recompute(params Params) (maths.Matrix[complex128], error)
}

// Mode 多模元件的一个模式：引脚后缀标签及该模式固定的参数。
type Mode struct {
	Tag    string
	Params Params
}

// Multimode 声明自身按模式展开的元件（如按偏振区分的波导）。
// 放置时每个模式成为一个独立副本，引脚名为 "{pin}_{tag}"。
type Multimode interface {
	Model
	Modes() []Mode
}
