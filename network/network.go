// Package network 把元件模型组装成散射网络并求解。
//
// 网络由 Builder 构建：放置模型、连接引脚、导出外部引脚、声明参数默认值与派生参数。
// Build 之后网络不可变，可以被并发求解，也可以作为模型放入更大的网络。
package network

import (
	"fmt"
	"slices"

	"github.com/joamatab/lekkersim/element"
	"github.com/joamatab/lekkersim/maths"
)

// Network 已构建的网络
type Network struct {
	name        string
	cfg         config
	structures  []*Structure
	placements  []*Placement
	byName      map[string]*Placement
	connections [][2]PinRef
	used        map[string]bool
	exposed     []string
	external    map[string]PinRef
	explicit    element.Defaults
	derived     []derived
	defaults    element.Defaults
}

var _ element.Model = (*Network)(nil)

// Name 网络名
func (n *Network) Name() string { return n.name }

// GetName 网络名，放置时用作默认组件名前缀
func (n *Network) GetName() string { return n.name }

// Pins 外部引脚，按导出顺序
func (n *Network) Pins() []string { return slices.Clone(n.exposed) }

// Defaults 网络参数默认值（不含派生参数），作为子网络时由父网络按此提供参数。
func (n *Network) Defaults() element.Defaults { return n.defaults.Clone() }

// DefaultParams 与 Defaults 相同，用于查看网络需要哪些参数
func (n *Network) DefaultParams() element.Defaults { return n.defaults.Clone() }

// Recompute 求解并返回外部引脚上的散射矩阵
func (n *Network) Recompute(params element.Params) (maths.Matrix[complex128], error) {
	r, err := n.Solve(params)
	if err != nil {
		return nil, err
	}
	return r.Matrix(), nil
}

// Placements 所有放置，按放置顺序
func (n *Network) Placements() []*Placement { return slices.Clone(n.placements) }

// Placement 按组件名查找
func (n *Network) Placement(name string) (*Placement, bool) {
	p, ok := n.byName[name]
	return p, ok
}

func (n *Network) String() string {
	return fmt.Sprintf("Network(%s) 引脚 %v, 组件 %d, 连接 %d", n.name, n.exposed, len(n.placements), len(n.connections))
}
