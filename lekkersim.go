// Package lekkersim 组合散射矩阵网络的仿真器：加载网络定义文件，按名字求解或扫描网络。
package lekkersim

import (
	"context"
	"errors"
	"fmt"

	"github.com/joamatab/lekkersim/element"
	"github.com/joamatab/lekkersim/export"
	"github.com/joamatab/lekkersim/load"
	"github.com/joamatab/lekkersim/network"
)

// ErrNoNetwork 没有加载名为该名字的网络
var ErrNoNetwork = errors.New("网络未加载")

// Simulator 仿真器
type Simulator struct {
	loader *load.Loader
	lib    *load.Library
}

// NewSimulator 初始化，opts 作用于之后加载的所有网络
func NewSimulator(opts ...network.Option) *Simulator {
	return &Simulator{loader: load.NewLoader(opts...)}
}

// Load 加载网络定义文件，替换之前加载的内容
func (sim *Simulator) Load(ctx context.Context, paths ...string) error {
	lib, err := sim.loader.Load(ctx, paths...)
	if err != nil {
		return err
	}
	sim.lib = lib
	return nil
}

// LoadBytes 从内存加载网络定义
func (sim *Simulator) LoadBytes(ctx context.Context, src []byte, filename string) error {
	lib, err := sim.loader.LoadBytes(ctx, src, filename)
	if err != nil {
		return err
	}
	sim.lib = lib
	return nil
}

// Networks 已加载的网络名，按定义顺序
func (sim *Simulator) Networks() []string {
	if sim.lib == nil {
		return nil
	}
	return sim.lib.Names()
}

// Network 按名字取网络
func (sim *Simulator) Network(name string) (*network.Network, error) {
	if sim.lib != nil {
		if n, ok := sim.lib.Get(name); ok {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoNetwork, name)
}

// Solve 以给定参数求解网络
func (sim *Simulator) Solve(name string, params element.Params) (*network.ReducedModel, error) {
	n, err := sim.Network(name)
	if err != nil {
		return nil, err
	}
	return n.Solve(params)
}

// Sweep 扫描网络
func (sim *Simulator) Sweep(ctx context.Context, name string, fixed element.Params, swept map[string][]float64) (*network.SweepResult, error) {
	n, err := sim.Network(name)
	if err != nil {
		return nil, err
	}
	return n.Sweep(ctx, fixed, swept)
}

// Export 扫描网络并整理引脚 a 到 b 的传输记录
func (sim *Simulator) Export(ctx context.Context, name string, fixed element.Params, swept map[string][]float64, a, b string) (*export.Record, error) {
	sw, err := sim.Sweep(ctx, name, fixed, swept)
	if err != nil {
		return nil, err
	}
	return export.NewRecord(sw, a, b)
}
