package network

import (
	"fmt"

	"github.com/joamatab/lekkersim/element"
	"github.com/joamatab/lekkersim/scatter"
)

// ReducedModel 求解结果：外部引脚上的散射系统及求解时使用的参数。
type ReducedModel struct {
	*scatter.System
	params element.Params
}

// Params 求解使用的完整参数（含默认值与派生参数）
func (r *ReducedModel) Params() element.Params { return r.params.Clone() }

// Solve 以给定参数求解网络。未给出的参数取默认值，派生参数总是重新计算。
//
// 每次求解都从模型重新计算矩阵，不修改网络，可并发调用。
func (n *Network) Solve(params element.Params) (*ReducedModel, error) {
	ns, err := n.resolve(params)
	if err != nil {
		return nil, fmt.Errorf("网络 %s: %w", n.name, err)
	}

	blocks := make([]*scatter.System, 0, len(n.structures))
	for _, s := range n.structures {
		local, err := s.localParams(ns)
		if err != nil {
			return nil, fmt.Errorf("网络 %s: %w", n.name, err)
		}
		m, err := s.model.Recompute(local)
		if err != nil {
			return nil, fmt.Errorf("网络 %s: 组件 %s: %w", n.name, s, err)
		}
		sys, err := scatter.New(s.keys(), m)
		if err != nil {
			return nil, fmt.Errorf("网络 %s: 组件 %s: %w", n.name, s, err)
		}
		blocks = append(blocks, sys)
	}

	sys, err := scatter.JoinAll(blocks...)
	if err != nil {
		return nil, fmt.Errorf("网络 %s: %w", n.name, err)
	}
	for _, c := range n.connections {
		sys, err = sys.Connect(c[0].key(), c[1].key(), n.cfg.tolerance)
		if err != nil {
			return nil, fmt.Errorf("网络 %s: 连接 %s-%s: %w", n.name, c[0], c[1], err)
		}
	}

	keep := make([]string, len(n.exposed))
	for i, name := range n.exposed {
		keep[i] = n.external[name].key()
	}
	if sys, err = sys.Project(keep...); err != nil {
		return nil, fmt.Errorf("网络 %s: %w", n.name, err)
	}
	if sys, err = sys.Relabel(n.exposed); err != nil {
		return nil, fmt.Errorf("网络 %s: %w", n.name, err)
	}
	return &ReducedModel{System: sys, params: ns}, nil
}
