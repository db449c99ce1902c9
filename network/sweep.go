package network

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/joamatab/lekkersim/element"
)

// SweepResult 参数扫描结果，Models[i] 对应各扫描序列的第 i 个值。
type SweepResult struct {
	Names  []string             // 扫描参数名（排序）
	Values map[string][]float64 // 扫描参数值
	Fixed  element.Params       // 不随扫描变化的参数
	Models []*ReducedModel
}

// Len 扫描点数
func (r *SweepResult) Len() int { return len(r.Models) }

// Point 第 i 个扫描点的扫描参数值
func (r *SweepResult) Point(i int) element.Params {
	out := make(element.Params, len(r.Names))
	for _, name := range r.Names {
		out[name] = r.Values[name][i]
	}
	return out
}

// Sweep 对 swept 中的序列逐点求解，所有序列长度必须相同。
// 各点并发求解，结果按序号排列；任一点失败则取消其余点并返回该错误。
// swept 为空时只求解一次。
func (n *Network) Sweep(ctx context.Context, fixed element.Params, swept map[string][]float64) (*SweepResult, error) {
	names := slices.Sorted(maps.Keys(swept))
	size := 1
	for i, name := range names {
		if i == 0 {
			size = len(swept[name])
			continue
		}
		if len(swept[name]) != size {
			return nil, fmt.Errorf("%w: %s 有 %d 个值, %s 有 %d 个值",
				ErrLengthMismatch, names[0], size, name, len(swept[name]))
		}
	}

	result := &SweepResult{
		Names:  names,
		Values: make(map[string][]float64, len(names)),
		Fixed:  fixed.Clone(),
		Models: make([]*ReducedModel, size),
	}
	for _, name := range names {
		result.Values[name] = slices.Clone(swept[name])
	}

	log := n.cfg.logger.With("network", n.name)
	log.Debug("开始扫描", "params", names, "points", size, "workers", n.cfg.workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.cfg.workers)
	for i := 0; i < size; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			params := result.Fixed.Merge(result.Point(i))
			m, err := n.Solve(params)
			if err != nil {
				return fmt.Errorf("扫描点 %d %v: %w", i, result.Point(i), err)
			}
			result.Models[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Debug("扫描失败", "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Debug("扫描完成", "points", size)
	return result, nil
}
