// Package scatter 实现散射矩阵系统及端口消元代数。
//
// 系统是一组有序引脚及对应的复数散射矩阵 S，满足 b = S·a。
// 所有运算返回新系统，输入保持不变。
package scatter

import (
	"fmt"
	"slices"

	"github.com/joamatab/lekkersim/maths"
)

// DefaultTolerance 连接分母的默认退化阈值
const DefaultTolerance = 1e-12

// System 散射系统
type System struct {
	pins  []string
	index map[string]int
	s     maths.Matrix[complex128]
}

// New 由引脚列表和方阵创建系统，矩阵由系统持有。
func New(pins []string, s maths.Matrix[complex128]) (*System, error) {
	if s == nil {
		s = maths.NewDenseMatrix[complex128](0, 0)
	}
	if s.Rows() != len(pins) || s.Cols() != len(pins) {
		return nil, fmt.Errorf("%w: 引脚 %d 个, 矩阵 %d×%d", ErrDimension, len(pins), s.Rows(), s.Cols())
	}
	index := make(map[string]int, len(pins))
	for i, p := range pins {
		if _, ok := index[p]; ok {
			return nil, fmt.Errorf("%w: %q", ErrPortCollision, p)
		}
		index[p] = i
	}
	return &System{pins: slices.Clone(pins), index: index, s: s}, nil
}

// Empty 返回无引脚系统
func Empty() *System {
	return &System{index: map[string]int{}, s: maths.NewDenseMatrix[complex128](0, 0)}
}

// Identity 返回 n 阶单位系统，引脚名为 "0".."n-1"。
func Identity(n int) *System {
	pins := make([]string, n)
	for i := range pins {
		pins[i] = fmt.Sprint(i)
	}
	sys, _ := New(pins, maths.NewIdentity[complex128](n))
	return sys
}

// Pins 返回引脚顺序的副本
func (sys *System) Pins() []string { return slices.Clone(sys.pins) }

// Size 引脚数量
func (sys *System) Size() int { return len(sys.pins) }

// Index 返回引脚在矩阵中的位置
func (sys *System) Index(pin string) (int, bool) {
	i, ok := sys.index[pin]
	return i, ok
}

// Matrix 返回散射矩阵的副本
func (sys *System) Matrix() maths.Matrix[complex128] { return sys.s.Clone() }

// Get 返回矩阵元素 S[pinOut, pinIn]。
func (sys *System) Get(pinOut, pinIn string) (complex128, error) {
	i, ok := sys.index[pinOut]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPin, pinOut)
	}
	j, ok := sys.index[pinIn]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPin, pinIn)
	}
	return sys.s.Get(i, j), nil
}

func (sys *System) String() string {
	return fmt.Sprintf("%v\n%s", sys.pins, sys.s)
}

// Join 块对角直和，a 的引脚在前，b 的引脚在后。
func Join(a, b *System) (*System, error) {
	return JoinAll(a, b)
}

// JoinAll 依次直和所有系统，矩阵只分配一次。
func JoinAll(list ...*System) (*System, error) {
	n := 0
	for _, sys := range list {
		n += sys.Size()
	}
	pins := make([]string, 0, n)
	m := maths.NewDenseMatrix[complex128](n, n)
	off := 0
	for _, sys := range list {
		pins = append(pins, sys.pins...)
		k := sys.Size()
		for i := 0; i < k; i++ {
			for j := 0; j < k; j++ {
				if v := sys.s.Get(i, j); v != 0 {
					m.Set(off+i, off+j, v)
				}
			}
		}
		off += k
	}
	return New(pins, m)
}

// Project 只保留 keep 中的引脚（按 keep 的顺序），其余引脚对应行列被丢弃。
func (sys *System) Project(keep ...string) (*System, error) {
	idx := make([]int, len(keep))
	for k, p := range keep {
		i, ok := sys.index[p]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPin, p)
		}
		idx[k] = i
	}
	m := maths.NewDenseMatrix[complex128](len(keep), len(keep))
	for r, i := range idx {
		for c, j := range idx {
			m.Set(r, c, sys.s.Get(i, j))
		}
	}
	return New(keep, m)
}

// Relabel 按位置重命名全部引脚，矩阵不变。
func (sys *System) Relabel(names []string) (*System, error) {
	if len(names) != len(sys.pins) {
		return nil, fmt.Errorf("%w: 新引脚 %d 个, 系统 %d 个", ErrDimension, len(names), len(sys.pins))
	}
	return New(names, sys.s.Clone())
}
