package element

import (
	"fmt"
	"log"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Kind 元件类型名，网络文件中使用的标识符
type Kind string

// Factory 根据构造参数创建模型
type Factory func(args Args) (Model, error)

var (
	elementMu   sync.RWMutex
	elementList = map[Kind]Factory{}
)

// AddElement 注册元件类型，重复注册直接退出。
func AddElement(kind Kind, factory Factory) Kind {
	elementMu.Lock()
	defer elementMu.Unlock()
	kind = Kind(strings.ToLower(string(kind)))
	if _, ok := elementList[kind]; ok {
		log.Fatalf("元件重复注册: %s", kind)
	}
	elementList[kind] = factory
	return kind
}

// NewElement 根据元件类型创建新的元件实例。
func NewElement(kind Kind, args Args) (Model, error) {
	elementMu.RLock()
	factory, ok := elementList[Kind(strings.ToLower(string(kind)))]
	elementMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrUnknownKind, kind)
	}
	model, err := factory(args)
	if err != nil {
		return nil, fmt.Errorf("元件 '%s': %w", kind, err)
	}
	return model, nil
}

// Kinds 已注册的元件类型（排序）
func Kinds() []Kind {
	elementMu.RLock()
	defer elementMu.RUnlock()
	return slices.Sorted(maps.Keys(elementList))
}

// Args 元件构造参数
type Args map[string]float64

// Float 读取参数，缺省时返回 def
func (a Args) Float(name string, def float64) float64 {
	if v, ok := a[name]; ok {
		return v
	}
	return def
}

// Int 读取整数参数，必须为非负整数
func (a Args) Int(name string, def int) (int, error) {
	v, ok := a[name]
	if !ok {
		return def, nil
	}
	if v < 0 || v != float64(int(v)) {
		return 0, fmt.Errorf("%w: %s=%g 不是非负整数", ErrInvalidArgument, name, v)
	}
	return int(v), nil
}

// Has 是否提供了参数
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Check 拒绝未知参数名，防止拼写错误被静默忽略。
func (a Args) Check(allowed ...string) error {
	for _, name := range slices.Sorted(maps.Keys(a)) {
		if !slices.Contains(allowed, name) {
			return fmt.Errorf("%w: 未知参数 %q（可用: %s）", ErrInvalidArgument, name, strings.Join(allowed, ", "))
		}
	}
	return nil
}
