package element

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Param 参数默认值，Valid 为 false 表示无默认值（必填）。
type Param struct {
	Value float64
	Valid bool
}

// Default 创建带默认值的参数
func Default(v float64) Param { return Param{Value: v, Valid: true} }

// Required 创建无默认值的参数
func Required() Param { return Param{} }

func (p Param) String() string {
	if !p.Valid {
		return "<必填>"
	}
	return strconv.FormatFloat(p.Value, 'g', -1, 64)
}

// Defaults 参数名到默认值
type Defaults map[string]Param

// Clone 复制
func (d Defaults) Clone() Defaults {
	if d == nil {
		return Defaults{}
	}
	return maps.Clone(d)
}

// Names 排序后的参数名
func (d Defaults) Names() []string {
	return slices.Sorted(maps.Keys(d))
}

// Offer 登记一个参数来源：名字不存在时加入，已存在且为必填时由有效值替换。
// 已有的有效默认值不会被覆盖。
func (d Defaults) Offer(name string, p Param) {
	cur, ok := d[name]
	if !ok || (!cur.Valid && p.Valid) {
		d[name] = p
	}
}

// Values 只保留有效默认值
func (d Defaults) Values() Params {
	out := make(Params, len(d))
	for name, p := range d {
		if p.Valid {
			out[name] = p.Value
		}
	}
	return out
}

// Params 已解析的参数值
type Params map[string]float64

// Clone 复制
func (p Params) Clone() Params {
	if p == nil {
		return Params{}
	}
	return maps.Clone(p)
}

// Float 读取参数，不存在时返回 ErrMissingParameter。
func (p Params) Float(name string) (float64, error) {
	v, ok := p[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingParameter, name)
	}
	return v, nil
}

// Merge 以 other 覆盖 p，返回新表
func (p Params) Merge(other Params) Params {
	out := p.Clone()
	maps.Copy(out, other)
	return out
}
