package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joamatab/lekkersim/element"
	"github.com/joamatab/lekkersim/maths"
)

// ErrBadValue 命令行取值格式错误
var ErrBadValue = errors.New("取值格式错误")

// ValueList 命令行参数列表，每项形如 "name=value" 或 "name=start:stop:n"
type ValueList []string

// split 拆分 "name=value"
func split(item string) (name, value string, err error) {
	name, value, ok := strings.Cut(item, "=")
	name, value = strings.TrimSpace(name), strings.TrimSpace(value)
	if !ok || name == "" || value == "" {
		return "", "", fmt.Errorf("%w: %q 应为 name=value", ErrBadValue, item)
	}
	return name, value, nil
}

// Params 解析 "name=value" 列表
func (list ValueList) Params() (element.Params, error) {
	out := make(element.Params, len(list))
	for _, item := range list {
		name, value, err := split(item)
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadValue, item, err)
		}
		out[name] = v
	}
	return out, nil
}

// Sweeps 解析扫描列表：start:stop:n 为等距序列，a,b,c 为显式序列
func (list ValueList) Sweeps() (map[string][]float64, error) {
	out := make(map[string][]float64, len(list))
	for _, item := range list {
		name, value, err := split(item)
		if err != nil {
			return nil, err
		}
		seq, err := ParseSequence(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = seq
	}
	return out, nil
}

// ParseSequence 解析 "start:stop:n" 或 "a,b,c"
func ParseSequence(s string) ([]float64, error) {
	if parts := strings.Split(s, ":"); len(parts) == 3 {
		start, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		stop, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		n, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err := errors.Join(err1, err2, err3); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadValue, s, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("%w: %q 点数必须为正", ErrBadValue, s)
		}
		return maths.Linspace(start, stop, n), nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadValue, s, err)
		}
		out[i] = v
	}
	return out, nil
}

// FormatParams 按名字排序输出参数，供日志和命令行显示
func FormatParams(d element.Defaults) string {
	parts := make([]string, 0, len(d))
	for _, name := range d.Names() {
		parts = append(parts, name+"="+d[name].String())
	}
	return strings.Join(parts, " ")
}
