package load

import (
	"fmt"
	"math"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/joamatab/lekkersim/element"
)

// 表达式中可用的常量
var constants = map[string]cty.Value{
	"pi": cty.NumberFloatVal(math.Pi),
}

// 表达式中可用的函数
var functions = map[string]function.Function{
	"abs":    stdlib.AbsoluteFunc,
	"ceil":   stdlib.CeilFunc,
	"floor":  stdlib.FloorFunc,
	"max":    stdlib.MaxFunc,
	"min":    stdlib.MinFunc,
	"signum": stdlib.SignumFunc,
	"sin":    unary("sin", math.Sin),
	"cos":    unary("cos", math.Cos),
	"tan":    unary("tan", math.Tan),
	"sqrt":   unary("sqrt", math.Sqrt),
	"exp":    unary("exp", math.Exp),
	"log":    unary("log", math.Log),
	"log10":  unary("log10", math.Log10),
	"pow":    binary("pow", math.Pow),
	"atan2":  binary("atan2", math.Atan2),
}

func number(name string, r float64, x ...float64) (cty.Value, error) {
	if math.IsNaN(r) {
		return cty.NilVal, fmt.Errorf("%s%v 无定义", name, x)
	}
	return cty.NumberFloatVal(r), nil
}

func unary(name string, f func(float64) float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{{Name: "x", Type: cty.Number}},
		Type:   function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			x, _ := args[0].AsBigFloat().Float64()
			return number(name, f(x), x)
		},
	})
}

func binary(name string, f func(float64, float64) float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{{Name: "x", Type: cty.Number}, {Name: "y", Type: cty.Number}},
		Type:   function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			x, _ := args[0].AsBigFloat().Float64()
			y, _ := args[1].AsBigFloat().Float64()
			return number(name, f(x, y), x, y)
		},
	})
}

// present 判断可选表达式是否给出。缺省的可选表达式是静态的 null。
func present(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	if len(expr.Variables()) > 0 {
		return true
	}
	val, diags := expr.Value(nil)
	return diags.HasErrors() || !val.IsNull()
}

// variables 表达式引用的变量名，排序去重，不含常量。
func variables(expr hcl.Expression) []string {
	var names []string
	for _, traversal := range expr.Variables() {
		name := traversal.RootName()
		if _, ok := constants[name]; ok || slices.Contains(names, name) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// evaluate 以参数为变量计算数值表达式。表达式只读，可并发计算。
func evaluate(expr hcl.Expression, params element.Params) (float64, error) {
	vars := make(map[string]cty.Value, len(params)+len(constants))
	for name, v := range params {
		vars[name] = cty.NumberFloatVal(v)
	}
	for name, v := range constants {
		vars[name] = v
	}
	val, diags := expr.Value(&hcl.EvalContext{Variables: vars, Functions: functions})
	if diags.HasErrors() {
		return 0, fmt.Errorf("%w: %s", ErrExpression, diags.Error())
	}
	if !val.IsKnown() || val.IsNull() || !val.Type().Equals(cty.Number) {
		return 0, fmt.Errorf("%w: %s: 结果不是数值", ErrExpression, expr.Range())
	}
	var out float64
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrExpression, expr.Range(), err)
	}
	return out, nil
}
