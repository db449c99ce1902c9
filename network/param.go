package network

import (
	"fmt"

	"github.com/joamatab/lekkersim/element"
)

// DeriveFunc 由入参计算派生参数的值，入参按 Arg.Name 取用。
type DeriveFunc func(args element.Params) (float64, error)

// Arg 派生函数的一个入参
type Arg struct {
	Name    string        // 函数内的名字
	Param   string        // 对应的网络参数，为空时与 Name 相同
	Default element.Param // 网络中没有该参数值时使用
}

// ArgOf 必填入参
func ArgOf(name string) Arg { return Arg{Name: name, Default: element.Required()} }

// ArgDefault 带默认值的入参
func ArgDefault(name string, v float64) Arg { return Arg{Name: name, Default: element.Default(v)} }

// As 把入参绑定到另一个网络参数名
func (a Arg) As(param string) Arg {
	a.Param = param
	return a
}

func (a Arg) param() string {
	if a.Param == "" {
		return a.Name
	}
	return a.Param
}

type derived struct {
	name string
	fn   DeriveFunc
	args []Arg
}

// collectDefaults 汇总网络参数默认值。
//
// 顺序：各结构的默认值经重命名后登记（有效值优先于必填），派生入参的默认值随后登记，
// WithWavelength 时补上必填的 wl，SetDefault 的值覆盖以上各项，最后去掉派生参数本身的名字。
// 模式固定的参数不出现。
func (n *Network) collectDefaults() element.Defaults {
	out := element.Defaults{}
	for _, s := range n.structures {
		defs := s.model.Defaults()
		for _, local := range defs.Names() {
			if _, ok := s.fixed[local]; ok {
				continue
			}
			out.Offer(s.networkName(local), defs[local])
		}
	}
	for _, d := range n.derived {
		for _, a := range d.args {
			out.Offer(a.param(), a.Default)
		}
	}
	if n.cfg.wl {
		out.Offer(WavelengthParam, element.Required())
	}
	for name, p := range n.explicit {
		out[name] = p
	}
	for _, d := range n.derived {
		delete(out, d.name)
	}
	return out
}

// resolve 得到求解用的完整参数空间：有效默认值，用户值覆盖，再按声明顺序计算派生参数。
// 派生参数总是覆盖同名的用户值。
func (n *Network) resolve(user element.Params) (element.Params, error) {
	ns := n.defaults.Values()
	for name, v := range user {
		ns[name] = v
	}
	for _, d := range n.derived {
		args := make(element.Params, len(d.args))
		for _, a := range d.args {
			if v, ok := ns[a.param()]; ok {
				args[a.Name] = v
			} else if a.Default.Valid {
				args[a.Name] = a.Default.Value
			} else {
				return nil, fmt.Errorf("派生参数 %s: %w: %s", d.name, ErrMissingParameter, a.param())
			}
		}
		v, err := d.fn(args)
		if err != nil {
			return nil, fmt.Errorf("派生参数 %s: %w", d.name, err)
		}
		ns[d.name] = v
	}
	return ns, nil
}
