package load

import "github.com/hashicorp/hcl/v2"

// fileRoot 网络定义文件的顶层结构
type fileRoot struct {
	Networks []*networkBlock `hcl:"network,block"`
}

type networkBlock struct {
	Name        string            `hcl:"name,label"`
	Params      []*paramBlock     `hcl:"param,block"`
	Components  []*componentBlock `hcl:"component,block"`
	Derived     []*derivedBlock   `hcl:"derived,block"`
	Connects    []*connectBlock   `hcl:"connect,block"`
	Exposes     []*exposeBlock    `hcl:"expose,block"`
	RaisePins   bool              `hcl:"raise_pins,optional"`
	StrictPorts bool              `hcl:"strict_ports,optional"`
	Wavelength  bool              `hcl:"wavelength,optional"`
	DefRange    hcl.Range         `hcl:",def_range"`
}

// paramBlock 网络参数，没有 default 时为必填
type paramBlock struct {
	Name    string   `hcl:"name,label"`
	Default *float64 `hcl:"default,optional"`
}

// componentBlock 组件：kind 指定注册的元件，network 引用前面定义的网络，二者取其一。
type componentBlock struct {
	Name     string             `hcl:"name,label"`
	Kind     string             `hcl:"kind,optional"`
	Network  string             `hcl:"network,optional"`
	Args     map[string]float64 `hcl:"args,optional"`
	Params   map[string]float64 `hcl:"params,optional"`
	Rename   map[string]string  `hcl:"rename,optional"`
	Neff     hcl.Expression     `hcl:"neff,optional"`
	Modes    []string           `hcl:"modes,optional"`
	Mode     []*modeBlock       `hcl:"mode,block"`
	DefRange hcl.Range          `hcl:",def_range"`
}

type modeBlock struct {
	Tag    string             `hcl:"tag,label"`
	Params map[string]float64 `hcl:"params,optional"`
	Rename map[string]string  `hcl:"rename,optional"`
}

// derivedBlock 派生参数 name = expr，表达式中的变量即入参。
type derivedBlock struct {
	Name     string             `hcl:"name,label"`
	Expr     hcl.Expression     `hcl:"expr"`
	Args     map[string]float64 `hcl:"args,optional"`
	Bind     map[string]string  `hcl:"bind,optional"`
	DefRange hcl.Range          `hcl:",def_range"`
}

type connectBlock struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}

type exposeBlock struct {
	Name string `hcl:"name,label"`
	Pin  string `hcl:"pin"`
}
