package network

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/joamatab/lekkersim/element"
)

// Structure 网络中的一个模型实例：引脚映射到网络内唯一的键，参数经重命名表映射到网络参数。
// 多模放置时每个模式对应一个 Structure。
type Structure struct {
	id     int
	place  *Placement
	model  element.Model
	pins   []string
	tag    string
	rename map[string]string
	fixed  element.Params
}

// Model 底层模型
func (s *Structure) Model() element.Model { return s.model }

// Tag 模式标签，单模放置为空
func (s *Structure) Tag() string { return s.tag }

func (s *Structure) String() string {
	if s.tag == "" {
		return s.place.name
	}
	return s.place.name + "/" + s.tag
}

// key 网络内唯一的引脚键
func (s *Structure) key(pin string) string {
	return strconv.Itoa(s.id) + ":" + pin
}

// label 放置对外看到的引脚名
func (s *Structure) label(pin string) string {
	if s.tag == "" {
		return pin
	}
	return pin + "_" + s.tag
}

// keys 按模型引脚顺序的键
func (s *Structure) keys() []string {
	out := make([]string, len(s.pins))
	for i, p := range s.pins {
		out[i] = s.key(p)
	}
	return out
}

// networkName 本地参数在网络中的名字
func (s *Structure) networkName(local string) string {
	if n, ok := s.rename[local]; ok {
		return n
	}
	return local
}

// localParams 由网络参数空间取出模型需要的本地参数，模式固定值优先。
func (s *Structure) localParams(ns element.Params) (element.Params, error) {
	defs := s.model.Defaults()
	out := make(element.Params, len(defs)+len(s.fixed))
	for _, local := range defs.Names() {
		if _, ok := s.fixed[local]; ok {
			continue
		}
		name := s.networkName(local)
		v, ok := ns[name]
		if !ok {
			return nil, fmt.Errorf("%s: %w: %s", s, ErrMissingParameter, name)
		}
		out[local] = v
	}
	maps.Copy(out, s.fixed)
	return out, nil
}

// PinRef 指向某个放置上的一个引脚
type PinRef struct {
	place  *Placement
	member *Structure
	pin    string
	label  string
}

// Valid 引脚是否存在
func (r PinRef) Valid() bool { return r.member != nil }

// Label 放置上的引脚名
func (r PinRef) Label() string { return r.label }

func (r PinRef) String() string {
	if r.place == nil {
		return "<空引脚>"
	}
	return r.place.name + "." + r.label
}

func (r PinRef) key() string { return r.member.key(r.pin) }

// Placement 一次放置：单模时包含一个 Structure，多模时每个模式一个。
type Placement struct {
	name    string
	net     *Network
	members []*Structure
	labels  []string
	refs    map[string]PinRef
}

// Name 组件名
func (p *Placement) Name() string { return p.name }

// Pins 放置对外的引脚名（多模时带模式后缀）
func (p *Placement) Pins() []string { return slices.Clone(p.labels) }

// Pin 按引脚名取引用，名字不存在时返回无效引用，在使用时报错。
func (p *Placement) Pin(label string) PinRef {
	if ref, ok := p.refs[label]; ok {
		return ref
	}
	return PinRef{place: p, label: label}
}

// Structures 放置展开出的结构，每个模式一个，单模放置只有一个
func (p *Placement) Structures() []*Structure { return slices.Clone(p.members) }

// Modes 模式标签，单模放置返回空
func (p *Placement) Modes() []string {
	var out []string
	for _, s := range p.members {
		if tag := s.Tag(); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// PlaceOption 放置选项
type PlaceOption func(*placeConfig)

type placeConfig struct {
	name       string
	rename     map[string]string
	tags       []string
	modeParams map[string]element.Params
	modeRename map[string]map[string]string
	at         []attach
}

type attach struct {
	pin    string
	target PinRef
}

// Named 指定组件名，默认为 "{模型名}{序号}"
func Named(name string) PlaceOption {
	return func(c *placeConfig) { c.name = name }
}

// Rename 参数重命名表：模型本地参数名 → 网络参数名
func Rename(table map[string]string) PlaceOption {
	return func(c *placeConfig) {
		if c.rename == nil {
			c.rename = map[string]string{}
		}
		maps.Copy(c.rename, table)
	}
}

// Modes 按模式标签展开放置，每个模式一个独立副本，引脚名为 "{pin}_{tag}"。
func Modes(tags ...string) PlaceOption {
	return func(c *placeConfig) { c.tags = append(c.tags, tags...) }
}

// ModeParams 为某个模式固定参数值，这些参数不再出现在网络默认值中。
func ModeParams(tag string, params element.Params) PlaceOption {
	return func(c *placeConfig) {
		if c.modeParams == nil {
			c.modeParams = map[string]element.Params{}
		}
		c.modeParams[tag] = c.modeParams[tag].Merge(params)
	}
}

// ModeRename 为某个模式追加参数重命名，覆盖 Rename 中的同名项。
func ModeRename(tag string, table map[string]string) PlaceOption {
	return func(c *placeConfig) {
		if c.modeRename == nil {
			c.modeRename = map[string]map[string]string{}
		}
		if c.modeRename[tag] == nil {
			c.modeRename[tag] = map[string]string{}
		}
		maps.Copy(c.modeRename[tag], table)
	}
}

// At 放置后立即把本放置的引脚 pin 连接到 target。
func At(pin string, target PinRef) PlaceOption {
	return func(c *placeConfig) { c.at = append(c.at, attach{pin, target}) }
}
