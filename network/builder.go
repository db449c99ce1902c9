package network

import (
	"fmt"
	"maps"
	"strings"

	"github.com/joamatab/lekkersim/element"
)

// Builder 构建一个网络。首个错误会被记住，之后的修改被忽略，Build 时返回该错误。
// Builder 不是并发安全的。
type Builder struct {
	net  *Network
	err  error
	done bool
}

// NewBuilder 创建构建器
func NewBuilder(name string, opts ...Option) *Builder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Builder{net: &Network{
		name:     name,
		cfg:      cfg,
		byName:   map[string]*Placement{},
		used:     map[string]bool{},
		external: map[string]PinRef{},
		explicit: element.Defaults{},
	}}
}

// Err 返回首个错误
func (b *Builder) Err() error { return b.err }

func (b *Builder) fail(err error) error {
	if b.err == nil {
		b.err = err
	}
	return err
}

func (b *Builder) check() error {
	if b.done {
		return ErrBuilderClosed
	}
	return b.err
}

// Place 放置一个模型并返回放置句柄。失败时句柄仍然可用，但其引脚均无效。
func (b *Builder) Place(model element.Model, opts ...PlaceOption) *Placement {
	n := b.net
	cfg := placeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	p := &Placement{name: cfg.name, net: n, refs: map[string]PinRef{}}
	if b.check() != nil {
		return p
	}
	if model == nil {
		b.fail(fmt.Errorf("%w: 模型为空", ErrInvalidPlacement))
		return p
	}
	if p.name == "" {
		p.name = defaultName(model, len(n.placements))
	}
	if _, ok := n.byName[p.name]; ok {
		b.fail(fmt.Errorf("%w: 组件 %q", ErrDuplicateName, p.name))
		return p
	}

	modes, err := placementModes(model, cfg)
	if err != nil {
		b.fail(fmt.Errorf("组件 %s: %w", p.name, err))
		return p
	}
	pins := model.Pins()
	for _, mode := range modes {
		rename := maps.Clone(cfg.rename)
		if extra := cfg.modeRename[mode.Tag]; len(extra) > 0 {
			if rename == nil {
				rename = map[string]string{}
			}
			maps.Copy(rename, extra)
		}
		s := &Structure{
			id:     len(n.structures),
			place:  p,
			model:  model,
			pins:   pins,
			tag:    mode.Tag,
			rename: rename,
			fixed:  mode.Params.Clone(),
		}
		for _, pin := range pins {
			label := s.label(pin)
			if _, ok := p.refs[label]; ok {
				b.fail(fmt.Errorf("组件 %s: %w: %q", p.name, ErrPortCollision, label))
				return &Placement{name: p.name, net: n, refs: map[string]PinRef{}}
			}
			p.refs[label] = PinRef{place: p, member: s, pin: pin, label: label}
			p.labels = append(p.labels, label)
		}
		p.members = append(p.members, s)
		n.structures = append(n.structures, s)
	}
	n.placements = append(n.placements, p)
	n.byName[p.name] = p

	for _, a := range cfg.at {
		if err := b.Connect(p.Pin(a.pin), a.target); err != nil {
			return p
		}
	}
	n.cfg.logger.Debug("放置组件", "network", n.name, "component", p.name, "pins", len(p.labels), "modes", len(p.members))
	return p
}

// placementModes 决定放置展开的模式：显式 Modes 优先，其次是模型自身声明的模式。
func placementModes(model element.Model, cfg placeConfig) ([]element.Mode, error) {
	var modes []element.Mode
	if len(cfg.tags) > 0 {
		builtin := map[string]element.Params{}
		if mm, ok := model.(element.Multimode); ok {
			for _, m := range mm.Modes() {
				builtin[m.Tag] = m.Params
			}
		}
		for _, tag := range cfg.tags {
			modes = append(modes, element.Mode{Tag: tag, Params: builtin[tag].Merge(cfg.modeParams[tag])})
		}
	} else if mm, ok := model.(element.Multimode); ok && len(mm.Modes()) > 0 {
		for _, m := range mm.Modes() {
			modes = append(modes, element.Mode{Tag: m.Tag, Params: m.Params.Merge(cfg.modeParams[m.Tag])})
		}
	} else {
		if len(cfg.modeParams) > 0 || len(cfg.modeRename) > 0 {
			return nil, fmt.Errorf("%w: 未声明模式却给出了模式参数", ErrInvalidPlacement)
		}
		return []element.Mode{{}}, nil
	}
	seen := map[string]bool{}
	for _, m := range modes {
		if m.Tag == "" {
			return nil, fmt.Errorf("%w: 模式标签为空", ErrInvalidPlacement)
		}
		if seen[m.Tag] {
			return nil, fmt.Errorf("%w: 模式 %q 重复", ErrPortCollision, m.Tag)
		}
		seen[m.Tag] = true
	}
	for tag := range cfg.modeParams {
		if !seen[tag] {
			return nil, fmt.Errorf("%w: 未知模式 %q", ErrInvalidPlacement, tag)
		}
	}
	for tag := range cfg.modeRename {
		if !seen[tag] {
			return nil, fmt.Errorf("%w: 未知模式 %q", ErrInvalidPlacement, tag)
		}
	}
	return modes, nil
}

func defaultName(model element.Model, index int) string {
	prefix := "c"
	if named, ok := model.(interface{ GetName() string }); ok && named.GetName() != "" {
		prefix = strings.ToLower(named.GetName())
	}
	return fmt.Sprintf("%s%d", prefix, index)
}

// own 检查引脚属于本网络且存在
func (b *Builder) own(ref PinRef) error {
	if ref.place == nil || ref.place.net != b.net {
		return fmt.Errorf("%w: %s 不属于网络 %s", ErrUnknownPin, ref, b.net.name)
	}
	if !ref.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownPin, ref)
	}
	return nil
}

// Connect 连接两个引脚
func (b *Builder) Connect(x, y PinRef) error {
	if err := b.check(); err != nil {
		return err
	}
	for _, ref := range []PinRef{x, y} {
		if err := b.own(ref); err != nil {
			return b.fail(err)
		}
	}
	kx, ky := x.key(), y.key()
	if kx == ky {
		return b.fail(fmt.Errorf("%w: %s 不能与自身相连", ErrPinInUse, x))
	}
	for _, ref := range []PinRef{x, y} {
		if b.net.used[ref.key()] {
			return b.fail(fmt.Errorf("%w: %s", ErrPinInUse, ref))
		}
	}
	b.net.used[kx], b.net.used[ky] = true, true
	b.net.connections = append(b.net.connections, [2]PinRef{x, y})
	return nil
}

// Expose 以外部名 name 导出引脚
func (b *Builder) Expose(name string, ref PinRef) error {
	if err := b.check(); err != nil {
		return err
	}
	if name == "" {
		return b.fail(fmt.Errorf("%w: 外部引脚名为空", ErrInvalidPlacement))
	}
	if err := b.own(ref); err != nil {
		return b.fail(err)
	}
	if _, ok := b.net.external[name]; ok {
		return b.fail(fmt.Errorf("%w: %q", ErrDuplicateExternalName, name))
	}
	if b.net.used[ref.key()] {
		return b.fail(fmt.Errorf("%w: %s", ErrPinInUse, ref))
	}
	b.net.used[ref.key()] = true
	b.net.external[name] = ref
	b.net.exposed = append(b.net.exposed, name)
	return nil
}

// RaisePins 以原引脚名导出所有尚未使用的引脚，按放置顺序。
func (b *Builder) RaisePins() error {
	if err := b.check(); err != nil {
		return err
	}
	for _, p := range b.net.placements {
		for _, label := range p.labels {
			ref := p.refs[label]
			if b.net.used[ref.key()] {
				continue
			}
			if err := b.Expose(label, ref); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetDefault 设置网络参数默认值，覆盖组件给出的默认值
func (b *Builder) SetDefault(name string, v float64) {
	if b.check() == nil {
		b.net.explicit[name] = element.Default(v)
	}
}

// SetRequired 声明网络参数为必填，覆盖组件给出的默认值
func (b *Builder) SetRequired(name string) {
	if b.check() == nil {
		b.net.explicit[name] = element.Required()
	}
}

// SetDefaults 批量设置默认值
func (b *Builder) SetDefaults(params element.Params) {
	for name, v := range params {
		b.SetDefault(name, v)
	}
}

// AddParam 声明派生参数 name = fn(args)，在求解时按声明顺序计算，并覆盖同名参数。
func (b *Builder) AddParam(name string, fn DeriveFunc, args ...Arg) error {
	if err := b.check(); err != nil {
		return err
	}
	if name == "" || fn == nil {
		return b.fail(fmt.Errorf("%w: 派生参数 %q 缺少名字或函数", ErrInvalidPlacement, name))
	}
	for _, d := range b.net.derived {
		if d.name == name {
			return b.fail(fmt.Errorf("%w: 派生参数 %q", ErrDuplicateName, name))
		}
	}
	b.net.derived = append(b.net.derived, derived{name: name, fn: fn, args: append([]Arg(nil), args...)})
	return nil
}

// Build 完成构建。之后构建器关闭，网络不可再修改。
func (b *Builder) Build() (*Network, error) {
	if b.done {
		return nil, ErrBuilderClosed
	}
	if b.err != nil {
		return nil, fmt.Errorf("网络 %s: %w", b.net.name, b.err)
	}
	n := b.net
	var dangling []string
	for _, p := range n.placements {
		for _, label := range p.labels {
			if !n.used[p.refs[label].key()] {
				dangling = append(dangling, p.name+"."+label)
			}
		}
	}
	if len(dangling) > 0 {
		if n.cfg.strict {
			return nil, fmt.Errorf("网络 %s: %w: %s", n.name, ErrDanglingPin, strings.Join(dangling, ", "))
		}
		n.cfg.logger.Debug("未使用的引脚将被截断", "network", n.name, "pins", dangling)
	}
	n.defaults = n.collectDefaults()
	b.done = true
	n.cfg.logger.Debug("网络构建完成", "network", n.name,
		"components", len(n.placements), "connections", len(n.connections), "pins", n.exposed)
	return n, nil
}
