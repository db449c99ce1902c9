// Package load 从 HCL 文件加载网络定义。
package load

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/joamatab/lekkersim/element"
	"github.com/joamatab/lekkersim/element/base" // 同时注册内置元件
	"github.com/joamatab/lekkersim/network"
	"github.com/joamatab/lekkersim/utils"
)

// UserWaveguideKind 由 neff 表达式给出折射率的波导，只能在文件中使用
const UserWaveguideKind = "user_waveguide"

// Library 按定义顺序保存已构建的网络
type Library struct {
	order    []string
	networks map[string]*network.Network
}

func newLibrary() *Library {
	return &Library{networks: map[string]*network.Network{}}
}

// Names 网络名，按定义顺序
func (lib *Library) Names() []string { return slices.Clone(lib.order) }

// Len 网络数量
func (lib *Library) Len() int { return len(lib.order) }

// Get 按名字取网络
func (lib *Library) Get(name string) (*network.Network, bool) {
	n, ok := lib.networks[name]
	return n, ok
}

func (lib *Library) add(n *network.Network) {
	lib.order = append(lib.order, n.Name())
	lib.networks[n.Name()] = n
}

// Loader 网络文件加载器，opts 作用于加载的每个网络。
type Loader struct {
	opts []network.Option
}

// NewLoader 创建加载器
func NewLoader(opts ...network.Option) *Loader {
	return &Loader{opts: opts}
}

// Load 加载文件或目录（递归查找 .hcl 文件）。网络只能引用在它之前定义的网络，
// 多个文件按给出的顺序处理，目录内按路径排序。
func (l *Loader) Load(ctx context.Context, paths ...string) (*Library, error) {
	logger := utils.FromContext(ctx)
	files, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("找到网络文件", "count", len(files), "files", files)

	parser := hclparse.NewParser()
	var blocks []*networkBlock
	for _, path := range files {
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: %s: %s", ErrParse, path, diags.Error())
		}
		root, err := decode(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		blocks = append(blocks, root.Networks...)
	}
	return l.build(ctx, blocks)
}

// LoadBytes 从内存加载，filename 只用于错误信息
func (l *Loader) LoadBytes(ctx context.Context, src []byte, filename string) (*Library, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrParse, diags.Error())
	}
	root, err := decode(file)
	if err != nil {
		return nil, err
	}
	return l.build(ctx, root.Networks)
}

func decode(file *hcl.File) (*fileRoot, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrParse, diags.Error())
	}
	return &root, nil
}

// findAllHCLFiles 展开路径，目录下递归收集 .hcl 文件
func findAllHCLFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("读取 %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		var found []string
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(p) == ".hcl" {
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("遍历 %s: %w", path, err)
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

func (l *Loader) build(ctx context.Context, blocks []*networkBlock) (*Library, error) {
	logger := utils.FromContext(ctx)
	lib := newLibrary()
	for _, blk := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, ok := lib.Get(blk.Name); ok {
			return nil, fmt.Errorf("%s: %w: %q", blk.DefRange, ErrDuplicateNetwork, blk.Name)
		}
		opts := append(slices.Clone(l.opts), network.WithLogger(logger))
		if blk.StrictPorts {
			opts = append(opts, network.WithStrictPorts())
		}
		if blk.Wavelength {
			opts = append(opts, network.WithWavelength())
		}
		n, err := buildNetwork(blk, lib, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", blk.DefRange, err)
		}
		lib.add(n)
		logger.Debug("网络已加载", "network", n.Name(), "pins", n.Pins(), "params", utils.FormatParams(n.DefaultParams()))
	}
	return lib, nil
}

func buildNetwork(blk *networkBlock, lib *Library, opts []network.Option) (*network.Network, error) {
	b := network.NewBuilder(blk.Name, opts...)

	places := map[string]*network.Placement{}
	for _, c := range blk.Components {
		if _, ok := places[c.Name]; ok {
			return nil, fmt.Errorf("%s: %w: 组件 %q", c.DefRange, network.ErrDuplicateName, c.Name)
		}
		model, placeOpts, err := component(c, lib)
		if err != nil {
			return nil, fmt.Errorf("%s: 组件 %s: %w", c.DefRange, c.Name, err)
		}
		places[c.Name] = b.Place(model, placeOpts...)
	}

	for _, d := range blk.Derived {
		fn, args, err := derive(d)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.DefRange, err)
		}
		if err := b.AddParam(d.Name, fn, args...); err != nil {
			return nil, err
		}
	}

	for _, c := range blk.Connects {
		x, err := pinRef(places, c.From)
		if err != nil {
			return nil, err
		}
		y, err := pinRef(places, c.To)
		if err != nil {
			return nil, err
		}
		if err := b.Connect(x, y); err != nil {
			return nil, err
		}
	}

	for _, e := range blk.Exposes {
		ref, err := pinRef(places, e.Pin)
		if err != nil {
			return nil, err
		}
		if err := b.Expose(e.Name, ref); err != nil {
			return nil, err
		}
	}
	if blk.RaisePins {
		if err := b.RaisePins(); err != nil {
			return nil, err
		}
	}

	// 显式参数放在最后，覆盖组件和派生入参的默认值
	for _, p := range blk.Params {
		if p.Default != nil {
			b.SetDefault(p.Name, *p.Default)
		} else {
			b.SetRequired(p.Name)
		}
	}
	return b.Build()
}

// pinRef 解析 "组件.引脚"
func pinRef(places map[string]*network.Placement, s string) (network.PinRef, error) {
	name, pin, ok := strings.Cut(s, ".")
	if !ok || name == "" || pin == "" {
		return network.PinRef{}, fmt.Errorf("%w: %q 应为 组件.引脚", network.ErrUnknownPin, s)
	}
	p, ok := places[name]
	if !ok {
		return network.PinRef{}, fmt.Errorf("%w: %q", ErrUnknownComponent, name)
	}
	return p.Pin(pin), nil
}

// modeTags 模式顺序：modes 列表优先，否则按 mode 块的顺序
func modeTags(c *componentBlock) ([]string, error) {
	blocks := map[string]bool{}
	var order []string
	for _, m := range c.Mode {
		if blocks[m.Tag] {
			return nil, fmt.Errorf("%w: 模式 %q 重复", ErrInvalidComponent, m.Tag)
		}
		blocks[m.Tag] = true
		order = append(order, m.Tag)
	}
	if len(c.Modes) == 0 {
		return order, nil
	}
	for tag := range blocks {
		if !slices.Contains(c.Modes, tag) {
			return nil, fmt.Errorf("%w: 模式 %q 不在 modes 中", ErrInvalidComponent, tag)
		}
	}
	return c.Modes, nil
}

// component 创建组件模型和放置选项
func component(c *componentBlock, lib *Library) (element.Model, []network.PlaceOption, error) {
	opts := []network.PlaceOption{network.Named(c.Name)}
	if len(c.Rename) > 0 {
		opts = append(opts, network.Rename(c.Rename))
	}
	tags, err := modeTags(c)
	if err != nil {
		return nil, nil, err
	}
	for _, m := range c.Mode {
		if len(m.Rename) > 0 {
			opts = append(opts, network.ModeRename(m.Tag, m.Rename))
		}
	}

	switch {
	case c.Kind != "" && c.Network != "":
		return nil, nil, fmt.Errorf("%w: kind 与 network 只能给出一个", ErrInvalidComponent)
	case c.Kind == UserWaveguideKind:
		model, err := userWaveguide(c, tags)
		return model, opts, err
	case present(c.Neff) || len(c.Params) > 0:
		return nil, nil, fmt.Errorf("%w: neff 和 params 只用于 %s", ErrInvalidComponent, UserWaveguideKind)
	}

	var model element.Model
	if c.Network != "" {
		if len(c.Args) > 0 {
			return nil, nil, fmt.Errorf("%w: 网络组件不接受 args", ErrInvalidComponent)
		}
		n, ok := lib.Get(c.Network)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownNetwork, c.Network)
		}
		model = n
	} else if c.Kind != "" {
		if model, err = element.NewElement(element.Kind(c.Kind), c.Args); err != nil {
			return nil, nil, err
		}
	} else {
		return nil, nil, fmt.Errorf("%w: 缺少 kind 或 network", ErrInvalidComponent)
	}

	if len(tags) > 0 {
		opts = append(opts, network.Modes(tags...))
	}
	for _, m := range c.Mode {
		if len(m.Params) > 0 {
			opts = append(opts, network.ModeParams(m.Tag, m.Params))
		}
	}
	return model, opts, nil
}

// userWaveguide 由 neff 表达式创建波导。表达式中除 wl 外的变量取 params 中的默认值，
// 没有默认值的为必填；模式块的 params 作为该模式的固定值。
func userWaveguide(c *componentBlock, tags []string) (element.Model, error) {
	if !present(c.Neff) {
		return nil, fmt.Errorf("%w: %s 需要 neff", ErrInvalidComponent, UserWaveguideKind)
	}
	if err := element.Args(c.Args).Check("L"); err != nil {
		return nil, err
	}
	length, ok := c.Args["L"]
	if !ok {
		return nil, fmt.Errorf("%w: %s 需要 args.L", ErrInvalidComponent, UserWaveguideKind)
	}
	defs := element.Defaults{}
	for _, name := range variables(c.Neff) {
		defs[name] = element.Required()
	}
	for name, v := range c.Params {
		defs[name] = element.Default(v)
	}
	fixed := map[string]element.Params{}
	for _, m := range c.Mode {
		fixed[m.Tag] = m.Params
	}
	modes := make([]element.Mode, 0, len(tags))
	for _, tag := range tags {
		modes = append(modes, element.Mode{Tag: tag, Params: fixed[tag].Clone()})
	}
	expr := c.Neff
	neff := func(params element.Params) (float64, error) { return evaluate(expr, params) }
	return base.NewUserWaveguide(length, neff, defs, modes...), nil
}

// derive 由派生块创建派生函数，表达式变量按名字排序作为入参。
func derive(d *derivedBlock) (network.DeriveFunc, []network.Arg, error) {
	names := variables(d.Expr)
	for name := range d.Args {
		if !slices.Contains(names, name) {
			return nil, nil, fmt.Errorf("%w: 派生参数 %s 的 args 中 %q 未被使用", ErrExpression, d.Name, name)
		}
	}
	for name := range d.Bind {
		if !slices.Contains(names, name) {
			return nil, nil, fmt.Errorf("%w: 派生参数 %s 的 bind 中 %q 未被使用", ErrExpression, d.Name, name)
		}
	}
	args := make([]network.Arg, 0, len(names))
	for _, name := range names {
		a := network.ArgOf(name)
		if v, ok := d.Args[name]; ok {
			a = network.ArgDefault(name, v)
		}
		if param, ok := d.Bind[name]; ok {
			a = a.As(param)
		}
		args = append(args, a)
	}
	expr := d.Expr
	fn := func(params element.Params) (float64, error) { return evaluate(expr, params) }
	return fn, args, nil
}
