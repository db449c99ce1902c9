package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// 默认图像尺寸
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// Charts 曲线绘制
type Charts struct {
	*Record
	Title  string
	Width  vg.Length
	Height vg.Length
}

// NewCharts 创建绘图器
func NewCharts(rec *Record) *Charts {
	return &Charts{
		Record: rec,
		Title:  fmt.Sprintf("%s -> %s", rec.PinA, rec.PinB),
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// DefaultX 默认横轴：首个扫描参数，没有扫描参数时为行号
func (c *Charts) DefaultX() string {
	if len(c.Names) > 0 {
		return c.Names[0]
	}
	return ColumnIndex
}

// Plot 以 x 列为横轴绘制 ys 各列，ys 为空时绘制 T。
func (c *Charts) Plot(x string, ys ...string) (*plot.Plot, error) {
	if x == "" {
		x = c.DefaultX()
	}
	if len(ys) == 0 {
		ys = []string{ColumnT}
	}
	xs, err := c.Column(x)
	if err != nil {
		return nil, err
	}
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = x
	p.Y.Label.Text = strings.Join(ys, ", ")
	p.Add(plotter.NewGrid())

	lines := make([]any, 0, 2*len(ys))
	for _, name := range ys {
		vals, err := c.Column(name)
		if err != nil {
			return nil, err
		}
		pts := make(plotter.XYs, len(xs))
		for i := range pts {
			pts[i].X, pts[i].Y = xs[i], vals[i]
		}
		lines = append(lines, name, pts)
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return nil, fmt.Errorf("绘制曲线: %w", err)
	}
	return p, nil
}

// Save 绘制并保存，格式由扩展名决定（png、svg、pdf 等）
func (c *Charts) Save(path, x string, ys ...string) error {
	p, err := c.Plot(x, ys...)
	if err != nil {
		return err
	}
	return p.Save(c.Width, c.Height, path)
}

// Encode 绘制并以指定格式写入 w
func (c *Charts) Encode(w io.Writer, format, x string, ys ...string) error {
	p, err := c.Plot(x, ys...)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(c.Width, c.Height, strings.TrimPrefix(format, "."))
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// FormatOf 由文件名取格式
func FormatOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
