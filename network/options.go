package network

import (
	"log/slog"
	"runtime"

	"github.com/joamatab/lekkersim/scatter"
)

// DefaultTolerance 连接分母的默认退化阈值
const DefaultTolerance = scatter.DefaultTolerance

// WavelengthParam 波长参数名
const WavelengthParam = "wl"

// Option 网络选项
type Option func(*config)

type config struct {
	tolerance float64
	strict    bool
	wl        bool
	workers   int
	logger    *slog.Logger
}

func defaultConfig() config {
	return config{
		tolerance: DefaultTolerance,
		workers:   runtime.GOMAXPROCS(0),
		logger:    slog.Default(),
	}
}

// WithTolerance 设置连接退化阈值，|den| 不大于该值时报 ErrDegenerateConnection。
func WithTolerance(tol float64) Option {
	return func(c *config) {
		if tol >= 0 {
			c.tolerance = tol
		}
	}
}

// WithStrictPorts 要求每个引脚都被连接或导出，否则 Build 返回 ErrDanglingPin。
// 默认未使用的引脚在求解时被截断丢弃。
func WithStrictPorts() Option {
	return func(c *config) { c.strict = true }
}

// WithWavelength 把 wl 列为网络的必填参数，即使没有组件读取它。
// SetDefault 给出的值仍然优先。
func WithWavelength() Option {
	return func(c *config) { c.wl = true }
}

// WithWorkers 设置 Sweep 的并发数，n ≤ 0 时使用 GOMAXPROCS。
func WithWorkers(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		c.workers = n
	}
}

// WithLogger 设置日志记录器
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
