package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joamatab/lekkersim"
	"github.com/joamatab/lekkersim/network"
	"github.com/joamatab/lekkersim/utils"
)

var (
	flagFiles     []string
	flagLogLevel  string
	flagLogFormat string
	flagWorkers   int
	flagTolerance float64
	flagStrict    bool

	flagNetwork string
	flagSet     []string
	flagPins    string
)

var errNoFiles = errors.New("需要用 --file 指定网络文件")

// newRootCmd 创建命令树，每次调用都会把参数变量重置为默认值
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lekkersim",
		Short: "散射矩阵网络仿真",
		Long: `lekkersim 从 HCL 文件加载由光学元件组成的网络，
消去内部连接得到对外引脚之间的散射矩阵，并支持参数扫描。

示例:
  lekkersim kinds
  lekkersim networks -f mzm.hcl
  lekkersim solve -f mzm.hcl -n MZM --set wl=1.55 --set PW1=5 --pins a0,b0
  lekkersim sweep -f mzm.hcl -n MZM --sweep PW1=0:10:101 --pins a0,b0 --csv out.csv --plot out.png`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringSliceVarP(&flagFiles, "file", "f", nil, "网络定义文件或目录，可重复")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "日志级别: debug, info, warn, error")
	pf.StringVar(&flagLogFormat, "log-format", "text", "日志格式: text, json")
	pf.IntVar(&flagWorkers, "workers", 0, "扫描并发数，0 表示 GOMAXPROCS")
	pf.Float64Var(&flagTolerance, "tolerance", network.DefaultTolerance, "连接退化阈值")
	pf.BoolVar(&flagStrict, "strict", false, "要求每个引脚都被连接或导出")

	solveCmd, sweepCmd := newSolveCmd(), newSweepCmd()
	for _, cmd := range []*cobra.Command{solveCmd, sweepCmd} {
		cmd.Flags().StringVarP(&flagNetwork, "network", "n", "", "网络名，默认为最后定义的网络")
		cmd.Flags().StringArrayVar(&flagSet, "set", nil, "固定参数 name=value，可重复")
		cmd.Flags().StringVar(&flagPins, "pins", "", "输出的引脚对 a,b")
	}
	rootCmd.AddCommand(newKindsCmd(), newNetworksCmd(), solveCmd, sweepCmd)
	return rootCmd
}

// simulator 按全局参数创建仿真器并加载网络文件
func simulator(cmd *cobra.Command) (context.Context, *lekkersim.Simulator, error) {
	logger := utils.NewLogger(flagLogLevel, flagLogFormat, cmd.ErrOrStderr())
	ctx := utils.WithLogger(cmd.Context(), logger)
	if len(flagFiles) == 0 {
		return nil, nil, errNoFiles
	}
	opts := []network.Option{
		network.WithLogger(logger),
		network.WithTolerance(flagTolerance),
		network.WithWorkers(flagWorkers),
	}
	if flagStrict {
		opts = append(opts, network.WithStrictPorts())
	}
	sim := lekkersim.NewSimulator(opts...)
	if err := sim.Load(ctx, flagFiles...); err != nil {
		return nil, nil, err
	}
	return ctx, sim, nil
}

// networkName 未指定时取最后定义的网络
func networkName(sim *lekkersim.Simulator) (string, error) {
	if flagNetwork != "" {
		return flagNetwork, nil
	}
	names := sim.Networks()
	if len(names) == 0 {
		return "", fmt.Errorf("%w: 文件中没有网络", lekkersim.ErrNoNetwork)
	}
	return names[len(names)-1], nil
}

// parsePins 解析 "a,b"
func parsePins(s string) (string, string, error) {
	a, b, ok := strings.Cut(s, ",")
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if !ok || a == "" || b == "" {
		return "", "", fmt.Errorf("--pins %q 应为 a,b", s)
	}
	return a, b, nil
}
