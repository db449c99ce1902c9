package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joamatab/lekkersim/export"
	"github.com/joamatab/lekkersim/utils"
)

var (
	flagSweep []string
	flagCSV   string
	flagJSON  bool
	flagPlot  string
	flagX     string
	flagY     []string
)

func newSweepCmd() *cobra.Command {
	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "扫描参数并输出引脚对的传输曲线",
		Long: `对 --sweep 给出的参数逐点求解。序列写作 start:stop:n 或 a,b,c，
多个序列长度必须相同。结果默认以 CSV 写到标准输出。`,
		Args: cobra.NoArgs,
		RunE: runSweep,
	}
	sweepCmd.Flags().StringArrayVar(&flagSweep, "sweep", nil, "扫描参数 name=start:stop:n 或 name=a,b,c，可重复")
	sweepCmd.Flags().StringVar(&flagCSV, "csv", "-", "CSV 输出文件，'-' 为标准输出")
	sweepCmd.Flags().BoolVar(&flagJSON, "json", false, "以 JSON 代替 CSV 输出")
	sweepCmd.Flags().StringVar(&flagPlot, "plot", "", "曲线图输出文件（png、svg、pdf）")
	sweepCmd.Flags().StringVar(&flagX, "x", "", "曲线图横轴列，默认为首个扫描参数")
	sweepCmd.Flags().StringSliceVar(&flagY, "y", []string{export.ColumnT}, "曲线图纵轴列")
	return sweepCmd
}

func runSweep(cmd *cobra.Command, args []string) (err error) {
	if flagPins == "" {
		return errors.New("sweep 需要 --pins")
	}
	a, b, err := parsePins(flagPins)
	if err != nil {
		return err
	}
	ctx, sim, err := simulator(cmd)
	if err != nil {
		return err
	}
	name, err := networkName(sim)
	if err != nil {
		return err
	}
	fixed, err := utils.ValueList(flagSet).Params()
	if err != nil {
		return err
	}
	swept, err := utils.ValueList(flagSweep).Sweeps()
	if err != nil {
		return err
	}
	utils.FromContext(ctx).Info("开始扫描", "network", name, "params", len(swept))
	rec, err := sim.Export(ctx, name, fixed, swept, a, b)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagCSV != "-" {
		f, cerr := os.Create(flagCSV)
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
	}
	if flagJSON {
		err = rec.Render(out)
	} else {
		err = rec.WriteCSV(out)
	}
	if err != nil {
		return fmt.Errorf("写出结果: %w", err)
	}

	if flagPlot != "" {
		if err := export.NewCharts(rec).Save(flagPlot, flagX, flagY...); err != nil {
			return fmt.Errorf("绘图: %w", err)
		}
	}
	return nil
}
