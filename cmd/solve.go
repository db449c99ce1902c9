package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joamatab/lekkersim/network"
	"github.com/joamatab/lekkersim/utils"
)

func newSolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve",
		Short: "以固定参数求解网络",
		Long: `求解网络并输出引脚对的传输 T、相位和复振幅。
未给出 --pins 时输出整个散射矩阵。`,
		Args: cobra.NoArgs,
		RunE: runSolve,
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	_, sim, err := simulator(cmd)
	if err != nil {
		return err
	}
	name, err := networkName(sim)
	if err != nil {
		return err
	}
	params, err := utils.ValueList(flagSet).Params()
	if err != nil {
		return err
	}
	r, err := sim.Solve(name, params)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if flagPins == "" {
		return printMatrix(w, r)
	}
	a, b, err := parsePins(flagPins)
	if err != nil {
		return err
	}
	amp, err := r.Amplitude(a, b)
	if err != nil {
		return err
	}
	tr, _ := r.T(a, b)
	ph, _ := r.Phase(a, b)
	fmt.Fprintf(w, "T=%g Phase=%g Amplitude=%s\n", tr, ph, strconv.FormatComplex(amp, 'g', -1, 128))
	return nil
}

// printMatrix 以表格输出散射矩阵，第 i 行第 j 列为 S[pins[i], pins[j]]
func printMatrix(w io.Writer, r *network.ReducedModel) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	pins := r.Pins()
	fmt.Fprint(tw, "S")
	for _, pin := range pins {
		fmt.Fprintf(tw, "\t%s", pin)
	}
	fmt.Fprintln(tw)
	m := r.Matrix()
	for i, pin := range pins {
		fmt.Fprint(tw, pin)
		for j := range pins {
			fmt.Fprintf(tw, "\t%s", strconv.FormatComplex(m.Get(i, j), 'f', 4, 128))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
