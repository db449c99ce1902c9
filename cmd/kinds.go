package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joamatab/lekkersim/element"
	"github.com/joamatab/lekkersim/load"
	"github.com/joamatab/lekkersim/utils"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "列出可用的元件类型",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			for _, kind := range element.Kinds() {
				fmt.Fprintln(w, kind)
			}
			fmt.Fprintln(w, load.UserWaveguideKind)
		},
	}
}

func newNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "列出文件中定义的网络及其引脚和参数",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sim, err := simulator(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, name := range sim.Networks() {
				n, err := sim.Network(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\n  pins:   %s\n  params: %s\n", name,
					strings.Join(n.Pins(), " "), utils.FormatParams(n.DefaultParams()))
			}
			return nil
		},
	}
}
