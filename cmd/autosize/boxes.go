package main

import (
	"github.com/spf13/cobra"
)

func newBoxesCmd(a *app) *cobra.Command {
	var p pipeline
	cmd := &cobra.Command{
		Use:   "boxes <input.html>",
		Short: "Autosize a page and print its layout box tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := p.run(cmd.Context(), a, cmd, args[0])
			if err != nil {
				return err
			}
			return s.WriteBoxTree(cmd.OutOrStdout())
		},
	}
	p.register(cmd)
	return cmd
}
