package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Poli-Reddy/insightmeet/analysis"
)

func newDemoCommand(a *app) *cobra.Command {
	var (
		seed   uint64
		format string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Print the bundle for the built-in sample meeting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			utts, roster := analysis.SampleMeeting()
			data, err := a.generate(utts, roster, seed)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), format, data)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 1, "seed for placeholder scores (0 uses the clock)")
	cmd.Flags().StringVar(&format, "format", formatJSON, "output format: json, yaml")
	return cmd
}
