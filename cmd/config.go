package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := yaml.Marshal(a.conf)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if a.conf.Source != "" {
				fmt.Fprintf(w, "# source: %s\n", a.conf.Source)
			} else {
				fmt.Fprintln(w, "# source: defaults")
			}
			_, err = w.Write(out)
			return err
		},
	})
	return cmd
}
