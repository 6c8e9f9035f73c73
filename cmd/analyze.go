package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Poli-Reddy/insightmeet/metrics"
	"github.com/Poli-Reddy/insightmeet/orchestrator"
)

func newAnalyzeCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "analyze <audio>",
		Short: "Run the full pipeline on an audio file",
		Long: `Run the full pipeline on an audio file.

The recording is sent to the configured diarization service (or ASR as a
fallback), classified when a sentiment service is configured, and turned
into an analysis bundle. The bundle is written to paths.outputs when set
and printed to stdout.

Examples:
  insightmeet analyze meeting.wav
  insightmeet analyze meeting.wav --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := orchestrator.NewPipeline(a.conf,
				orchestrator.WithLogger(a.log),
				orchestrator.WithMetrics(metrics.New()),
			)
			res, err := p.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), format, res.Analysis)
		},
	}

	cmd.Flags().StringVar(&format, "format", formatJSON, "output format: json, yaml")
	return cmd
}
