package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Rogov-KS/rwlist/report"
	"github.com/Rogov-KS/rwlist/workload"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		wf          workloadFlags
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the workload once and print the counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := wf.resolve(cmd.Flags())
			if err != nil {
				return err
			}

			rep, runErr := workload.Execute(cmd.Context(), cfg, workload.WithLogger(a.logger))
			if rep.RunID == "" {
				return runErr
			}
			if err := report.WriteText(cmd.OutOrStdout(), rep); err != nil {
				return err
			}

			if metricsFile != "" {
				m := workload.NewMetrics()
				m.Observe(rep)
				if err := m.WriteFile(metricsFile); err != nil {
					a.logger.Error("failed to write metrics", zap.String("path", metricsFile), zap.Error(err))
					return err
				}
			}
			return runErr
		},
	}
	wf.register(cmd.Flags())
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus text metrics to this file")
	return cmd
}
