package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Rogov-KS/rwlist/report"
	"github.com/Rogov-KS/rwlist/workload"
)

func newBenchCmd(a *app) *cobra.Command {
	var (
		wf          workloadFlags
		repeat      int
		xlsxPath    string
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Repeat the workload and aggregate elapsed times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if repeat < 1 {
				return fmt.Errorf("repeat must be positive, got %d", repeat)
			}
			cfg, err := wf.resolve(cmd.Flags())
			if err != nil {
				return err
			}

			m := workload.NewMetrics()
			reps := make([]workload.Report, 0, repeat)
			for i := 0; i < repeat; i++ {
				rep, err := workload.Execute(cmd.Context(), cfg, workload.WithLogger(a.logger))
				if err != nil {
					return fmt.Errorf("run %d: %w", i+1, err)
				}
				m.Observe(rep)
				reps = append(reps, rep)
			}

			s := report.Summarize(reps)
			a.logger.Info("bench finished",
				zap.Int("runs", s.Runs),
				zap.Duration("mean", s.Mean),
				zap.Duration("min", s.Min),
				zap.Duration("max", s.Max),
			)
			fmt.Fprintln(cmd.OutOrStdout(), s)

			if xlsxPath != "" {
				if err := report.WriteXLSX(xlsxPath, reps); err != nil {
					return err
				}
			}
			if metricsFile != "" {
				if err := m.WriteFile(metricsFile); err != nil {
					return err
				}
			}
			return nil
		},
	}
	wf.register(cmd.Flags())
	cmd.Flags().IntVarP(&repeat, "repeat", "r", 5, "number of runs")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write per-run rows and a summary to this .xlsx file")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus text metrics to this file")
	return cmd
}
