package main

import (
	"github.com/spf13/cobra"

	"github.com/ducminhle1904/evosvm/pkg/orchestrator"
	"github.com/ducminhle1904/evosvm/pkg/tuning"
)

func newGridCommand(global *globalOptions) *cobra.Command {
	opts := &runOptions{}
	grid := tuning.Grid{}
	var workers int

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Search C and gamma, ranking every pair by test accuracy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, global, opts)
			if err != nil {
				return err
			}

			o := orchestrator.NewOrchestrator(orchestrator.WithConsole(cmd.OutOrStdout()))
			_, err = orchestrator.NewGridSearchWorkflow(o, cfg, grid, workers).Execute(cmd.Context())
			return err
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.trainFile, "train", "", "Training dataset (.data, .csv or .xlsx)")
	fs.StringVar(&opts.testFile, "test", "", "Validation dataset; without it the training file is split")
	fs.StringVar(&opts.format, "format", "", "Dataset layout: wisconsin or plain")
	fs.StringVar(&opts.outputDir, "output", "", "Output directory for grid reports")
	fs.Int64Var(&opts.seed, "seed", 1, "Base random seed; cell i trains with seed+i")
	fs.Float64SliceVar(&grid.Cs, "c", []float64{0.01, 0.1, 1, 10}, "Values of C to try")
	fs.Float64SliceVar(&grid.Gammas, "gamma", []float64{0.0001, 0.001, 0.01, 0.1}, "Values of gamma to try")
	fs.IntVar(&workers, "workers", 0, "Cells trained in parallel (0 uses every CPU)")
	return cmd
}
