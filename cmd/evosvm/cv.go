package main

import (
	"github.com/spf13/cobra"

	"github.com/ducminhle1904/evosvm/pkg/orchestrator"
)

func newCrossValidateCommand(global *globalOptions) *cobra.Command {
	opts := &runOptions{}
	var folds int

	cmd := &cobra.Command{
		Use:     "cv",
		Aliases: []string{"cross-validate"},
		Short:   "Estimate generalization with k-fold cross-validation of the training file",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, global, opts)
			if err != nil {
				return err
			}
			cfg.Output.Console = true

			o := orchestrator.NewOrchestrator(orchestrator.WithConsole(cmd.OutOrStdout()))
			_, err = orchestrator.NewCrossValidationWorkflow(o, cfg, folds).Execute(cmd.Context())
			return err
		},
	}

	addRunFlags(cmd.Flags(), opts)
	cmd.Flags().IntVar(&folds, "folds", 5, "Number of folds")
	return cmd
}
