package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
	"github.com/ducminhle1904/evosvm/internal/storage"
	"github.com/ducminhle1904/evosvm/pkg/config"
	"github.com/ducminhle1904/evosvm/pkg/reporting"
)

type runsOptions struct {
	dbPath string
	limit  int
	asJSON bool
}

func newRunsCommand(global *globalOptions) *cobra.Command {
	opts := &runsOptions{}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect stored training runs",
	}
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Run database (defaults to the configured SQLite path)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openRunStore(cmd, global, opts)
			if err != nil {
				return err
			}
			defer store.Close()

			summaries, err := store.ListRuns(cmd.Context(), opts.limit)
			if err != nil {
				return err
			}
			reporting.NewConsoleReporter(cmd.OutOrStdout()).OutputRuns(summaries)
			return nil
		},
	}
	list.Flags().IntVar(&opts.limit, "limit", 20, "Maximum number of runs (0 lists all)")

	show := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openRunStore(cmd, global, opts)
			if err != nil {
				return err
			}
			defer store.Close()

			run, ok, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return svmerrors.NewInvalidInputError("cli", "show run", "run %s not found", args[0])
			}

			if opts.asJSON {
				data, err := json.MarshalIndent(run, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			reporting.NewConsoleReporter(cmd.OutOrStdout()).OutputRun(&run)
			return nil
		},
	}
	show.Flags().BoolVar(&opts.asJSON, "json", false, "Print the stored record as JSON")

	cmd.AddCommand(list, show)
	return cmd
}

func openRunStore(cmd *cobra.Command, global *globalOptions, opts *runsOptions) (storage.Store, error) {
	path := opts.dbPath
	if path == "" {
		cfg, err := loadConfig(cmd, global, nil)
		if err != nil {
			return nil, err
		}
		path = cfg.DatabasePath()
	}

	store, err := storage.NewStore(config.StorageSQLite, path)
	if err != nil {
		return nil, err
	}
	if err := store.Init(cmd.Context()); err != nil {
		return nil, err
	}
	return store, nil
}
