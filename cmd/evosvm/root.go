package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/ducminhle1904/evosvm/pkg/config"
)

const defaultEnvFile = ".env"

// globalOptions are the flags shared by every command
type globalOptions struct {
	configFile string
	envFile    string
}

// runOptions override the configuration file for commands that train
type runOptions struct {
	trainFile string
	testFile  string
	format    string
	outputDir string
	seed      int64
	c         float64
	gamma     float64
}

// NewRootCommand builds the evosvm command tree
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "evosvm",
		Short: "Train soft-margin kernel SVMs with a genetic algorithm",
		Long: `evosvm searches the Lagrange multipliers of the SVM dual with a genetic
algorithm, repairs every candidate onto the equality constraint and reports the
resulting decision function.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadEnvFile(opts.envFile, cmd.Flags().Changed("env-file"))
		},
	}

	fs := cmd.PersistentFlags()
	fs.StringVar(&opts.configFile, "config", "", "Training configuration file (YAML or JSON)")
	fs.StringVar(&opts.envFile, "env-file", defaultEnvFile, "Environment file with EVOSVM_* overrides")
	addKlogFlags(fs)

	cmd.AddCommand(
		newTrainCommand(opts),
		newGridCommand(opts),
		newCrossValidateCommand(opts),
		newRunsCommand(opts),
		newVersionCommand(),
	)
	return cmd
}

func addKlogFlags(fs *pflag.FlagSet) {
	goFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(goFlags)
	fs.AddGoFlagSet(goFlags)
}

// loadEnvFile loads the environment file. A missing default file is not an error.
func loadEnvFile(envFile string, explicit bool) error {
	if envFile == "" {
		return nil
	}
	if _, err := os.Stat(envFile); err != nil {
		if explicit {
			return fmt.Errorf("env file %s not found", envFile)
		}
		return nil
	}
	klog.V(2).InfoS("Loading environment file", "path", envFile)
	return godotenv.Load(envFile)
}

func addRunFlags(fs *pflag.FlagSet, opts *runOptions) {
	fs.StringVar(&opts.trainFile, "train", "", "Training dataset (.data, .csv or .xlsx)")
	fs.StringVar(&opts.testFile, "test", "", "Test dataset; without it the training file is split")
	fs.StringVar(&opts.format, "format", "", "Dataset layout: wisconsin or plain")
	fs.StringVar(&opts.outputDir, "output", "", "Output directory for reports, logs and the run database")
	fs.Int64Var(&opts.seed, "seed", config.DefaultSeed, "Random seed")
	fs.Float64Var(&opts.c, "c", 0, "Soft-margin constant C")
	fs.Float64Var(&opts.gamma, "gamma", 0, "RBF kernel gamma")
}

// loadConfig reads the configuration and applies the flags the user set
func loadConfig(cmd *cobra.Command, global *globalOptions, opts *runOptions) (*config.TrainingConfig, error) {
	cfg, err := config.NewManager().LoadConfig(global.configFile)
	if err != nil {
		return nil, err
	}
	if opts == nil {
		return cfg, nil
	}

	flags := cmd.Flags()
	if flags.Changed("train") {
		cfg.Data.TrainFile = opts.trainFile
	}
	if flags.Changed("test") {
		cfg.Data.TestFile = opts.testFile
	}
	if flags.Changed("format") {
		cfg.Data.Format = opts.format
	}
	if flags.Changed("output") {
		cfg.Output.Dir = opts.outputDir
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
	// grid binds c and gamma to value lists instead
	if isFloatFlag(flags, "c") && flags.Changed("c") {
		cfg.SVM.C = opts.c
	}
	if isFloatFlag(flags, "gamma") && flags.Changed("gamma") {
		cfg.SVM.Gamma = opts.gamma
	}
	return cfg, nil
}

func isFloatFlag(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	return f != nil && f.Value.Type() == "float64"
}
