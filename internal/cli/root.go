package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "0.1.0"

// Process exit codes
const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

var (
	flagVerbose bool

	// logger is built before every command runs.
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "tonecheck",
	Short: "Classify task comments with an LLM",
	Long: `Tonecheck fetches the first client's tasks from the task-tracker backend,
collects every comment on them and asks an LLM whether each comment is a
positive assessment of its task.

Run without arguments to analyze with the default configuration.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if flagVerbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		runAnalyze(cmd)
		return nil
	},
}

// Run executes the root command and returns an exit code.
func Run() int {
	exitCode = ExitSuccess
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print tonecheck version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tonecheck version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	addRunFlags(rootCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
