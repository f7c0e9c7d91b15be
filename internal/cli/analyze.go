package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"

	"github.com/dshills/tonecheck/internal/backend"
	"github.com/dshills/tonecheck/internal/config"
	"github.com/dshills/tonecheck/internal/output"
	"github.com/dshills/tonecheck/internal/pipeline"
	"github.com/dshills/tonecheck/internal/providers"
	"github.com/dshills/tonecheck/internal/redact"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Run flags, shared by the root command and `config show`.
var (
	flagEnvFile     string
	flagBackendURL  string
	flagOpenAIURL   string
	flagModel       string
	flagSearch      string
	flagClientLimit int
	flagTaskLimit   int
	flagConcurrency int
	flagFormat      string
)

func addRunFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&flagEnvFile, "env-file", "", "Env file to load OPENAI_TOKEN from (default .env)")
	f.StringVar(&flagBackendURL, "backend-url", "", "Task-tracker API base URL")
	f.StringVar(&flagOpenAIURL, "openai-url", "", "Chat-completion endpoint URL")
	f.StringVar(&flagModel, "model", "", "Model name")
	f.StringVar(&flagSearch, "search", "", "Filter clients by search term")
	f.IntVar(&flagClientLimit, "client-limit", 0, "Maximum number of clients to fetch")
	f.IntVar(&flagTaskLimit, "task-limit", 0, "Maximum number of tasks to fetch")
	f.IntVar(&flagConcurrency, "concurrency", 0, "Maximum concurrent classifications (0 = unbounded)")
	f.StringVar(&flagFormat, "format", "", "Output format (text, json)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagEnvFile != "" {
		m["envFile"] = flagEnvFile
	}
	if flagBackendURL != "" {
		m["backendUrl"] = flagBackendURL
	}
	if flagOpenAIURL != "" {
		m["openaiUrl"] = flagOpenAIURL
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagSearch != "" {
		m["search"] = flagSearch
	}
	if flagClientLimit > 0 {
		m["clientLimit"] = strconv.Itoa(flagClientLimit)
	}
	if flagTaskLimit > 0 {
		m["taskLimit"] = strconv.Itoa(flagTaskLimit)
	}
	if flagConcurrency > 0 {
		m["concurrency"] = strconv.Itoa(flagConcurrency)
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	return m
}

func runAnalyze(cmd *cobra.Command) {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		if errors.Is(err, config.ErrMissingToken) {
			exitCode = ExitAuthError
		} else {
			exitCode = ExitUsageError
		}
		return
	}

	reporter, err := output.New(cfg.Format, cmd.OutOrStdout())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	log := logger.With(zap.String("run", uuid.NewString()))

	classifier, err := providers.NewOpenAI(providers.OpenAIOptions{
		APIKey:  cfg.Token,
		Model:   cfg.Model,
		BaseURL: cfg.OpenAIURL,
		Logger:  log.Named("openai"),
	})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
	defer stop()

	log.Debug("starting analysis",
		zap.String("backend", cfg.BackendURL),
		zap.String("model", cfg.Model),
		zap.Int("clientLimit", cfg.ClientLimit),
		zap.Int("taskLimit", cfg.TaskLimit))

	err = pipeline.Run(ctx, pipeline.Deps{
		Source:     backend.NewClient(cfg.BackendURL, &http.Client{}),
		Classifier: classifier,
		Reporter:   reporter,
		Logger:     log,
	}, pipeline.Options{
		Search:      cfg.Search,
		ClientLimit: cfg.ClientLimit,
		TaskLimit:   cfg.TaskLimit,
		Concurrency: cfg.Concurrency,
	})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", redact.Known(err.Error(), cfg.Token))
		exitCode = ExitRuntimeError
	}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
