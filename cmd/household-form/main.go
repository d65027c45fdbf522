// cmd/household-form/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MDSCJ/Data-Collection/cmd/household-form/ui"
	"github.com/MDSCJ/Data-Collection/internal/common/config"
	"github.com/MDSCJ/Data-Collection/internal/common/logger"
	"github.com/MDSCJ/Data-Collection/internal/common/ops"
	"github.com/MDSCJ/Data-Collection/internal/form/answers"
	"github.com/MDSCJ/Data-Collection/internal/form/controller"
)

var version = "dev"

var (
	configPath  string
	answersPath string
	logOutput   string
)

var rootCmd = &cobra.Command{
	Use:   "household-form",
	Short: "Household data collection form",
	Long: `Collects a household record: respondent details, a pinned map location and
the family members, then posts it as one JSON document to the collection endpoint.

Run without arguments to start the interactive form.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive form",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Fill the form from an answers file and submit it once",
	Long: `Replays a YAML answers file through the same validation and submission
path as the interactive form.

Example:
  household-form submit --answers household.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSubmit(cmd.Context(), answersPath)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "household-form", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logOutput, "log-output", "", "log sink path, overrides logging.output")
	submitCmd.Flags().StringVarP(&answersPath, "answers", "a", "", "YAML answers file")
	_ = submitCmd.MarkFlagRequired("answers")

	rootCmd.AddCommand(runCmd, submitCmd, versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// setup loads configuration and logging and starts the ops listener when enabled.
func setup() (*config.Config, *zap.Logger, logger.Logger, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("config load failed: %w", err)
	}
	output := cfg.Logging.Output
	if logOutput != "" {
		output = logOutput
	}
	zapLog := logger.NewToOutput(cfg.Logging.Level, cfg.Logging.Format, output)
	log := logger.NewZapAdapter(zapLog)

	var opsServer *ops.Server
	if cfg.Metrics.Enabled {
		opsServer = ops.NewServer(cfg.Metrics.Address, cfg.App.Name, log)
		opsServer.Start()
	}

	cleanup := func() {
		if opsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := opsServer.Shutdown(shutdownCtx); err != nil {
				zapLog.Warn("ops server shutdown failed", zap.Error(err))
			}
		}
		_ = zapLog.Sync()
	}
	return cfg, zapLog, log, cleanup, nil
}

func runInteractive(ctx context.Context) error {
	cfg, zapLog, log, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	a, err := buildApp(cfg, log)
	if err != nil {
		zapLog.Error("startup failed", zap.Error(err))
		return err
	}
	defer a.obs.Shutdown()

	zapLog.Info("starting interactive form",
		zap.String("endpoint", cfg.Submission.Endpoint),
		zap.String("geolocation", cfg.Geolocation.Provider),
	)

	p := tea.NewProgram(ui.New(ctx, a.controller), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal UI: %w", err)
	}
	return nil
}

func runSubmit(ctx context.Context, path string) error {
	cfg, zapLog, log, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	a, err := buildApp(cfg, log)
	if err != nil {
		zapLog.Error("startup failed", zap.Error(err))
		return err
	}
	defer a.obs.Shutdown()

	ans, err := answers.Load(path)
	if err != nil {
		return err
	}

	events := append(ans.Events(a.fieldOrder()), controller.Submit{})
	view := a.controller.Replay(ctx, events)

	fmt.Println(view.ResponseMessage)
	if view.ResponseTone != controller.ToneSuccess {
		if view.Map.Advisory.IsError {
			fmt.Fprintln(os.Stderr, view.Map.Advisory.Text)
		}
		if view.ValidationMessage != "" {
			fmt.Fprintln(os.Stderr, view.ValidationMessage)
		}
		return fmt.Errorf("form was not submitted")
	}
	return nil
}
