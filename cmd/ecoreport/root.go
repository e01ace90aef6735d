package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ecoreport/internal/config"
	"ecoreport/internal/logger"
	"ecoreport/internal/mocks"
	"ecoreport/internal/models"
)

// app is shared by the subcommands once the root has loaded configuration
type app struct {
	envFile  string
	logLevel string
	cfg      *config.Config
	log      *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "ecoreport",
		Short:         "Compose sustainability reports from business metrics snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Environment file loaded before configuration (optional)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(
		newRenderCmd(a),
		newTemplatesCmd(a),
		newChartCmd(a),
		newSampleCmd(a),
		newListCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", a.envFile, err)
		}
	}

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	global := logger.GetGlobalLogger()
	if level, ok := logger.ParseLevel(cfg.LogLevel); ok {
		global.SetLevel(level)
	}
	if format, ok := logger.ParseFormat(cfg.LogFormat); ok {
		global.SetFormat(format)
	}

	a.cfg = cfg
	a.log = logger.Component("cli")
	return nil
}

// readSnapshot loads a snapshot from a file, stdin ("-") or a named fixture
func readSnapshot(stdin io.Reader, path, fixture string) (models.MetricsSnapshot, error) {
	if fixture != "" {
		return mocks.NewMockService("").LoadSnapshot(fixture)
	}
	if path == "" {
		return models.MetricsSnapshot{}, errors.New("a snapshot file or --sample fixture is required")
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return models.MetricsSnapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	s, err := models.DecodeSnapshot(data)
	if err != nil {
		return models.MetricsSnapshot{}, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	return s, nil
}
