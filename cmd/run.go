package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/edyy78/uireplay/internal/a11y"
	"github.com/edyy78/uireplay/internal/config"
	"github.com/edyy78/uireplay/internal/input"
	"github.com/edyy78/uireplay/internal/interp"
	"github.com/edyy78/uireplay/internal/journal"
	"github.com/edyy78/uireplay/internal/target"
)

var pause time.Duration
var startup time.Duration
var logFile string
var backend string
var exportFile string
var windowTitle string
var quiet bool

func runScript(cmd *cobra.Command, args []string) error {
	cfg, cfgErr := loadConfig(cmd)

	j, err := journal.Open(cfg.LogFile)
	if err != nil {
		return err
	}
	defer j.Close()

	// fatal setup errors get the same final journal line as run errors
	fail := func(err error) error {
		j.Errorf("%v", err)
		return err
	}
	if cfgErr != nil {
		return fail(cfgErr)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fail(err)
	}
	defer func() { _ = logger.Sync() }()

	backendName, err := input.ValidateBackend(cfg.Backend)
	if err != nil {
		return fail(err)
	}
	be, err := input.NewBackend(backendName)
	if err != nil {
		return fail(err)
	}

	// A dry run never touches the desktop, so there is no target to find
	var connector interp.Connector
	if backendName != input.BackendDryRun {
		finder := target.NewFinder(cfg.App, cfg.Startup, j, logger)
		finder.OpenTree = openDesktop
		connector = finder
	}

	out := cmd.OutOrStdout()
	if quiet {
		out = io.Discard
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var scriptPath string
	if len(args) > 0 {
		scriptPath = args[0]
	}

	_, err = interp.Run(ctx, interp.Config{
		ScriptPath:  scriptPath,
		Encoding:    cfg.Encoding,
		Pause:       cfg.Pause,
		SettleDelay: cfg.SettleDelay,
		ExportDelay: cfg.ExportDelay,
		ExportFile:  cfg.ExportFile,
		TargetName:  cfg.App,
		WindowTitle: cfg.WindowTitle,
		Actions:     cfg.Actions,
		Toolbox:     cfg.Toolbox,
		Journal:     j,
		Backend:     be,
		Target:      connector,
		Output:      out,
		Logger:      logger,
	})
	return err
}

func openDesktop(ctx context.Context) (target.Tree, error) {
	d, err := a11y.ConnectDesktop(ctx)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func init() {
	defaults := config.Default()

	rootCmd.Flags().DurationVar(&pause, "pause", defaults.Pause, "Pause after each script line")
	rootCmd.Flags().DurationVar(&startup, "startup", defaults.Startup, "Time to wait for a launched application")
	rootCmd.Flags().StringVar(&logFile, "log-file", defaults.LogFile, "Journal file, appended to on every run")
	rootCmd.Flags().StringVar(&exportFile, "export-file", defaults.ExportFile, "Image written by the application on test export")
	rootCmd.Flags().StringVar(&windowTitle, "window-title", defaults.WindowTitle, "Window raised before the script runs (empty to skip)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress console output; the journal is still written")

	// Input backend flag with env var fallback
	defaultBackend := defaults.Backend
	if envBackend := os.Getenv(config.EnvBackend); envBackend != "" {
		defaultBackend = envBackend
	}
	rootCmd.Flags().StringVar(&backend, "backend", defaultBackend, fmt.Sprintf("Input backend to use (xdotool, dry-run; env %s)", config.EnvBackend))
}
