package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/edyy78/uireplay/internal/config"
	"github.com/edyy78/uireplay/internal/output"
	"github.com/edyy78/uireplay/internal/version"
)

var configFile string
var appName string
var logLevel string
var encoding string

var rootCmd = &cobra.Command{
	Use:   "uireplay [flags] SCRIPT",
	Short: "Replay UI test scripts against a running desktop application",
	Long: `uireplay drives a desktop application through synthetic mouse and keyboard
input. A script is a plain text file of kind:payload lines, executed top to
bottom with a fixed pause after each line. Every step is appended to a
timestamped journal.

Lines without a colon are comments. Supported kinds: log, mouse, mouse_move,
keyboard, action, toolbox, test.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScript,
}

func init() {
	rootCmd.Version = version.Resolved()
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultFile, "YAML config file (optional unless set explicitly)")
	rootCmd.PersistentFlags().StringVar(&appName, "app", defaultApp(), fmt.Sprintf("Executable name of the application under test (env %s)", config.EnvApp))
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.Default().LogLevel, "Diagnostic log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&encoding, "encoding", "", "Script encoding (default UTF-8, a BOM always wins)")
}

func defaultApp() string {
	if env := os.Getenv(config.EnvApp); env != "" {
		return env
	}
	return config.Default().App
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.FormatFailure(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig layers the config file, the environment and explicitly set flags.
// The layered config is returned even with an error so the journal path is known.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	cfg, loadErr := config.Load(configFile, flags.Changed("config"))
	cfg.ApplyEnv(os.LookupEnv)

	if flags.Changed("app") {
		cfg.App = appName
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("pause") {
		cfg.Pause = pause
	}
	if flags.Changed("startup") {
		cfg.Startup = startup
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("encoding") {
		cfg.Encoding = encoding
	}
	if flags.Changed("export-file") {
		cfg.ExportFile = exportFile
	}
	if flags.Changed("window-title") {
		cfg.WindowTitle = windowTitle
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = findMaxDepth
	}

	if loadErr != nil {
		return cfg, loadErr
	}
	return cfg, cfg.Validate()
}

// newLogger builds the stderr diagnostics logger; the journal is separate
func newLogger(cfg config.Config) (*zap.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = true
	return zc.Build()
}
