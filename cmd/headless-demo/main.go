package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/modoterra/headless/internal/buildinfo"
	"github.com/modoterra/headless/pkg/config"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "headless-demo",
	Short: "Run a headless app that shows its own log in the terminal",
	Long: "headless-demo runs a frame loop without a window. Background workers log " +
		"through the capture pipeline and every frame draws the captured log. Press q " +
		"or ctrl+c to quit.",
	RunE: runDemo,
}

var (
	configPath string
	fps        int
	frames     uint32
	workers    int
	noTerminal bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default "+config.DefaultPath+" if present)")
	rootCmd.Flags().IntVar(&fps, "fps", 0, "frames per second (overrides frame_rate)")
	rootCmd.Flags().Uint32Var(&frames, "frames", 0, "exit after this many frames (0 runs until quit)")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "number of background log producers (overrides workers)")
	rootCmd.Flags().BoolVar(&noTerminal, "no-terminal", false, "run without a screen and print the captured log on exit")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

// --- Root: demo ---

func runDemo(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("fps") {
		cfg.FrameRate = fps
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runApp(ctx, cfg, demoOptions{
		frames:     frames,
		noTerminal: noTerminal,
		out:        cmd.OutOrStdout(),
	})
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg, os.Environ()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// --- Version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "headless-demo %s (%s) built %s\n", buildinfo.Version, buildinfo.Commit, buildinfo.Date)
	},
}

// --- Config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the demo's config file",
}

var (
	configInitOutput string
	configInitForce  bool
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newCommandLogger(cmd.ErrOrStderr()).With("command", "config/init")

		path := configInitOutput
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		logger.Info("wrote config", "path", path)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a config file, with environment overrides applied",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newCommandLogger(cmd.ErrOrStderr()).With("command", "config/validate")

		path := configPath
		if len(args) > 0 {
			path = args[0]
		}
		cfg, err := loadConfig(path)
		if err != nil {
			return err
		}

		errs := config.Validate(cfg)
		if len(errs) == 0 {
			logger.Info("config is valid", "path", path, "log", cfg.Log, "frame_rate", cfg.FrameRate)
			return nil
		}
		for _, e := range errs {
			logger.Error("invalid config", "path", path, "err", e)
		}
		return fmt.Errorf("%d config error(s)", len(errs))
	},
}

func init() {
	configInitCmd.Flags().StringVar(&configInitOutput, "output", config.DefaultPath, "output file path")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
}

