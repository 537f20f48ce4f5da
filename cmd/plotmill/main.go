package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/han-yaeger/plotmill/internal/core"
	"github.com/han-yaeger/plotmill/internal/pipeline"
)

var configFlag string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "plotmill",
		Short:         "Render animation frames as PPM files and assemble them into a GIF",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to config.yaml (default: $CONFIG_PATH, then ./config.yaml)")

	tasks := []struct {
		name  string
		short string
	}{
		{"all", "Run the checks, render, assemble, and display the result"},
		{"run", "Render the animation frames"},
		{"gen", "Assemble the rendered frames into the output GIF"},
		{"display", "Open the assembled GIF in a viewer"},
		{"check", "Validate the configuration and smoke-render every scene"},
		{"clean", "Remove generated frames, PNG files, the log file, and the GIF"},
	}
	for _, task := range tasks {
		name := task.name
		rootCmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: task.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTask(name)
			},
		})
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the rendered result over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	})

	return rootCmd
}

func getConfigPath() string {
	if configFlag != "" {
		return configFlag
	}

	// First check if config path is provided via environment variable
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		return configPath
	}

	// Default to config.yaml in current working directory
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return filepath.Join(cwd, "config.yaml")
}

// setup loads the config, installs logging, and builds the core service.
// The returned cleanup closes the service and the log file.
func setup() (*core.CoreService, *core.ServiceConfig, func(), error) {
	configPath := getConfigPath()
	config, err := core.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	logClose, err := setupLogging(config)
	if err != nil {
		return nil, nil, nil, err
	}

	service, err := core.NewCoreService(config)
	if err != nil {
		logClose()
		return nil, nil, nil, err
	}

	cleanup := func() {
		if err := service.Close(); err != nil {
			slog.Error("core service close error", "error", err)
		}
		logClose()
	}
	return service, config, cleanup, nil
}

// setupLogging installs a text handler on stderr and, when a log file is
// configured, on the file as well.
func setupLogging(config *core.ServiceConfig) (func(), error) {
	w := io.Writer(os.Stderr)
	closeFn := func() {}

	if config.LogFile != "" {
		path := filepath.Join(config.Workdir, config.LogFile)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		w = io.MultiWriter(os.Stderr, f)
		closeFn = func() { _ = f.Close() }
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, nil)))
	return closeFn, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runTask(name string) error {
	service, _, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	registry, err := service.TaskRegistry()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	return pipeline.NewRunner(registry).Run(ctx, name)
}

func serve() error {
	service, config, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	if config.Port <= 0 {
		return fmt.Errorf("no preview port configured")
	}

	ctx, cancel := signalContext()
	defer cancel()

	return service.Serve(ctx)
}
