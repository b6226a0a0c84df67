// Command stage runs the 3D experience in a desktop window or headless.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stage/app"
	"stage/hal"
	"stage/internal/buildinfo"
	"stage/internal/config"
	"stage/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "stage",
		Short:        "Run the 3D experience",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.LogLevel, cfg.Debug)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return run(ctx, cfg, log)
		},
	}

	fl := cmd.Flags()
	fl.StringP("config", "c", "", "YAML config file")
	fl.String("log-level", "", "log level (debug, info, warn, error)")
	fl.Bool("debug", false, "enable the debug panel and asset hot reload")
	fl.String("assets", "", "load assets from this directory instead of the embedded set")
	fl.Bool("headless", false, "run without a window")
	fl.Int("hz", 0, "tick rate in headless mode")
	fl.Uint64("ticks", 0, "stop after N ticks in headless mode (0 = run until interrupted)")
	fl.String("snapshot", "", "write the last headless frame to this PNG file")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "stage", buildinfo.String())
		},
	})
	return cmd
}

// resolveConfig layers the config file and then the flags that were set
// explicitly over the defaults.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	fl := cmd.Flags()
	cfg := config.Default()
	if path, _ := fl.GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	var err error
	set := func(name string, apply func() error) {
		if err == nil && fl.Changed(name) {
			err = apply()
		}
	}
	set("log-level", func() (e error) { cfg.LogLevel, e = fl.GetString("log-level"); return })
	set("debug", func() (e error) { cfg.Debug, e = fl.GetBool("debug"); return })
	set("assets", func() (e error) { cfg.Assets, e = fl.GetString("assets"); return })
	set("headless", func() (e error) { cfg.Headless.Enabled, e = fl.GetBool("headless"); return })
	set("hz", func() (e error) { cfg.Headless.Hz, e = fl.GetInt("hz"); return })
	set("ticks", func() (e error) { cfg.Headless.Ticks, e = fl.GetUint64("ticks"); return })
	set("snapshot", func() (e error) { cfg.Headless.Snapshot, e = fl.GetString("snapshot"); return })
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	opts := app.Options{Config: cfg, Logger: log}
	if cfg.Debug {
		opts.DebugInput, opts.DebugOutput = os.Stdin, os.Stdout
	}
	newApp := app.New(ctx, opts)

	if cfg.Headless.Enabled {
		log.Info("starting headless", zap.Int("hz", cfg.Headless.Hz), zap.Uint64("ticks", cfg.Headless.Ticks))
		err := hal.RunHeadless(ctx, hal.HeadlessConfig{
			Width:    cfg.Window.Width,
			Height:   cfg.Window.Height,
			Hz:       cfg.Headless.Hz,
			Ticks:    cfg.Headless.Ticks,
			Snapshot: cfg.Headless.Snapshot,
		}, newApp)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	log.Info("starting window", zap.String("version", buildinfo.Short()))
	return hal.RunWindow(hal.WindowConfig{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		TPS:    cfg.Window.TPS,
	}, newApp)
}
