//go:build !tinygo

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"manageaudio/app"
	"manageaudio/hal"
	"manageaudio/internal/buildinfo"
	"manageaudio/internal/config"
)

type options struct {
	configPath string
	headless   bool
	ticks      uint64
	hz         int
	wav        string
	flash      string
	demo       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o options
	root := &cobra.Command{
		Use:     "manageaudio",
		Short:   "Car-audio source selector simulator",
		Version: buildinfo.Short(),
		Long: `Run the source selector firmware against a simulated board.

Arrow keys drive the up and down buttons, Enter is select, Escape quits.
Hold Enter while the window opens to start on the debug page.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, o)
		},
	}
	f := root.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "config file path (default $XDG_CONFIG_HOME/manageaudio/config.toml)")

	rf := root.Flags()
	rf.BoolVar(&o.headless, "headless", false, "run without a window")
	rf.Uint64Var(&o.ticks, "ticks", 0, "stop after N loop ticks in headless mode (0 = run forever)")
	rf.IntVar(&o.hz, "hz", 0, "main loop rate")
	rf.StringVar(&o.wav, "wav", "", "loop a WAV file into the analog inputs")
	rf.StringVar(&o.flash, "flash", "", "settings flash image path")
	rf.BoolVar(&o.demo, "demo", false, "press the down button every few seconds")

	root.AddCommand(newConfigCmd(&o))
	return root
}

func loadConfig(o options) (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFrom(o.configPath)
	}
	return config.Load()
}

func run(cmd *cobra.Command, o options) error {
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("hz") {
		cfg.Loop.Hz = o.hz
	}
	if flags.Changed("wav") {
		cfg.Audio.WAV = o.wav
	}
	if flags.Changed("flash") {
		cfg.Flash.Path = o.flash
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	host := cfg.Host()
	host.Demo = o.demo
	loop := cfg.LoopConfig()
	loop.Ticks = o.ticks
	newApp := func(h hal.HAL) func() error {
		return app.New(h, cfg.App())
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	log.Info("starting", "version", buildinfo.Short(), "headless", o.headless,
		"wav", cfg.Audio.WAV, "flash", cfg.Flash.Path)

	if o.headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunHeadless(ctx, newApp, loop, host)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	} else {
		err = hal.RunWindow(newApp, loop, host)
	}
	if err != nil {
		log.Error("stopped", "err", err)
		return err
	}
	log.Info("stopped")
	return nil
}

func newConfigCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*o)
			if err != nil {
				return err
			}
			data, err := cfg.Encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
