//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	// Hz is the main loop rate.
	Hz int
	// Ticks stops the runner after this many loop ticks; zero runs until ctx ends.
	Ticks uint64
	// StepBudget is the number of firmware cycles per tick.
	StepBudget int
}

func DefaultHeadlessConfig() HeadlessConfig {
	return HeadlessConfig{Hz: 1000, StepBudget: 1}
}

// RunHeadless runs the firmware without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig, host HostConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = DefaultHeadlessConfig().Hz
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = 1
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h, err := newHostHAL(host)
	if err != nil {
		return err
	}
	defer h.close()
	r := newHostRunner(h, newApp)

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			for i := 0; i < cfg.StepBudget; i++ {
				if err := r.stepOnce(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

// runLoop boots the firmware once ready is closed and steps it at cfg.Hz
// until ctx ends.
func runLoop(ctx context.Context, h *hostHAL, newApp func(HAL) func() error, cfg HeadlessConfig, ready <-chan struct{}) error {
	if cfg.Hz <= 0 {
		cfg.Hz = DefaultHeadlessConfig().Hz
	}
	select {
	case <-ctx.Done():
		return nil
	case <-ready:
	}
	r := newHostRunner(h, newApp)

	t := time.NewTicker(time.Second / time.Duration(cfg.Hz))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if err := r.stepOnce(); err != nil {
				return err
			}
		}
	}
}
