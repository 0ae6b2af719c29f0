package config

import (
	"fmt"

	"github.com/modoterra/headless/pkg/logcapture"
)

// MaxFrameRate bounds frame_rate.
const MaxFrameRate = 1000

// Validate checks the configuration and returns every problem found.
func Validate(c *Config) []error {
	var errs []error

	if _, err := logcapture.ParseFilter(c.Log); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	if c.FrameRate <= 0 || c.FrameRate > MaxFrameRate {
		errs = append(errs, fmt.Errorf("frame_rate must be between 1 and %d, got %d", MaxFrameRate, c.FrameRate))
	}

	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}

	return errs
}
