// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.


// Package config handles logger setup and the options shared by the
// command line tools.
package config

import (
	"fmt"
	"strings"

	"github.com/lassandro/gochip8/pkg/driver"
	"github.com/lassandro/gochip8/pkg/encoding"
	"github.com/retroenv/retrogolib/log"
)

const DEFAULT_SCALE = 10

type Options struct {
	// Instructions per second
	Speed int

	Debug bool
	Quiet bool

	// Render to the terminal instead of opening a window
	Headless bool

	// Window pixels per CHIP-8 pixel
	Scale int

	// Addresses that pause the emulator when reached
	Breakpoints []uint16
}

func DefaultOptions() Options {
	return Options{
		Speed: driver.DEFAULT_SPEED,
		Scale: DEFAULT_SCALE,
	}
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// ParseBreakpoints reads a comma separated list of addresses: 0x200,0x2A4
func ParseBreakpoints(s string) ([]uint16, error) {
	var result []uint16

	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)

		if field == "" {
			continue
		}

		addr, err := encoding.DecodeHex(field, 12)

		if err != nil {
			return nil, fmt.Errorf("invalid breakpoint '%s': %w", field, err)
		}

		result = append(result, addr)
	}

	return result, nil
}

func (opts *Options) Validate() error {
	if opts.Speed <= 0 {
		return fmt.Errorf("speed must be positive, have %d", opts.Speed)
	}

	if opts.Scale <= 0 {
		return fmt.Errorf("scale must be positive, have %d", opts.Scale)
	}

	if opts.Debug && opts.Quiet {
		return fmt.Errorf("debug and quiet are mutually exclusive")
	}

	return nil
}
