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


package config_test

import (
	"testing"

	"github.com/lassandro/gochip8/pkg/config"
	"github.com/lassandro/gochip8/pkg/driver"
	"github.com/retroenv/retrogolib/assert"
)

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, config.CreateLogger(false, false))
	assert.NotNil(t, config.CreateLogger(true, false))
	assert.NotNil(t, config.CreateLogger(false, true))
}

func TestParseBreakpoints(t *testing.T) {
	tests := []struct {
		Name   string
		Input  string
		Output []uint16
		Error  bool
	}{
		{"Empty", "", nil, false},
		{"Single", "0x200", []uint16{0x200}, false},
		{"List", "0x200, 0x2A4,0xFFF", []uint16{0x200, 0x2A4, 0xFFF}, false},
		{"Trailing Comma", "0x300,", []uint16{0x300}, false},
		{"Decimal", "512", nil, true},
		{"Too Wide", "0x1000", nil, true},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			result, err := config.ParseBreakpoints(test.Input)

			if test.Error {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, test.Output, result)
		})
	}
}

func TestValidate(t *testing.T) {
	opts := config.DefaultOptions()
	assert.Equal(t, driver.DEFAULT_SPEED, opts.Speed)
	assert.NoError(t, opts.Validate())

	opts.Speed = 0
	assert.ErrorContains(t, opts.Validate(), "speed")

	opts = config.DefaultOptions()
	opts.Scale = -1
	assert.ErrorContains(t, opts.Validate(), "scale")

	opts = config.DefaultOptions()
	opts.Debug, opts.Quiet = true, true
	assert.Error(t, opts.Validate())
}
