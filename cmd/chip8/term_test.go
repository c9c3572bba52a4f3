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

package main

import (
	"testing"

	"github.com/lassandro/gochip8/pkg/driver"
	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/retroenv/retrogolib/assert"
)

func TestTerminalScan(t *testing.T) {
	tests := []struct {
		Name   string
		Input  []byte
		Inputs []driver.Input
		Held   []uint8
	}{
		{
			Name:  "Arrow Key",
			Input: []byte{ASCII_ESC, '[', 'A'},
		},
		{
			Name:  "Function Key",
			Input: []byte{ASCII_ESC, '[', '1', '5', '~'},
		},
		{
			Name:  "Application Arrow Key",
			Input: []byte{ASCII_ESC, 'O', 'D'},
		},
		{
			Name:  "Alt Key",
			Input: []byte{ASCII_ESC, 'w'},
		},
		{
			Name:   "Lone Escape",
			Input:  []byte{ASCII_ESC},
			Inputs: []driver.Input{{Kind: driver.InputQuit}},
		},
		{
			Name:  "Arrow Then Key",
			Input: []byte{ASCII_ESC, '[', 'A', 's'},
			Held:  []uint8{0x8},
		},
		{
			Name:  "Keys",
			Input: []byte{'1', 'V'},
			Held:  []uint8{0x1, 0xF},
		},
		{
			Name:  "Controls",
			Input: []byte{'p', 'n', ' ', ASCII_ETX},
			Inputs: []driver.Input{
				{Kind: driver.InputPause},
				{Kind: driver.InputStep},
				{Kind: driver.InputPause},
				{Kind: driver.InputQuit},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			tf := terminalFrontend{}
			inputs := tf.scan(test.Input, nil)

			assert.Equal(t, test.Inputs, inputs)

			var held [machine.KEY_COUNT]int
			for _, key := range test.Held {
				held[key] = KEY_HOLD_FRAMES
			}

			assert.Equal(t, held, tf.held)
		})
	}
}

func TestEscapeLength(t *testing.T) {
	assert.Equal(t, 1, escapeLength([]byte{ASCII_ESC}))
	assert.Equal(t, 3, escapeLength([]byte{ASCII_ESC, '[', 'B', 'x'}))
	assert.Equal(t, 3, escapeLength([]byte{ASCII_ESC, '[', '1'}))
	assert.Equal(t, 3, escapeLength([]byte{ASCII_ESC, 'O', 'P', 'x'}))
	assert.Equal(t, 2, escapeLength([]byte{ASCII_ESC, 'x', 'y'}))
}
