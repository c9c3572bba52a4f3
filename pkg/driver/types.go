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


package driver

import (
	"github.com/lassandro/gochip8/pkg/debugger"
	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/retroenv/retrogolib/log"
)

type InputKind uint8

type Input struct {
	Kind InputKind

	// CHIP-8 key 0x0-0xF, only meaningful for InputKey
	Key uint8
}

// Frontend is whatever presents the machine: a window, a terminal or a test
// double. Inputs drains everything queued since the previous frame.
type Frontend interface {
	Inputs() []Input
	Render(state *machine.MachineState) error
	Beep(on bool)
}

type Driver struct {
	Machine  *machine.Machine
	Frontend Frontend

	// Instructions per second, DEFAULT_SPEED when zero
	Speed int

	// Breakpoints pause the driver instead of entering a console
	Debugger *debugger.Debugger

	Logger *log.Logger
	Paused bool

	// Instruction budget carried between frames when Speed is not a
	// multiple of FRAME_RATE
	credit int
}
