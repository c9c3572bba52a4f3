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

package machine

import (
	"fmt"
	"math/rand"

	"github.com/retroenv/retrogolib/log"
)

type MachineState struct {
	Memory    [MEMORY_SIZE]byte
	Display   [DISPLAY_HEIGHT][DISPLAY_WIDTH]bool
	Registers [REGISTER_COUNT]uint8
	Index     uint16
	Program   uint16
	Delay     uint8
	Sound     uint8

	// Return addresses, kept outside of addressable memory
	Stack []uint16

	Keys [KEY_COUNT]bool

	// Set by LD Vx, K. Execution halts until a key is pressed and stored in
	// KeyRegister.
	KeyWait     bool
	KeyRegister uint8
}

type MachineDebugger interface {
	Step(mc *Machine)
	Read(addr uint16, mc *Machine)
	Write(addr uint16, mc *Machine)
}

type Machine struct {
	State    MachineState
	Debugger MachineDebugger

	// Source for RND, the global source is used when nil
	Rand *rand.Rand

	Logger *log.Logger
}

type OversizedROMError struct {
	Limit int
}

func (err *OversizedROMError) Error() string {
	return fmt.Sprintf("ROM exceeds %d bytes", err.Limit)
}

type StackUnderflowError struct {
	Program uint16
}

func (err *StackUnderflowError) Error() string {
	return fmt.Sprintf("%#04x: Return with empty call stack", err.Program)
}

type StackOverflowError struct {
	Program uint16
	Depth   int
}

func (err *StackOverflowError) Error() string {
	return fmt.Sprintf(
		"%#04x: Call stack exceeds %d entries", err.Program, err.Depth,
	)
}
