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

package instruction

import "fmt"

type Op uint8
type Shape uint8

// Instruction is one decoded CHIP-8 operation. Only the fields named by the
// op's shape carry meaning, the rest stay zero.
type Instruction struct {
	Op  Op
	X   uint8
	Y   uint8
	N   uint8
	NN  uint8
	NNN uint16
}

type opcodeInfo struct {
	Base    uint16
	Mask    uint16
	Shape   Shape
	Keyword string
	Syntax  []string
}

type ParseError struct {
	Mnemonic string
	Message  string
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("%s: '%s'", err.Message, err.Mnemonic)
}

type UnknownOpcodeError struct {
	Word uint16
}

func (err *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("Unknown opcode %#04x", err.Word)
}
