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

// Package instruction defines the CHIP-8 instruction set and its binary and
// textual forms.
package instruction

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lassandro/gochip8/pkg/encoding"
)

// Nop is the zero instruction, also produced for undefined opcodes
var Nop = Instruction{}

var decodeTable [1 << 16]Op

func init() {
	for word := range decodeTable {
		decodeTable[word] = opUnknown

		for op, info := range opcodes {
			if uint16(word)&info.Mask == info.Base {
				decodeTable[word] = Op(op)
				break
			}
		}
	}
}

func (op Op) Valid() bool {
	return op < OP_COUNT
}

func (op Op) Keyword() string {
	if !op.Valid() {
		return ""
	}

	return opcodes[op].Keyword
}

func (op Op) Shape() Shape {
	if !op.Valid() {
		return SHAPE_NONE
	}

	return opcodes[op].Shape
}

// Encode packs an instruction into its 16-bit opcode. Fields outside the
// op's shape are ignored.
func Encode(in Instruction) uint16 {
	if !in.Op.Valid() {
		return 0
	}

	info := &opcodes[in.Op]
	word := info.Base

	switch info.Shape {
	case SHAPE_NNN:
		word |= in.NNN & 0xFFF
	case SHAPE_XNN:
		word |= uint16(in.X&0xF)<<8 | uint16(in.NN)
	case SHAPE_XY:
		word |= uint16(in.X&0xF)<<8 | uint16(in.Y&0xF)<<4
	case SHAPE_X:
		word |= uint16(in.X&0xF) << 8
	case SHAPE_XYN:
		word |= uint16(in.X&0xF)<<8 | uint16(in.Y&0xF)<<4 | uint16(in.N&0xF)
	}

	return word
}

// Decode unpacks an opcode. Undefined patterns decode to Nop.
func Decode(word uint16) Instruction {
	in, _ := DecodeStrict(word)
	return in
}

// DecodeStrict is Decode but reports undefined patterns
func DecodeStrict(word uint16) (Instruction, error) {
	op := decodeTable[word]

	if op == opUnknown {
		return Nop, &UnknownOpcodeError{word}
	}

	in := Instruction{Op: op}

	switch opcodes[op].Shape {
	case SHAPE_NNN:
		in.NNN = encoding.NNN(word)
	case SHAPE_XNN:
		in.X = encoding.X(word)
		in.NN = encoding.NN(word)
	case SHAPE_XY:
		in.X = encoding.X(word)
		in.Y = encoding.Y(word)
	case SHAPE_X:
		in.X = encoding.X(word)
	case SHAPE_XYN:
		in.X = encoding.X(word)
		in.Y = encoding.Y(word)
		in.N = encoding.N(word)
	}

	return in, nil
}

func (in Instruction) String() string {
	if !in.Op.Valid() {
		return fmt.Sprintf("<invalid op %d>", in.Op)
	}

	info := &opcodes[in.Op]
	parts := make([]string, 0, len(info.Syntax)+1)
	parts = append(parts, strings.ToUpper(info.Keyword))

	for _, arg := range info.Syntax {
		switch arg {
		case argVX:
			parts = append(parts, fmt.Sprintf("V%X", in.X))
		case argVY:
			parts = append(parts, fmt.Sprintf("V%X", in.Y))
		case argN:
			parts = append(parts, strconv.Itoa(int(in.N)))
		case argNN:
			parts = append(parts, strconv.Itoa(int(in.NN)))
		case argNNN:
			parts = append(parts, fmt.Sprintf("0x%03X", in.NNN))
		default:
			parts = append(parts, strings.ToUpper(arg))
		}
	}

	return strings.Join(parts, " ")
}
