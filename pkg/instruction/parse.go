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

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lassandro/gochip8/pkg/encoding"
)

var specialOperands = map[string]bool{
	"i": true, "dt": true, "st": true, "k": true, "f": true, "b": true,
	"[i]": true,
}

// IsRegister reports whether a lower-case token has the shape of a register
// name. It does not validate the index.
func IsRegister(token string) bool {
	return len(token) >= 2 && token[0] == 'v'
}

// ParseRegister accepts v0-vf and v00-v15
func ParseRegister(token string) (uint8, bool) {
	if !IsRegister(token) {
		return 0, false
	}

	digits := token[1:]

	var result uint64
	var err error

	if len(digits) == 1 {
		result, err = strconv.ParseUint(digits, 16, 4)
	} else if len(digits) == 2 {
		result, err = strconv.ParseUint(digits, 10, 8)
	} else {
		return 0, false
	}

	if err != nil || result > 0xF {
		return 0, false
	}

	return uint8(result), true
}

// Parse reads a mnemonic such as "ld v0, 0x1F". Keywords and operands are
// case-insensitive, commas count as whitespace and numerals are decimal
// unless prefixed with 0x.
func Parse(mnemonic string) (Instruction, error) {
	lower := strings.ToLower(strings.ReplaceAll(mnemonic, ",", " "))
	parts := strings.Fields(lower)

	if len(parts) == 0 {
		return Nop, &ParseError{mnemonic, "Missing keyword"}
	}

	keyword, operands := parts[0], parts[1:]

	var known bool
	var arity bool

	for op := range opcodes {
		info := &opcodes[op]

		if info.Keyword != keyword {
			continue
		}

		known = true

		if len(info.Syntax) != len(operands) {
			continue
		}

		arity = true

		if !matchSyntax(info.Syntax, operands) {
			continue
		}

		return parseOperands(mnemonic, Op(op), info.Syntax, operands)
	}

	if !known {
		return Nop, &ParseError{mnemonic, "Unknown instruction"}
	}

	if !arity {
		return Nop, &ParseError{
			mnemonic,
			fmt.Sprintf("Invalid number of operands (%d)", len(operands)),
		}
	}

	return Nop, &ParseError{mnemonic, "Invalid operands"}
}

// Operand shape check used to choose between ops sharing a keyword
func matchSyntax(syntax []string, operands []string) bool {
	for i, arg := range syntax {
		operand := operands[i]

		switch arg {
		case argVX, argVY, "v0":
			if !IsRegister(operand) {
				return false
			}
		case argN, argNN, argNNN:
			if IsRegister(operand) || specialOperands[operand] {
				return false
			}
		default:
			if operand != arg {
				return false
			}
		}
	}

	return true
}

func parseOperands(mnemonic string, op Op, syntax, operands []string) (Instruction, error) {
	in := Instruction{Op: op}

	for i, arg := range syntax {
		operand := operands[i]

		switch arg {
		case argVX, argVY, "v0":
			reg, ok := ParseRegister(operand)

			if !ok {
				return Nop, &ParseError{
					mnemonic,
					fmt.Sprintf("Invalid register '%s'", operand),
				}
			}

			if arg == argVX {
				in.X = reg
			} else if arg == argVY {
				in.Y = reg
			} else if reg != 0 {
				return Nop, &ParseError{
					mnemonic, "Offset register must be V0",
				}
			}

		case argN:
			value, err := parseNumber(mnemonic, operand, 4)
			if err != nil {
				return Nop, err
			}
			in.N = uint8(value)

		case argNN:
			value, err := parseNumber(mnemonic, operand, 8)
			if err != nil {
				return Nop, err
			}
			in.NN = uint8(value)

		case argNNN:
			value, err := parseNumber(mnemonic, operand, 12)
			if err != nil {
				return Nop, err
			}
			in.NNN = value
		}
	}

	return in, nil
}

func parseNumber(mnemonic, operand string, bits int) (uint16, error) {
	value, err := encoding.DecodeNumber(operand, bits)

	if err == nil {
		return value, nil
	}

	if errors.Is(err, strconv.ErrRange) {
		return 0, &ParseError{
			mnemonic,
			fmt.Sprintf("Value %s exceeds %d bits", operand, bits),
		}
	}

	return 0, &ParseError{
		mnemonic, fmt.Sprintf("Couldn't parse value %s", operand),
	}
}
