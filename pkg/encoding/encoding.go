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

package encoding

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidHex = errors.New("Invalid hex string")

// Decodes a hexidecimal string in the formats: 0xFFF, 0XFFF
func DecodeHex(s string, bits int) (uint16, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return 0, ErrInvalidHex
	}

	result, err := strconv.ParseUint(s[2:], 16, bits)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}

// Decodes a bare hexidecimal byte with an optional prefix: 0x1F, 1F
func DecodeByte(s string) (uint8, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}

	result, err := strconv.ParseUint(s, 16, 8)

	if err != nil {
		return 0, err
	}

	return uint8(result), nil
}

// Decodes a numeral that is base-10 unless prefixed with 0x, limited to the
// given bit width
func DecodeNumber(s string, bits int) (uint16, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return DecodeHex(s, bits)
	}

	result, err := strconv.ParseUint(s, 10, bits)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}

// Word joins two bytes read from memory into a big-endian opcode
func Word(hi, lo uint8) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// SplitWord is the inverse of Word
func SplitWord(word uint16) (uint8, uint8) {
	return uint8(word >> 8), uint8(word & 0xFF)
}

// Class returns bits 12-15
func Class(word uint16) uint8 {
	return uint8(word >> 12)
}

// X returns bits 8-11
func X(word uint16) uint8 {
	return uint8((word >> 8) & 0xF)
}

// Y returns bits 4-7
func Y(word uint16) uint8 {
	return uint8((word >> 4) & 0xF)
}

// N returns bits 0-3
func N(word uint16) uint8 {
	return uint8(word & 0xF)
}

// NN returns bits 0-7
func NN(word uint16) uint8 {
	return uint8(word & 0xFF)
}

// NNN returns bits 0-11
func NNN(word uint16) uint16 {
	return word & 0xFFF
}
