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

package encoding_test

import (
	"testing"

	"github.com/lassandro/gochip8/pkg/encoding"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecodeNumber(t *testing.T) {
	tests := []struct {
		Name  string
		Input string
		Bits  int
		Want  uint16
		Fail  bool
	}{
		{Name: "Decimal", Input: "42", Bits: 8, Want: 42},
		{Name: "Hex", Input: "0x2A", Bits: 8, Want: 42},
		{Name: "Upper Hex Prefix", Input: "0XFFF", Bits: 12, Want: 0xFFF},
		{Name: "Decimal Oversized", Input: "256", Bits: 8, Fail: true},
		{Name: "Hex Oversized", Input: "0x1000", Bits: 12, Fail: true},
		{Name: "Negative", Input: "-1", Bits: 8, Fail: true},
		{Name: "Garbage", Input: "v0", Bits: 8, Fail: true},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			have, err := encoding.DecodeNumber(test.Input, test.Bits)

			if test.Fail {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, test.Want, have)
		})
	}
}

func TestDecodeByte(t *testing.T) {
	have, err := encoding.DecodeByte("0xF0")
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xF0), have)

	have, err = encoding.DecodeByte("90")
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x90), have)

	_, err = encoding.DecodeByte("0x100")
	assert.Error(t, err)
}

func TestDecodeHex(t *testing.T) {
	_, err := encoding.DecodeHex("123", 12)
	assert.Equal(t, encoding.ErrInvalidHex, err)
}

func TestFields(t *testing.T) {
	const word uint16 = 0xD12F

	assert.Equal(t, uint8(0xD), encoding.Class(word))
	assert.Equal(t, uint8(0x1), encoding.X(word))
	assert.Equal(t, uint8(0x2), encoding.Y(word))
	assert.Equal(t, uint8(0xF), encoding.N(word))
	assert.Equal(t, uint8(0x2F), encoding.NN(word))
	assert.Equal(t, uint16(0x12F), encoding.NNN(word))

	hi, lo := encoding.SplitWord(word)
	assert.Equal(t, word, encoding.Word(hi, lo))
}
