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

package disassembler_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lassandro/gochip8/pkg/assembler"
	"github.com/lassandro/gochip8/pkg/disassembler"
	"github.com/retroenv/retrogolib/assert"
)

type testCase struct {
	Name   string
	Input  []byte
	Output string
}

func TestDisassemble(t *testing.T) {
	tests := []testCase{
		{
			Name:   "Empty",
			Input:  []byte{},
			Output: "",
		},
		{
			Name:   "Instructions",
			Input:  []byte{0x00, 0xE0, 0x6A, 0x2A, 0xD0, 0x15, 0x12, 0x00},
			Output: "CLS;\nLD VA 42;\nDRW V0 V1 5;\nJP 0x200",
		},
		{
			Name:   "Stops At Zero Word",
			Input:  []byte{0x00, 0xEE, 0x00, 0x00, 0x00, 0xE0},
			Output: "RET",
		},
		{
			Name:   "Unknown Word",
			Input:  []byte{0x01, 0x23, 0xF3, 0x0A},
			Output: "bytes 0x01 0x23;\nLD V3 K",
		},
		{
			Name:   "Shift With Y Operand",
			Input:  []byte{0x81, 0x26, 0x83, 0x4E, 0x81, 0x06},
			Output: "bytes 0x81 0x26;\nbytes 0x83 0x4E;\nSHR V1",
		},
		{
			Name:   "Trailing Byte",
			Input:  []byte{0x00, 0xE0, 0xAB},
			Output: "CLS;\nbytes 0xAB",
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			entries, err := disassembler.Disassemble(bytes.NewReader(test.Input))
			assert.NoError(t, err)
			assert.Equal(t, test.Output, disassembler.Format(entries))
		})
	}
}

func TestEntryAddresses(t *testing.T) {
	entries, err := disassembler.Disassemble(
		bytes.NewReader([]byte{0x00, 0xE0, 0x01, 0x23, 0x12, 0x00}),
	)

	assert.NoError(t, err)
	assert.Len(t, entries, 3)

	for i, entry := range entries {
		assert.Equal(t, uint16(0x200+i*2), entry.Address)
	}

	assert.False(t, entries[0].IsData())
	assert.True(t, entries[1].IsData())
	assert.Equal(t, uint16(0x0123), entries[1].Word)
}

func TestReassemble(t *testing.T) {
	source := `start:
	ld v0 1
	ld i 0x212
	loop:
	drw v0 v0 5
	add v0 1
	ld [i] v3
	ld v3 [i]
	se v0 10
	jp loop
	call start
	sprite:
	bytes 0x01 0x23 0xF0`

	binary, errs := assembler.Assemble(strings.NewReader(source), nil)
	assert.Empty(t, errs)

	entries, err := disassembler.Disassemble(bytes.NewReader(binary))
	assert.NoError(t, err)

	text := disassembler.Format(entries)

	again, errs := assembler.Assemble(strings.NewReader(text), nil)
	assert.Empty(t, errs)
	assert.Equal(t, binary, again)
}

func TestReassembleRawWords(t *testing.T) {
	tests := []struct {
		Name  string
		Input []byte
	}{
		{"Shift Y Operands", []byte{0x81, 0x26, 0x83, 0x4E}},
		{"Sprite Data", []byte{0xF0, 0x90, 0x81, 0x26, 0xF0, 0x10}},
		{"Unknown Words", []byte{0x01, 0x23, 0x5A, 0xB1, 0xE1, 0x00}},
		{"Odd Length", []byte{0x83, 0x4E, 0xAB}},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			entries, err := disassembler.Disassemble(bytes.NewReader(test.Input))
			assert.NoError(t, err)

			for _, text := range []string{
				disassembler.Format(entries),
				disassembler.Annotate(entries),
			} {
				binary, errs := assembler.Assemble(strings.NewReader(text), nil)
				assert.Empty(t, errs)
				assert.Equal(t, test.Input, binary)
			}
		})
	}
}

func TestAnnotate(t *testing.T) {
	entries, err := disassembler.Disassemble(
		bytes.NewReader([]byte{0x00, 0xE0, 0x01, 0x23, 0xAB}),
	)
	assert.NoError(t, err)

	text := disassembler.Annotate(entries)
	lines := strings.Split(text, "\n")

	assert.Len(t, lines, 3)
	assert.Equal(t, "CLS                 ; [0x0200] 00E0", lines[0])
	assert.Equal(t, "bytes 0x01 0x23     ; [0x0202] 0123", lines[1])
	assert.Equal(t, "bytes 0xAB          ; [0x0204] AB", lines[2])

	binary, errs := assembler.Assemble(strings.NewReader(text), nil)
	assert.Empty(t, errs)
	assert.Equal(t, []byte{0x00, 0xE0, 0x01, 0x23, 0xAB}, binary)
}
