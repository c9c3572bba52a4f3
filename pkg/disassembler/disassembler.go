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

// Package disassembler turns CHIP-8 binaries back into source the assembler
// accepts.
package disassembler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lassandro/gochip8/pkg/encoding"
	"github.com/lassandro/gochip8/pkg/instruction"
)

const LOAD_ADDRESS uint16 = 0x200

// Separator placed between statements by Format
const SEPARATOR = ";\n"

type Entry struct {
	Address     uint16
	Word        uint16
	Instruction instruction.Instruction

	// Set for words that do not decode to themselves and for a trailing
	// odd byte
	Data []byte
}

func (entry *Entry) IsData() bool {
	return entry.Data != nil
}

func (entry *Entry) String() string {
	if !entry.IsData() {
		return entry.Instruction.String()
	}

	parts := make([]string, 0, len(entry.Data)+1)
	parts = append(parts, "bytes")

	for _, value := range entry.Data {
		parts = append(parts, fmt.Sprintf("0x%02X", value))
	}

	return strings.Join(parts, " ")
}

// Disassemble decodes words until the input is exhausted or a zero word is
// found. The zero word itself is not part of the result.
func Disassemble(input io.Reader) ([]Entry, error) {
	var entries []Entry
	var scratch [2]byte

	reader := bufio.NewReader(input)
	addr := LOAD_ADDRESS

	for {
		_, err := io.ReadFull(reader, scratch[:])

		if errors.Is(err, io.EOF) {
			return entries, nil
		} else if errors.Is(err, io.ErrUnexpectedEOF) {
			entries = append(entries, Entry{
				Address: addr,
				Word:    uint16(scratch[0]) << 8,
				Data:    []byte{scratch[0]},
			})

			return entries, nil
		} else if err != nil {
			return entries, err
		}

		word := encoding.Word(scratch[0], scratch[1])

		if word == 0 {
			return entries, nil
		}

		entry := Entry{Address: addr, Word: word}

		// Words that would not encode back to themselves, such as shifts
		// with a Y operand, are kept as data
		if in, err := instruction.DecodeStrict(word); err == nil &&
			instruction.Encode(in) == word {
			entry.Instruction = in
		} else {
			entry.Data = []byte{scratch[0], scratch[1]}
		}

		entries = append(entries, entry)
		addr += 2
	}
}

func Format(entries []Entry) string {
	lines := make([]string, 0, len(entries))

	for i := range entries {
		lines = append(lines, entries[i].String())
	}

	return strings.Join(lines, SEPARATOR)
}

// Annotate is Format with the address and raw word of each entry trailing
// as a comment. The result still assembles.
func Annotate(entries []Entry) string {
	lines := make([]string, 0, len(entries))

	for i := range entries {
		entry := &entries[i]

		raw := fmt.Sprintf("%04X", entry.Word)
		if len(entry.Data) == 1 {
			raw = fmt.Sprintf("%02X", entry.Data[0])
		}

		lines = append(lines, fmt.Sprintf(
			"%-20s; [%#04x] %s", entry.String(), entry.Address, raw,
		))
	}

	return strings.Join(lines, "\n")
}
