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

package assembler

import (
	"fmt"

	"github.com/lassandro/gochip8/pkg/instruction"
)

type TokenType uint

type Cursor struct {
	Line     int
	Column   int
	Byte     int64
	Size     int64
	LineByte int64
}

type Token struct {
	Type     TokenType
	Position Cursor
	Value    string
}

// Line is either a single instruction or, when Data is set, a block of raw
// bytes emitted verbatim.
type Line struct {
	Instruction instruction.Instruction
	Data        []byte
}

func (line *Line) IsData() bool {
	return line.Data != nil
}

// Size is the number of bytes the line occupies in the binary
func (line *Line) Size() int {
	if line.IsData() {
		return len(line.Data)
	}

	return INSTRUCTION_SIZE
}

// Program is the result of the first pass. References is parallel to Lines
// and names the label a JP or CALL still has to be pointed at. Positions is
// parallel to Lines as well.
type Program struct {
	Lines      []Line
	Labels     map[string]int
	References []string
	Positions  []Cursor
}

type SymTable struct {
	Source  string
	Symbols map[uint16]int64
	Labels  map[uint16]string
}

type TokenError interface {
	GetPosition() Cursor
}

type LineError struct {
	Position Cursor
	Text     string
	Err      error
}

func (err *LineError) GetPosition() Cursor {
	return err.Position
}

func (err *LineError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: %v",
		err.Position.Line,
		err.Position.Column,
		err.Err,
	)
}

func (err *LineError) Unwrap() error {
	return err.Err
}

type InvalidNumArgumentsError struct {
	Position Cursor
	Required int
	Received int
}

func (err *InvalidNumArgumentsError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidNumArgumentsError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid number of arguments\n\twant:%d\n\thave:%v",
		err.Position.Line,
		err.Position.Column,
		err.Required,
		err.Received,
	)
}

type InvalidLiteralError struct {
	Position Cursor
	Received string
}

func (err *InvalidLiteralError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidLiteralError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid byte literal '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type UnexpectedCharacterError struct {
	Position Cursor
	Received rune
}

func (err *UnexpectedCharacterError) GetPosition() Cursor {
	return err.Position
}

func (err *UnexpectedCharacterError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unexpected character %c",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type RedeclaredLabelError struct {
	Position Cursor
	Received string
}

func (err *RedeclaredLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *RedeclaredLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Redeclaration of label '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type UnknownLabelError struct {
	Position Cursor
	Received string
}

func (err *UnknownLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown label '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type OversizedAddressError struct {
	Position Cursor
	Label    string
	Received int
}

func (err *OversizedAddressError) GetPosition() Cursor {
	return err.Position
}

func (err *OversizedAddressError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Label '%s' exceeds addressable memory\n\twant:%#03x\n\thave:%#04x",
		err.Position.Line,
		err.Position.Column,
		err.Label,
		MAX_ADDRESS,
		err.Received,
	)
}

type OversizedBinaryError struct {
	Received int
}

func (err *OversizedBinaryError) Error() string {
	return fmt.Sprintf(
		"Binary exceeds allowed size\n\twant:%d\n\thave:%d",
		MAX_BINARY_SIZE,
		err.Received,
	)
}
