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
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/lassandro/gochip8/pkg/encoding"
	"github.com/lassandro/gochip8/pkg/instruction"
)

func isIdentChar(char rune) bool {
	if char > unicode.MaxASCII {
		return false
	}

	return unicode.IsLetter(char) || unicode.IsDigit(char) ||
		char == '_' || char == '[' || char == ']'
}

// A label name starts with a letter or underscore, so it can never be
// mistaken for a numeric address.
func isLabel(ident string) bool {
	for i, char := range ident {
		switch {
		case char > unicode.MaxASCII:
			return false
		case char == '_' || unicode.IsLetter(char):
		case unicode.IsDigit(char) && i > 0:
		default:
			return false
		}
	}

	return len(ident) > 0
}

// Splits one source line into tokens. Commas count as whitespace and a
// semicolon ends the statement.
func scanLine(line string, cursor Cursor) ([]Token, []error) {
	var tokens []Token
	var errs []error
	var builder strings.Builder
	var tokenStart int

	flush := func(tokenType TokenType) {
		if builder.Len() == 0 {
			return
		}

		tokens = append(tokens, Token{
			Type: tokenType,
			Position: Cursor{
				Line:     cursor.Line,
				Column:   tokenStart + 1,
				Byte:     cursor.LineByte + int64(tokenStart),
				Size:     int64(builder.Len()),
				LineByte: cursor.LineByte,
			},
			Value: builder.String(),
		})

		builder.Reset()
	}

	for column, char := range line {
		cursor.Column = column + 1
		cursor.Byte = cursor.LineByte + int64(column)

		switch {
		// Operand Separator
		case unicode.IsSpace(char) || char == ',':
			flush(TOKEN_IDENT)

		// Statement Terminator
		case char == ';':
			flush(TOKEN_IDENT)
			return tokens, errs

		// Label Declaration
		case char == ':':
			if len(tokens) > 0 || !isLabel(builder.String()) {
				errs = append(errs, &UnexpectedCharacterError{cursor, char})
				builder.Reset()
				continue
			}

			flush(TOKEN_LABEL)

		case isIdentChar(char):
			if builder.Len() == 0 {
				tokenStart = column
			}

			builder.WriteRune(char)

		default:
			errs = append(errs, &UnexpectedCharacterError{cursor, char})
		}
	}

	flush(TOKEN_IDENT)

	return tokens, errs
}

func (prog *Program) append(line Line, reference string, position Cursor) {
	prog.Lines = append(prog.Lines, line)
	prog.References = append(prog.References, reference)
	prog.Positions = append(prog.Positions, position)
}

func (prog *Program) parseStatement(tokens []Token) (errs []error) {
	if len(tokens) == 0 {
		return nil
	}

	if label := tokens[0]; label.Type == TOKEN_LABEL {
		if _, exists := prog.Labels[label.Value]; exists {
			errs = append(
				errs, &RedeclaredLabelError{label.Position, label.Value},
			)
		} else {
			prog.Labels[label.Value] = len(prog.Lines)
		}

		// No need to assemble label-only statements
		if tokens = tokens[1:]; len(tokens) == 0 {
			return errs
		}
	}

	keyword := tokens[0]
	operands := tokens[1:]

	switch strings.ToLower(keyword.Value) {
	// bytes 0xF0 0x90 ...
	case KEYWORD_BYTES:
		if len(operands) == 0 {
			return append(
				errs, &InvalidNumArgumentsError{keyword.Position, 1, 0},
			)
		}

		data := make([]byte, 0, len(operands))

		for _, operand := range operands {
			value, err := encoding.DecodeByte(operand.Value)

			if err != nil {
				errs = append(
					errs,
					&InvalidLiteralError{operand.Position, operand.Value},
				)

				continue
			}

			data = append(data, value)
		}

		if len(data) == len(operands) {
			prog.append(Line{Data: data}, "", keyword.Position)
		}

		return errs

	// jp label, call label
	case "jp", "call":
		if len(operands) == 1 && isLabel(operands[0].Value) {
			op := instruction.OP_JP
			if strings.EqualFold(keyword.Value, "call") {
				op = instruction.OP_CALL
			}

			prog.append(
				Line{Instruction: instruction.Instruction{Op: op}},
				operands[0].Value,
				keyword.Position,
			)

			return errs
		}
	}

	values := make([]string, 0, len(tokens))
	for _, token := range tokens {
		values = append(values, token.Value)
	}

	text := strings.Join(values, " ")
	in, err := instruction.Parse(text)

	if err != nil {
		return append(errs, &LineError{keyword.Position, text, err})
	}

	prog.append(Line{Instruction: in}, "", keyword.Position)

	return errs
}

// Parse is the first pass. Label operands are left at address 0 and recorded
// in References for FixReferences to resolve.
func Parse(input io.Reader) (*Program, []error) {
	var errs []error

	prog := &Program{Labels: make(map[string]int)}
	scanner := bufio.NewScanner(input)
	cursor := Cursor{Line: 1}

	for scanner.Scan() {
		line := scanner.Text()
		cursor.Size = int64(len(line))

		tokens, lineErrs := scanLine(line, cursor)

		// Pass any potential assembler errors if we already had parser errors
		if len(lineErrs) > 0 {
			errs = append(errs, lineErrs...)
		} else {
			errs = append(errs, prog.parseStatement(tokens)...)
		}

		cursor.Line++
		cursor.Byte += int64(len(line) + 1)
		cursor.LineByte += int64(len(line) + 1)
	}

	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}

	return prog, errs
}

// Byte address of every line, plus one past the end
func (prog *Program) addresses() []int {
	result := make([]int, len(prog.Lines)+1)
	result[0] = LOAD_ADDRESS

	for i := range prog.Lines {
		result[i+1] = result[i] + prog.Lines[i].Size()
	}

	return result
}

// Address returns the load address of the line at index. An index equal to
// len(Lines) gives the address just past the program.
func (prog *Program) Address(index int) uint16 {
	return uint16(prog.addresses()[index])
}

// FixReferences is the second pass, pointing every JP and CALL that names a
// label at the label's byte address.
func (prog *Program) FixReferences() (errs []error) {
	addresses := prog.addresses()

	for i, label := range prog.References {
		if label == "" {
			continue
		}

		position := prog.Positions[i]
		target, exists := prog.Labels[label]

		if !exists {
			errs = append(errs, &UnknownLabelError{position, label})
			continue
		}

		addr := addresses[target]

		if addr > MAX_ADDRESS {
			errs = append(
				errs, &OversizedAddressError{position, label, addr},
			)

			continue
		}

		line := &prog.Lines[i]

		switch line.Instruction.Op {
		case instruction.OP_JP, instruction.OP_CALL:
			line.Instruction.NNN = uint16(addr)
		default:
			panic(fmt.Sprintf(
				"label reference '%s' on line %d which is not JP or CALL",
				label,
				position.Line,
			))
		}
	}

	return errs
}

// Compile emits big-endian opcodes and data blocks in program order
func (prog *Program) Compile() []byte {
	result := make([]byte, 0, prog.addresses()[len(prog.Lines)]-LOAD_ADDRESS)

	for i := range prog.Lines {
		line := &prog.Lines[i]

		if line.IsData() {
			result = append(result, line.Data...)
			continue
		}

		hi, lo := encoding.SplitWord(instruction.Encode(line.Instruction))
		result = append(result, hi, lo)
	}

	return result
}

// Assemble runs both passes and emits the binary. When symtable is set it
// receives the source offset of every line and the address of every label.
func Assemble(input io.Reader, symtable *SymTable) ([]byte, []error) {
	prog, errs := Parse(input)

	if len(errs) > 0 {
		return nil, errs
	}

	if errs = prog.FixReferences(); len(errs) > 0 {
		return nil, errs
	}

	result := prog.Compile()

	if len(result) > MAX_BINARY_SIZE {
		return nil, []error{&OversizedBinaryError{len(result)}}
	}

	if symtable != nil {
		if symtable.Symbols == nil {
			symtable.Symbols = make(map[uint16]int64)
		}

		if symtable.Labels == nil {
			symtable.Labels = make(map[uint16]string)
		}

		addresses := prog.addresses()

		for i, position := range prog.Positions {
			symtable.Symbols[uint16(addresses[i])] = position.LineByte
		}

		for label, index := range prog.Labels {
			symtable.Labels[uint16(addresses[index])] = label
		}
	}

	return result, nil
}
