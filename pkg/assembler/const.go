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

const (
	TOKEN_NONE TokenType = iota
	TOKEN_IDENT
	TOKEN_LABEL
)

const (
	INSTRUCTION_SIZE = 2
	LOAD_ADDRESS     = 0x200
	MAX_ADDRESS      = 0xFFF
	MAX_BINARY_SIZE  = MAX_ADDRESS + 1 - LOAD_ADDRESS
)

// Pseudo-instruction for inline data
const KEYWORD_BYTES = "bytes"
