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

const (
	OP_NOP Op = iota
	OP_CLS
	OP_RET
	OP_JP
	OP_CALL
	OP_SE_IMM
	OP_SNE_IMM
	OP_SE_REG
	OP_LD_IMM
	OP_ADD_IMM
	OP_LD_REG
	OP_OR
	OP_AND
	OP_XOR
	OP_ADD_REG
	OP_SUB
	OP_SHR
	OP_SUBN
	OP_SHL
	OP_SNE_REG
	OP_LD_I
	OP_JP_V0
	OP_RND
	OP_DRW
	OP_SKP
	OP_SKNP
	OP_LD_DT_GET
	OP_LD_KEY
	OP_LD_DT_SET
	OP_LD_ST
	OP_ADD_I
	OP_LD_F
	OP_LD_B
	OP_LD_STORE
	OP_LD_LOAD

	// Number of defined operations, not an operation itself
	OP_COUNT
)

const opUnknown Op = 0xFF

const (
	SHAPE_NONE Shape = iota // ----
	SHAPE_NNN               // -NNN
	SHAPE_XNN               // -XNN
	SHAPE_XY                // -XY-
	SHAPE_X                 // -X--
	SHAPE_XYN               // -XYN
)

// Operand syntax tokens. Anything else in a syntax list is a literal keyword
// that must appear verbatim.
const (
	argVX  = "vx"
	argVY  = "vy"
	argN   = "n"
	argNN  = "nn"
	argNNN = "nnn"
)

// opcodes is the single source of truth for the instruction set. Encoding,
// decoding, printing and parsing are all derived from it.
var opcodes = [OP_COUNT]opcodeInfo{
	// NOP  |0000                | No operation
	OP_NOP: {0x0000, 0xFFFF, SHAPE_NONE, "nop", nil},
	// CLS  |00E0                | Clear display
	OP_CLS: {0x00E0, 0xFFFF, SHAPE_NONE, "cls", nil},
	// RET  |00EE                | Return from subroutine
	OP_RET: {0x00EE, 0xFFFF, SHAPE_NONE, "ret", nil},
	// JP   |1   |NNN           | Jump
	OP_JP: {0x1000, 0xF000, SHAPE_NNN, "jp", []string{argNNN}},
	// CALL |2   |NNN           | Call subroutine
	OP_CALL: {0x2000, 0xF000, SHAPE_NNN, "call", []string{argNNN}},
	// SE   |3   |X   |NN       | Skip if Vx == NN
	OP_SE_IMM: {0x3000, 0xF000, SHAPE_XNN, "se", []string{argVX, argNN}},
	// SNE  |4   |X   |NN       | Skip if Vx != NN
	OP_SNE_IMM: {0x4000, 0xF000, SHAPE_XNN, "sne", []string{argVX, argNN}},
	// SE   |5   |X   |Y   |0   | Skip if Vx == Vy
	OP_SE_REG: {0x5000, 0xF00F, SHAPE_XY, "se", []string{argVX, argVY}},
	// LD   |6   |X   |NN       | Vx = NN
	OP_LD_IMM: {0x6000, 0xF000, SHAPE_XNN, "ld", []string{argVX, argNN}},
	// ADD  |7   |X   |NN       | Vx += NN, no carry
	OP_ADD_IMM: {0x7000, 0xF000, SHAPE_XNN, "add", []string{argVX, argNN}},
	// LD   |8   |X   |Y   |0   | Vx = Vy
	OP_LD_REG: {0x8000, 0xF00F, SHAPE_XY, "ld", []string{argVX, argVY}},
	// OR   |8   |X   |Y   |1   | Vx |= Vy
	OP_OR: {0x8001, 0xF00F, SHAPE_XY, "or", []string{argVX, argVY}},
	// AND  |8   |X   |Y   |2   | Vx &= Vy
	OP_AND: {0x8002, 0xF00F, SHAPE_XY, "and", []string{argVX, argVY}},
	// XOR  |8   |X   |Y   |3   | Vx ^= Vy
	OP_XOR: {0x8003, 0xF00F, SHAPE_XY, "xor", []string{argVX, argVY}},
	// ADD  |8   |X   |Y   |4   | Vx += Vy, VF = carry
	OP_ADD_REG: {0x8004, 0xF00F, SHAPE_XY, "add", []string{argVX, argVY}},
	// SUB  |8   |X   |Y   |5   | Vx -= Vy, VF = no borrow
	OP_SUB: {0x8005, 0xF00F, SHAPE_XY, "sub", []string{argVX, argVY}},
	// SHR  |8   |X   |-   |6   | Vx >>= 1, VF = bit 0
	OP_SHR: {0x8006, 0xF00F, SHAPE_X, "shr", []string{argVX}},
	// SUBN |8   |X   |Y   |7   | Vx = Vy - Vx, VF = no borrow
	OP_SUBN: {0x8007, 0xF00F, SHAPE_XY, "subn", []string{argVX, argVY}},
	// SHL  |8   |X   |-   |E   | Vx <<= 1, VF = bit 7
	OP_SHL: {0x800E, 0xF00F, SHAPE_X, "shl", []string{argVX}},
	// SNE  |9   |X   |Y   |0   | Skip if Vx != Vy
	OP_SNE_REG: {0x9000, 0xF00F, SHAPE_XY, "sne", []string{argVX, argVY}},
	// LD   |A   |NNN           | I = NNN
	OP_LD_I: {0xA000, 0xF000, SHAPE_NNN, "ld", []string{"i", argNNN}},
	// JP   |B   |NNN           | Jump to V0 + NNN
	OP_JP_V0: {0xB000, 0xF000, SHAPE_NNN, "jp", []string{"v0", argNNN}},
	// RND  |C   |X   |NN       | Vx = random & NN
	OP_RND: {0xC000, 0xF000, SHAPE_XNN, "rnd", []string{argVX, argNN}},
	// DRW  |D   |X   |Y   |N   | Draw N rows at (Vx, Vy), VF = collision
	OP_DRW: {0xD000, 0xF000, SHAPE_XYN, "drw", []string{argVX, argVY, argN}},
	// SKP  |E   |X   |9E       | Skip if key Vx pressed
	OP_SKP: {0xE09E, 0xF0FF, SHAPE_X, "skp", []string{argVX}},
	// SKNP |E   |X   |A1       | Skip if key Vx not pressed
	OP_SKNP: {0xE0A1, 0xF0FF, SHAPE_X, "sknp", []string{argVX}},
	// LD   |F   |X   |07       | Vx = DT
	OP_LD_DT_GET: {0xF007, 0xF0FF, SHAPE_X, "ld", []string{argVX, "dt"}},
	// LD   |F   |X   |0A       | Wait for key, Vx = key
	OP_LD_KEY: {0xF00A, 0xF0FF, SHAPE_X, "ld", []string{argVX, "k"}},
	// LD   |F   |X   |15       | DT = Vx
	OP_LD_DT_SET: {0xF015, 0xF0FF, SHAPE_X, "ld", []string{"dt", argVX}},
	// LD   |F   |X   |18       | ST = Vx
	OP_LD_ST: {0xF018, 0xF0FF, SHAPE_X, "ld", []string{"st", argVX}},
	// ADD  |F   |X   |1E       | I += Vx
	OP_ADD_I: {0xF01E, 0xF0FF, SHAPE_X, "add", []string{"i", argVX}},
	// LD   |F   |X   |29       | I = glyph address of Vx
	OP_LD_F: {0xF029, 0xF0FF, SHAPE_X, "ld", []string{"f", argVX}},
	// LD   |F   |X   |33       | [I..I+2] = BCD(Vx)
	OP_LD_B: {0xF033, 0xF0FF, SHAPE_X, "ld", []string{"b", argVX}},
	// LD   |F   |X   |55       | [I..I+X] = V0..Vx
	OP_LD_STORE: {0xF055, 0xF0FF, SHAPE_X, "ld", []string{"[i]", argVX}},
	// LD   |F   |X   |65       | V0..Vx = [I..I+X]
	OP_LD_LOAD: {0xF065, 0xF0FF, SHAPE_X, "ld", []string{argVX, "[i]"}},
}
