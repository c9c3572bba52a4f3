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

package machine

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/lassandro/gochip8/pkg/encoding"
	"github.com/lassandro/gochip8/pkg/instruction"
	"github.com/retroenv/retrogolib/log"
)

func (mc *MachineState) Reset() {
	stack := mc.Stack[:0]

	*mc = MachineState{}

	copy(mc.Memory[MEMSPACE_FONT:], Font[:])

	mc.Program = MEMSPACE_PROGRAM
	mc.Stack = stack
}

// Word returns the big-endian opcode stored at addr
func (mc *MachineState) Word(addr uint16) uint16 {
	return encoding.Word(
		mc.Memory[addr&ADDRESS_MASK], mc.Memory[(addr+1)&ADDRESS_MASK],
	)
}

func (mc *Machine) LoadROM(reader io.Reader) error {
	mc.State.Reset()

	rom, err := io.ReadAll(io.LimitReader(reader, int64(MAX_ROM_SIZE)+1))

	if err != nil {
		return err
	}

	if len(rom) > MAX_ROM_SIZE {
		return &OversizedROMError{MAX_ROM_SIZE}
	}

	copy(mc.State.Memory[MEMSPACE_PROGRAM:], rom)

	if mc.Logger != nil {
		mc.Logger.Debug("ROM loaded", log.Int("size", len(rom)))
	}

	return nil
}

func (mc *Machine) read(addr uint16) uint8 {
	addr &= ADDRESS_MASK

	if mc.Debugger != nil {
		mc.Debugger.Read(addr, mc)
	}

	return mc.State.Memory[addr]
}

func (mc *Machine) write(addr uint16, value uint8) {
	addr &= ADDRESS_MASK

	mc.State.Memory[addr] = value

	if mc.Debugger != nil {
		mc.Debugger.Write(addr, mc)
	}
}

func (mc *Machine) random() uint8 {
	if mc.Rand != nil {
		return uint8(mc.Rand.Intn(256))
	}

	return uint8(rand.Intn(256))
}

func (mc *Machine) draw(x, y, rows uint8) bool {
	var collided bool

	state := &mc.State

	for row := uint16(0); row < uint16(rows); row++ {
		sprite := mc.read(state.Index + row)
		py := (int(y) + int(row)) % DISPLAY_HEIGHT

		for bit := 0; bit < 8; bit++ {
			if sprite&(0x80>>bit) == 0 {
				continue
			}

			px := (int(x) + bit) % DISPLAY_WIDTH

			if state.Display[py][px] {
				collided = true
			}

			state.Display[py][px] = !state.Display[py][px]
		}
	}

	return collided
}

// Step executes the instruction at the program counter. Nothing happens while
// a key wait is pending.
func (mc *Machine) Step() error {
	state := &mc.State

	if state.KeyWait {
		return nil
	}

	pc := state.Program & ADDRESS_MASK
	word := state.Word(pc)

	in, err := instruction.DecodeStrict(word)

	if err != nil && mc.Logger != nil {
		mc.Logger.Debug(
			"Unknown opcode executed as NOP",
			log.String("program", fmt.Sprintf("%#04x", pc)),
			log.String("opcode", fmt.Sprintf("%#04x", word)),
		)
	}

	regs := &state.Registers
	advance := true

	switch in.Op {
	case instruction.OP_NOP:

	case instruction.OP_CLS:
		state.Display = [DISPLAY_HEIGHT][DISPLAY_WIDTH]bool{}

	case instruction.OP_RET:
		depth := len(state.Stack)

		if depth == 0 {
			return &StackUnderflowError{pc}
		}

		state.Program = state.Stack[depth-1]
		state.Stack = state.Stack[:depth-1]

	case instruction.OP_JP:
		state.Program = in.NNN
		advance = false

	case instruction.OP_CALL:
		if len(state.Stack) >= STACK_LIMIT {
			return &StackOverflowError{pc, STACK_LIMIT}
		}

		state.Stack = append(state.Stack, pc)
		state.Program = in.NNN
		advance = false

	case instruction.OP_SE_IMM:
		if regs[in.X] == in.NN {
			state.Program += 2
		}

	case instruction.OP_SNE_IMM:
		if regs[in.X] != in.NN {
			state.Program += 2
		}

	case instruction.OP_SE_REG:
		if regs[in.X] == regs[in.Y] {
			state.Program += 2
		}

	case instruction.OP_SNE_REG:
		if regs[in.X] != regs[in.Y] {
			state.Program += 2
		}

	case instruction.OP_LD_IMM:
		regs[in.X] = in.NN

	case instruction.OP_ADD_IMM:
		regs[in.X] += in.NN

	case instruction.OP_LD_REG:
		regs[in.X] = regs[in.Y]

	case instruction.OP_OR:
		regs[in.X] |= regs[in.Y]

	case instruction.OP_AND:
		regs[in.X] &= regs[in.Y]

	case instruction.OP_XOR:
		regs[in.X] ^= regs[in.Y]

	case instruction.OP_ADD_REG:
		sum := uint16(regs[in.X]) + uint16(regs[in.Y])
		regs[in.X] = uint8(sum)
		regs[REGISTER_FLAG] = flag(sum > 0xFF)

	case instruction.OP_SUB:
		noBorrow := regs[in.X] >= regs[in.Y]
		regs[in.X] = regs[in.X] - regs[in.Y]
		regs[REGISTER_FLAG] = flag(noBorrow)

	case instruction.OP_SUBN:
		noBorrow := regs[in.Y] >= regs[in.X]
		regs[in.X] = regs[in.Y] - regs[in.X]
		regs[REGISTER_FLAG] = flag(noBorrow)

	case instruction.OP_SHR:
		value := regs[in.X]
		regs[REGISTER_FLAG] = value & 0x1
		regs[in.X] = value >> 1

	case instruction.OP_SHL:
		value := regs[in.X]
		regs[REGISTER_FLAG] = value >> 7
		regs[in.X] = value << 1

	case instruction.OP_LD_I:
		state.Index = in.NNN

	case instruction.OP_JP_V0:
		state.Program = (uint16(regs[0]) + in.NNN) & ADDRESS_MASK
		advance = false

	case instruction.OP_RND:
		regs[in.X] = mc.random() & in.NN

	case instruction.OP_DRW:
		collided := mc.draw(regs[in.X], regs[in.Y], in.N)
		regs[REGISTER_FLAG] = flag(collided)

	case instruction.OP_SKP:
		if state.Keys[regs[in.X]&0xF] {
			state.Program += 2
		}

	case instruction.OP_SKNP:
		if !state.Keys[regs[in.X]&0xF] {
			state.Program += 2
		}

	case instruction.OP_LD_DT_GET:
		regs[in.X] = state.Delay

	case instruction.OP_LD_KEY:
		state.KeyWait = true
		state.KeyRegister = in.X

	case instruction.OP_LD_DT_SET:
		state.Delay = regs[in.X]

	case instruction.OP_LD_ST:
		state.Sound = regs[in.X]

	case instruction.OP_ADD_I:
		state.Index += uint16(regs[in.X])

	case instruction.OP_LD_F:
		state.Index = MEMSPACE_FONT + uint16(regs[in.X]&0xF)*GLYPH_SIZE

	case instruction.OP_LD_B:
		value := regs[in.X]
		mc.write(state.Index, value/100)
		mc.write(state.Index+1, (value/10)%10)
		mc.write(state.Index+2, value%10)

	case instruction.OP_LD_STORE:
		for i := uint16(0); i <= uint16(in.X); i++ {
			mc.write(state.Index+i, regs[i])
		}

	case instruction.OP_LD_LOAD:
		for i := uint16(0); i <= uint16(in.X); i++ {
			regs[i] = mc.read(state.Index + i)
		}
	}

	if advance {
		state.Program += 2
	}

	state.Program &= ADDRESS_MASK

	if mc.Debugger != nil {
		mc.Debugger.Step(mc)
	}

	return nil
}

func flag(set bool) uint8 {
	if set {
		return 1
	}

	return 0
}

// TickTimers counts both timers down towards zero, once per 60Hz frame
func (mc *Machine) TickTimers() {
	if mc.State.Delay > 0 {
		mc.State.Delay--
	}

	if mc.State.Sound > 0 {
		mc.State.Sound--
	}
}

// SetKey presses a key and satisfies a pending key wait
func (mc *Machine) SetKey(key uint8) {
	key &= 0xF

	mc.State.Keys[key] = true

	if mc.State.KeyWait {
		mc.State.Registers[mc.State.KeyRegister&0xF] = key
		mc.State.KeyWait = false
	}
}

func (mc *Machine) ClearKeys() {
	mc.State.Keys = [KEY_COUNT]bool{}
}

func (mc *Machine) SoundActive() bool {
	return mc.State.Sound > 0
}
