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


// Package debugger implements the machine hooks behind breakpoints and
// watchpoints, plus the state printers used by the interactive console.
package debugger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/lassandro/gochip8/pkg/instruction"
	"github.com/lassandro/gochip8/pkg/machine"
)

func (wtype WatchpointType) String() string {
	switch wtype {
	case ReadWatch:
		return "R"
	case WriteWatch:
		return "W"
	case ReadWriteWatch:
		return "RW"
	}

	return "?"
}

func (dbg *Debugger) out() io.Writer {
	if dbg.Output == nil {
		return os.Stdout
	}

	return dbg.Output
}

func (dbg *Debugger) Step(mc *machine.Machine) {
	if dbg.Break.Load() {
		if dbg.HandleBreak != nil {
			dbg.HandleBreak(dbg, mc)
		}
		return
	}

	if dbg.HasBreakpoint(mc.State.Program) && dbg.HandleBreak != nil {
		dbg.HandleBreak(dbg, mc)
	}
}

func (dbg *Debugger) Read(addr uint16, mc *machine.Machine) {
	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type == WriteWatch {
			continue
		}

		if addr == watchpoint.Addr {
			if dbg.HandleRead != nil {
				dbg.HandleRead(addr, dbg, mc)
			}
			break
		}
	}
}

func (dbg *Debugger) Write(addr uint16, mc *machine.Machine) {
	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type == ReadWatch {
			continue
		}

		if addr == watchpoint.Addr {
			if dbg.HandleWrite != nil {
				dbg.HandleWrite(addr, dbg, mc)
			}
			break
		}
	}
}

func (dbg *Debugger) HasBreakpoint(addr uint16) bool {
	for _, breakpoint := range dbg.Breakpoints {
		if breakpoint.Addr == addr {
			return true
		}
	}

	return false
}

// AddBreakpoint reports false when addr already has a breakpoint
func (dbg *Debugger) AddBreakpoint(addr uint16) bool {
	if dbg.HasBreakpoint(addr) {
		return false
	}

	dbg.Breakpoints = append(dbg.Breakpoints, Breakpoint{addr})

	return true
}

// RemoveBreakpoint swaps the last breakpoint into slot i
func (dbg *Debugger) RemoveBreakpoint(i int) error {
	if i < 0 || i >= len(dbg.Breakpoints) {
		return &IndexError{i, len(dbg.Breakpoints)}
	}

	dbg.Breakpoints[i] = dbg.Breakpoints[len(dbg.Breakpoints)-1]
	dbg.Breakpoints = dbg.Breakpoints[:len(dbg.Breakpoints)-1]

	return nil
}

func (dbg *Debugger) AddWatchpoint(addr uint16, wtype WatchpointType) bool {
	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Addr == addr && watchpoint.Type == wtype {
			return false
		}
	}

	dbg.Watchpoints = append(dbg.Watchpoints, Watchpoint{addr, wtype})

	return true
}

func (dbg *Debugger) RemoveWatchpoint(i int) error {
	if i < 0 || i >= len(dbg.Watchpoints) {
		return &IndexError{i, len(dbg.Watchpoints)}
	}

	dbg.Watchpoints[i] = dbg.Watchpoints[len(dbg.Watchpoints)-1]
	dbg.Watchpoints = dbg.Watchpoints[:len(dbg.Watchpoints)-1]

	return nil
}

// FindLabel looks up a label address in the loaded symbol table
func (dbg *Debugger) FindLabel(name string) (uint16, bool) {
	if dbg.SymTable == nil {
		return 0, false
	}

	for addr, label := range dbg.SymTable.Labels {
		if label == name {
			return addr, true
		}
	}

	return 0, false
}

func (dbg *Debugger) PrintSource(addr uint16, count uint16) {
	out := dbg.out()

	if dbg.Source == nil {
		fmt.Fprintln(out, "No source file loaded")
		return
	}

	if dbg.SymTable == nil {
		fmt.Fprintln(out, "No symbol table loaded")
		return
	}

	offset, exists := dbg.SymTable.Symbols[addr]

	if !exists {
		fmt.Fprintf(out, "No instruction found at %#04x\n", addr)
		return
	}

	if _, err := dbg.Source.Seek(offset, io.SeekStart); err != nil {
		fmt.Fprintln(out, err)
		return
	}

	scanner := bufio.NewScanner(dbg.Source)
	scanner.Split(bufio.ScanLines)

	for i := uint16(0); i < count; i++ {
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()

		foundaddr := false
		for lineaddr, linebyte := range dbg.SymTable.Symbols {
			if linebyte == offset {
				fmt.Fprintf(out, "\033[1m[%#04x]\033[0m ", lineaddr)
				foundaddr = true
				break
			}
		}

		if !foundaddr {
			fmt.Fprint(out, "\033[1;30m~~~~~~~~\033[0m ")
		}

		fmt.Fprintln(out, line)

		offset += int64(len(line) + 1)
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintln(out, err)
	}
}

func (dbg *Debugger) PrintLabels() {
	out := dbg.out()

	if dbg.SymTable == nil {
		fmt.Fprintln(out, "No symbol table loaded")
		return
	}

	keys := make([]uint16, 0, len(dbg.SymTable.Labels))
	for addr := range dbg.SymTable.Labels {
		keys = append(keys, addr)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, addr := range keys {
		fmt.Fprintf(
			out, "\033[1m[%#04x]\033[0m %s\n", addr, dbg.SymTable.Labels[addr],
		)
	}
}

func (dbg *Debugger) PrintMem(mc *machine.MachineState, addr, count uint16) {
	out := dbg.out()

	for i := uint16(0); i < count; i++ {
		cell := (addr + i) & machine.ADDRESS_MASK

		if i == 0 {
			fmt.Fprintf(out, "\033[1m[%#04x]\033[0m ", cell)
		} else if i%MEM_ROW_SIZE == 0 {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "\033[1m[%#04x]\033[0m ", cell)
		}

		result := mc.Memory[cell]

		if result == 0 {
			fmt.Fprintf(out, "\033[1;30m%02X\033[0m ", result)
		} else {
			fmt.Fprintf(out, "%02X ", result)
		}
	}

	fmt.Fprintln(out)
}

// PrintList disassembles count words of memory starting at addr. The word
// under the program counter is marked.
func (dbg *Debugger) PrintList(mc *machine.MachineState, addr, count uint16) {
	out := dbg.out()

	for i := uint16(0); i < count; i++ {
		cell := (addr + i*2) & machine.ADDRESS_MASK
		word := mc.Word(cell)

		marker := "  "
		if cell == mc.Program {
			marker = "> "
		}

		text := "???"
		if in, err := instruction.DecodeStrict(word); err == nil {
			text = in.String()
		}

		label := ""
		if dbg.SymTable != nil {
			if name, exists := dbg.SymTable.Labels[cell]; exists {
				label = fmt.Sprintf(" \033[1;30m(%s)\033[0m", name)
			}
		}

		fmt.Fprintf(
			out,
			"%s\033[1m[%#04x]\033[0m %04X  %s%s\n",
			marker,
			cell,
			word,
			text,
			label,
		)
	}
}

func (dbg *Debugger) PrintRegisters(mc *machine.MachineState) {
	out := dbg.out()

	for i, register := range mc.Registers {
		fmt.Fprintf(out, "\033[1mV%X:\033[0m %#02x\t", i, register)
		if i%8 == 7 {
			fmt.Fprintln(out)
		}
	}

	fmt.Fprintf(
		out,
		"\033[1mI:\033[0m %#04x\t\033[1mPC:\033[0m %#04x\t"+
			"\033[1mDT:\033[0m %d\t\033[1mST:\033[0m %d\n",
		mc.Index,
		mc.Program,
		mc.Delay,
		mc.Sound,
	)

	fmt.Fprintf(out, "\033[1mSP:\033[0m %d", len(mc.Stack))
	for _, ret := range mc.Stack {
		fmt.Fprintf(out, " %#04x", ret)
	}
	fmt.Fprintln(out)

	if mc.KeyWait {
		fmt.Fprintf(out, "Waiting for key into V%X\n", mc.KeyRegister)
	}
}

func (dbg *Debugger) PrintDisplay(mc *machine.MachineState) {
	out := dbg.out()
	row := make([]rune, machine.DISPLAY_WIDTH)

	for y := range mc.Display {
		for x, pixel := range mc.Display[y] {
			if pixel {
				row[x] = PIXEL_ON
			} else {
				row[x] = PIXEL_OFF
			}
		}

		fmt.Fprintln(out, string(row))
	}
}
