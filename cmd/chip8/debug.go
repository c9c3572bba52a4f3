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


package main

import (
	"bufio"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/lassandro/gochip8/pkg/debugger"
	"github.com/lassandro/gochip8/pkg/encoding"
	"github.com/lassandro/gochip8/pkg/instruction"
	"github.com/lassandro/gochip8/pkg/machine"
	retrolog "github.com/retroenv/retrogolib/log"
)

var lastcmd []string

// Address operands are hex, or a label when a symbol table is loaded
func parseAddr(dbg *debugger.Debugger, arg string) (uint16, error) {
	if addr, ok := dbg.FindLabel(arg); ok {
		return addr, nil
	}

	return encoding.DecodeHex(arg, 12)
}

func debugBreak(dbg *debugger.Debugger, args []string) {
	const usage = "break [add|list|remove|clear]"

	if len(args) == 0 {
		args = append(args, "l")
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "a", "add":
		const usage = "break add [0x###|label]"

		if len(args) != 1 {
			log.Println(usage)
			return
		}

		addr, err := parseAddr(dbg, args[0])

		if err != nil {
			log.Println(err)
			return
		}

		if dbg.AddBreakpoint(addr) {
			fmt.Printf("Breakpoint added [%#04x]\n", addr)
		}

	case "l", "ls", "list":
		var fmtstring string
		{
			digits := math.Floor(math.Log10(float64(len(dbg.Breakpoints) + 1)))
			fmtstring = fmt.Sprintf("#%%0%dd: %%#x\n", int64(digits)+1)
		}

		for i, breakpoint := range dbg.Breakpoints {
			log.Printf(fmtstring, i, breakpoint.Addr)
		}

	case "r", "rm", "remove":
		const usage = "break remove [#]"

		if len(args) != 1 {
			log.Println(usage)
			return
		}

		i, err := strconv.Atoi(args[0])

		if err != nil {
			log.Println(err)
			return
		}

		if err := dbg.RemoveBreakpoint(i); err != nil {
			log.Println(err)
			return
		}

		fmt.Printf("Breakpoint removed [%d]\n", i)

	case "clear":
		dbg.Breakpoints = nil
		fmt.Println("Breakpoints reset")

	default:
		log.Println(usage)
	}
}

func debugWatch(dbg *debugger.Debugger, args []string) {
	const usage = "watch [add|list|remove|clear]"

	if len(args) == 0 {
		args = append(args, "l")
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "a", "add":
		const usage = "watch add [0x###|label] [read|write|readwrite]"

		if len(args) != 2 {
			log.Println(usage)
			return
		}

		addr, err := parseAddr(dbg, args[0])

		if err != nil {
			log.Println(err)
			return
		}

		var wtype debugger.WatchpointType

		switch args[1] {
		case "r", "read":
			wtype = debugger.ReadWatch
		case "w", "write":
			wtype = debugger.WriteWatch
		case "rw", "rwrite", "readwrite":
			wtype = debugger.ReadWriteWatch
		default:
			log.Println(usage)
			return
		}

		if dbg.AddWatchpoint(addr, wtype) {
			fmt.Printf("Watchpoint added [%#04x] (%s)\n", addr, wtype)
		}

	case "l", "ls", "list":
		var fmtstring string
		{
			digits := math.Floor(math.Log10(float64(len(dbg.Watchpoints) + 1)))
			fmtstring = fmt.Sprintf("#%%0%dd: %%#x %%s\n", int64(digits)+1)
		}

		for i, watchpoint := range dbg.Watchpoints {
			log.Printf(fmtstring, i, watchpoint.Addr, watchpoint.Type)
		}

	case "r", "rm", "remove":
		const usage = "watch remove [#]"

		if len(args) != 1 {
			log.Println(usage)
			return
		}

		i, err := strconv.Atoi(args[0])

		if err != nil {
			log.Println(err)
			return
		}

		if err := dbg.RemoveWatchpoint(i); err != nil {
			log.Println(err)
			return
		}

		fmt.Printf("Watchpoint removed [%d]\n", i)

	case "clear":
		dbg.Watchpoints = nil
		fmt.Println("Watchpoints reset")

	default:
		log.Println(usage)
	}
}

func debugReg(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "register [V#|I|PC|DT|ST] [0x###]"

	if len(args) == 0 {
		dbg.PrintRegisters(mc)
		return
	}

	if len(args) != 2 {
		log.Println(usage)
		return
	}

	name := strings.ToLower(args[0])

	bits := 8
	if name == "i" || name == "pc" {
		bits = 12
	}

	value, err := encoding.DecodeNumber(args[1], bits)

	if err != nil {
		log.Println(err)
		return
	}

	switch name {
	case "i":
		mc.Index = value
	case "pc":
		mc.Program = value
	case "dt":
		mc.Delay = uint8(value)
	case "st":
		mc.Sound = uint8(value)
	default:
		register, ok := instruction.ParseRegister(name)

		if !ok {
			log.Println("Invalid register")
			return
		}

		mc.Registers[register] = uint8(value)
	}

	fmt.Printf("\033[1m%s:\033[0m %#x\n", strings.ToUpper(name), value)
}

// Shared by source and list: [0x###|label] [#]
func parseWindow(dbg *debugger.Debugger, mc *machine.MachineState, args []string, size uint16) (uint16, uint16, bool) {
	addr := mc.Program

	if len(args) > 0 {
		if value, err := parseAddr(dbg, args[0]); err == nil {
			addr = value
		} else if count, err := strconv.ParseUint(args[0], 10, 16); err == nil {
			size = uint16(count)
		} else {
			log.Println(err)
			return 0, 0, false
		}
	}

	if len(args) > 1 {
		count, err := strconv.ParseUint(args[1], 10, 16)

		if err != nil {
			log.Println(err)
			return 0, 0, false
		}

		size = uint16(count)
	}

	return addr, size, true
}

func debugSource(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "source [0x###|label] [#]"

	if len(args) > 2 {
		log.Println(usage)
		return
	}

	if addr, size, ok := parseWindow(dbg, mc, args, 3); ok {
		dbg.PrintSource(addr, size)
	}
}

func debugList(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "list [0x###|label] [#]"

	if len(args) > 2 {
		log.Println(usage)
		return
	}

	if addr, size, ok := parseWindow(dbg, mc, args, 8); ok {
		dbg.PrintList(mc, addr, size)
	}
}

func debugJump(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "jump [0x###|label]"

	if len(args) != 1 {
		log.Println(usage)
		return
	}

	addr, err := parseAddr(dbg, args[0])

	if err != nil {
		fmt.Printf("Unable to find '%s'\n", args[0])
		return
	}

	mc.Program = addr
	fmt.Printf("\033[1mPC:\033[0m %#04x\n", addr)
}

func debugMemory(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "memory [0x###|label|I] [#]"

	if len(args) > 2 {
		log.Println(usage)
		return
	}

	if len(args) > 0 && strings.EqualFold(args[0], "i") {
		args[0] = fmt.Sprintf("%#x", mc.Index)
	}

	if addr, size, ok := parseWindow(dbg, mc, args, 16); ok {
		dbg.PrintMem(mc, addr, size)
	}
}

func debugSet(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "set [0x###] [0x##]"

	if len(args) != 2 {
		log.Println(usage)
		return
	}

	addr, err := parseAddr(dbg, args[0])

	if err != nil {
		log.Println(err)
		return
	}

	value, err := encoding.DecodeNumber(args[1], 8)

	if err != nil {
		log.Println(err)
		return
	}

	mc.Memory[addr] = uint8(value)
	dbg.PrintMem(mc, addr, 1)
}

func debugKey(mc *machine.Machine, args []string) {
	const usage = "key [0-F]"

	if len(args) != 1 {
		log.Println(usage)
		return
	}

	key, err := strconv.ParseUint(args[0], 16, 4)

	if err != nil {
		log.Println(err)
		return
	}

	mc.SetKey(uint8(key))
	fmt.Printf("Key %X pressed\n", key)
}

func debugREPL(dbg *debugger.Debugger, mc *machine.Machine) {
	if termRestore != nil {
		exitRawTerm()
		defer enterRawTerm()
	}

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\033[1;30m(dbg)\033[0m ")

		if !scanner.Scan() {
			fmt.Println()
			shouldexit.Store(true)
			return
		}

		args := strings.Fields(scanner.Text())

		if len(args) == 0 {
			if len(lastcmd) == 0 {
				continue
			}
			args = lastcmd
		} else {
			lastcmd = make([]string, len(args))
			copy(lastcmd, args)
		}

		cmd := args[0]
		args = args[1:]

		switch cmd {
		case "b", "bp", "break", "breakpoint":
			debugBreak(dbg, args)

		case "w", "wp", "watch", "watchpoint":
			debugWatch(dbg, args)

		case "r", "reg", "register", "registers":
			debugReg(dbg, &mc.State, args)

		case "s", "src", "source":
			debugSource(dbg, &mc.State, args)

		case "l", "ls", "list":
			debugList(dbg, &mc.State, args)

		case "labels":
			dbg.PrintLabels()

		case "j", "jmp", "jump":
			debugJump(dbg, &mc.State, args)

		case "m", "mem", "memory":
			debugMemory(dbg, &mc.State, args)

		case "set":
			debugSet(dbg, &mc.State, args)

		case "screen":
			dbg.PrintDisplay(&mc.State)

		case "k", "key":
			debugKey(mc, args)

		case "c", "continue":
			dbg.Break.Store(false)
			return

		case "n", "next":
			dbg.Break.Store(true)
			return

		case "q", "quit", "exit":
			shouldexit.Store(true)
			return

		case "clear":
			fmt.Print("\033[H\033[2J")

		case "reset":
			if err := loadROM(mc); err != nil {
				logger.Error("Error reloading ROM", retrolog.Err(err))
			} else {
				fmt.Println("Machine reset")
			}

		default:
			log.Printf("error: '%s' is not a valid command\n", cmd)
		}
	}
}

func stopped(dbg *debugger.Debugger, mc *machine.Machine) {
	fmt.Println()
	fmt.Println("Program stopped")

	if dbg.Source != nil {
		dbg.PrintSource(mc.State.Program, 8)
	} else {
		dbg.PrintList(&mc.State, mc.State.Program, 8)
	}
}

func handleBreak(dbg *debugger.Debugger, mc *machine.Machine) {
	if !dbg.Break.Load() {
		stopped(dbg, mc)
	} else {
		dbg.PrintList(&mc.State, mc.State.Program, 1)
	}

	debugREPL(dbg, mc)
}

func handleRead(addr uint16, dbg *debugger.Debugger, mc *machine.Machine) {
	fmt.Println()
	fmt.Println("Program stopped")
	dbg.PrintMem(&mc.State, addr, 1)
	debugREPL(dbg, mc)
}

func handleWrite(addr uint16, dbg *debugger.Debugger, mc *machine.Machine) {
	fmt.Println()
	fmt.Println("Program stopped")
	dbg.PrintMem(&mc.State, addr, 1)
	debugREPL(dbg, mc)
}
