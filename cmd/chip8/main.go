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
	"context"
	"encoding/gob"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lassandro/gochip8/pkg/assembler"
	"github.com/lassandro/gochip8/pkg/config"
	"github.com/lassandro/gochip8/pkg/debugger"
	"github.com/lassandro/gochip8/pkg/driver"
	"github.com/lassandro/gochip8/pkg/machine"
	retrolog "github.com/retroenv/retrogolib/log"
)

var helpvar bool
var consolevar bool
var breakvar string
var opts = config.DefaultOptions()

// Set by the debug console, turned into InputQuit by the frontends
var shouldexit atomic.Bool

var romPath string
var logger *retrolog.Logger

const usage = "chip8 [-term] [-console] [-speed #] [-scale #] [-break 0x###,...] filename"

// Console usage and command errors
func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(
		&consolevar, "console", false,
		"Runs the machine under the interactive debug console. A symbol "+
			"table next to the ROM with extension '.c8db' is loaded if present",
	)
	flag.StringVar(
		&breakvar, "break", "",
		"Comma separated addresses that pause the machine when reached",
	)
	flag.IntVar(&opts.Speed, "speed", opts.Speed, "Instructions per second")
	flag.IntVar(&opts.Scale, "scale", opts.Scale, "Window pixels per CHIP-8 pixel")
	flag.BoolVar(&opts.Headless, "term", false, "Renders to the terminal instead of a window")
	flag.BoolVar(&opts.Debug, "debug", false, "Enables debug logging")
	flag.BoolVar(&opts.Quiet, "q", false, "Only logs errors")
}

func symtablePath(rom string) string {
	return filepath.Join(
		filepath.Dir(rom),
		strings.TrimSuffix(filepath.Base(rom), filepath.Ext(rom))+".c8db",
	)
}

func loadSymbols(dbg *debugger.Debugger) {
	file, err := os.Open(symtablePath(romPath))

	if err != nil {
		logger.Debug("No symbol table loaded", retrolog.Err(err))
		return
	}

	defer file.Close()

	var symtable assembler.SymTable

	if err := gob.NewDecoder(file).Decode(&symtable); err != nil {
		logger.Error("Error loading symbol table", retrolog.Err(err))
		return
	}

	dbg.SymTable = &symtable

	if symtable.Source == "" {
		return
	}

	source, err := os.Open(symtable.Source)

	if err != nil {
		logger.Error("Error loading source file", retrolog.Err(err))
		return
	}

	dbg.Source = source
}

func loadROM(mc *machine.Machine) error {
	file, err := os.Open(romPath)

	if err != nil {
		return err
	}

	defer file.Close()

	if stat, err := file.Stat(); err != nil {
		return err
	} else if stat.IsDir() {
		return fmt.Errorf("%s is not a valid CHIP-8 ROM", romPath)
	}

	return mc.LoadROM(file)
}

func chip8() int {
	flag.Parse()

	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, usage)
		return 1
	}

	romPath = args[0]

	if err := opts.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger = config.CreateLogger(opts.Debug, opts.Quiet)

	var err error
	if opts.Breakpoints, err = config.ParseBreakpoints(breakvar); err != nil {
		logger.Error("Invalid options", retrolog.Err(err))
		return 1
	}

	mc := machine.Machine{
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		Logger: logger,
	}

	if err := loadROM(&mc); err != nil {
		logger.Error("Error loading ROM", retrolog.String("file", romPath), retrolog.Err(err))
		return 1
	}

	d := driver.Driver{
		Machine: &mc,
		Speed:   opts.Speed,
		Logger:  logger,
	}

	var dbg *debugger.Debugger

	if consolevar || len(opts.Breakpoints) > 0 {
		dbg = &debugger.Debugger{}

		for _, addr := range opts.Breakpoints {
			dbg.AddBreakpoint(addr)
		}
	}

	if consolevar {
		dbg.HandleBreak = handleBreak
		dbg.HandleRead = handleRead
		dbg.HandleWrite = handleWrite
		mc.Debugger = dbg

		loadSymbols(dbg)

		if file, ok := dbg.Source.(*os.File); ok {
			defer file.Close()
		}

		c := make(chan os.Signal, 1)
		defer signal.Stop(c)

		signal.Notify(c, os.Interrupt)
		go func() {
			for range c {
				fmt.Println()
				dbg.Break.Store(true)
			}
		}()

		debugREPL(dbg, &mc)
	} else if dbg != nil {
		d.Debugger = dbg
	}

	if shouldexit.Load() {
		return 0
	}

	beep, err := newBeeper()

	if err != nil {
		logger.Debug("Audio unavailable", retrolog.Err(err))
	} else {
		defer beep.Close()
	}

	if opts.Headless {
		err = runTerminal(context.Background(), &d, dbg, beep)
	} else {
		err = runWindow(&d, opts.Scale, beep)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Machine stopped", retrolog.Err(err))
		return 1
	}

	return 0
}

func main() {
	os.Exit(chip8())
}
