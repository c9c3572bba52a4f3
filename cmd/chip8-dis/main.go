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
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lassandro/gochip8/pkg/config"
	"github.com/lassandro/gochip8/pkg/disassembler"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

var helpvar bool
var annotatevar bool
var debugvar bool
var quietvar bool
var outvar string

const usage = "chip8-dis [-annotate] [-out outfile] filename"

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(
		&annotatevar, "annotate", false,
		"Appends the address and raw opcode of each line as a comment",
	)
	flag.StringVar(
		&outvar, "out", "",
		"Writes the listing to a file instead of stdout",
	)
	flag.BoolVar(&debugvar, "debug", false, "Enables debug logging")
	flag.BoolVar(&quietvar, "q", false, "Only logs errors")
	flag.Parse()
}

func chip8_dis() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	logger := config.CreateLogger(debugvar, quietvar)
	args := flag.Args()

	var input io.Reader

	if !term.IsTerminal(int(os.Stdin.Fd())) && len(args) == 0 {
		input = os.Stdin
	} else {
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, usage)
			return 1
		}

		file, err := os.Open(args[0])

		if err != nil {
			logger.Error("Error opening input", log.Err(err))
			return 1
		}

		defer file.Close()

		input = file
	}

	entries, err := disassembler.Disassemble(input)

	if err != nil {
		logger.Error("Error reading input", log.Err(err))
		return 1
	}

	var listing string
	if annotatevar {
		listing = disassembler.Annotate(entries)
	} else {
		listing = disassembler.Format(entries)
	}

	logger.Debug("Disassembled", log.Int("entries", len(entries)))

	if outvar == "" {
		fmt.Println(listing)
		return 0
	}

	if err := os.WriteFile(outvar, []byte(listing+"\n"), 0666); err != nil {
		logger.Error("Error writing output file", log.Err(err))
		return 1
	}

	return 0
}

func main() {
	os.Exit(chip8_dis())
}
