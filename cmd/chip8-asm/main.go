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
	"encoding/gob"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lassandro/gochip8/pkg/assembler"
	"github.com/lassandro/gochip8/pkg/config"
	retrolog "github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

var helpvar bool
var symbolsvar bool
var debugvar bool
var quietvar bool
var outvar string

const usage = "chip8-asm [-symbols] [-out outfile] filename"

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(
		&symbolsvar, "symbols", false,
		"Specifies whether to generate debugging information as a symbol "+
			"table. The table will use the output filename with extension "+
			"'.c8db'",
	)
	flag.StringVar(
		&outvar, "out", "",
		"Specifies a precise name for the output file, "+
			"overriding the default means of determining it",
	)
	flag.BoolVar(&debugvar, "debug", false, "Enables debug logging")
	flag.BoolVar(&quietvar, "q", false, "Only logs errors")
	flag.Parse()
}

// Echoes the offending source line with the token underlined
func printTokenError(input io.ReadSeeker, err error) {
	var tokenErr assembler.TokenError

	if !errors.As(err, &tokenErr) {
		log.Println(err)
		return
	}

	cursor := tokenErr.GetPosition()

	if _, err := input.Seek(cursor.LineByte, io.SeekStart); err != nil {
		log.Println(err)
		return
	}

	line, _ := bufio.NewReader(input).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")

	size := int(cursor.Size)
	if size < 1 {
		size = 1
	}

	underlinefmt := fmt.Sprintf(
		"%% %ds%s",
		int(cursor.Byte-cursor.LineByte)+1,
		strings.Repeat("~", size-1),
	)

	log.Printf(
		"%s\n%s\n\033[31m%s\033[0m",
		err,
		line,
		fmt.Sprintf(underlinefmt, "^"),
	)
}

func chip8_asm() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	logger := config.CreateLogger(debugvar, quietvar)
	args := flag.Args()

	var infile string
	var input io.ReadSeeker

	if !term.IsTerminal(int(os.Stdin.Fd())) && len(args) == 0 {
		// Stdin cannot seek back to echo lines, so it is buffered whole
		source, err := io.ReadAll(os.Stdin)

		if err != nil {
			logger.Error("Error reading input", retrolog.Err(err))
			return 1
		}

		input = strings.NewReader(string(source))
		log.SetPrefix("\033[1m<stdin>:\033[0m")

		if outvar == "" {
			outvar = "out.ch8"
		}
	} else {
		if len(args) != 1 {
			log.Println(usage)
			return 1
		}

		file, err := os.Open(args[0])

		if err != nil {
			logger.Error("Error opening input", retrolog.Err(err))
			return 1
		}

		defer file.Close()

		filename := filepath.Base(file.Name())

		if stat, err := file.Stat(); err != nil {
			logger.Error("Error opening input", retrolog.Err(err))
			return 1
		} else if stat.IsDir() {
			logger.Error(fmt.Sprintf("%s is not a valid CHIP-8 assembly file", filename))
			return 1
		}

		input = file
		infile = file.Name()
		log.SetPrefix(fmt.Sprintf("\033[1m%s:\033[0m", filename))

		if outvar == "" {
			outvar = filepath.Join(
				filepath.Dir(infile),
				strings.TrimSuffix(filename, filepath.Ext(filename))+".ch8",
			)
		}
	}

	var symtable assembler.SymTable
	var symtarget *assembler.SymTable = nil

	if symbolsvar {
		if infile != "" {
			var err error
			if symtable.Source, err = filepath.Abs(infile); err != nil {
				logger.Error("Error resolving source path", retrolog.Err(err))
				symtable.Source = ""
			}
		}
		symtarget = &symtable
	}

	result, errs := assembler.Assemble(input, symtarget)

	if len(errs) > 0 {
		for _, err := range errs {
			printTokenError(input, err)
		}

		return 1
	}

	if err := os.WriteFile(outvar, result, 0666); err != nil {
		logger.Error("Error writing output file", retrolog.Err(err))
		return 1
	}

	logger.Debug(
		"Assembled",
		retrolog.String("file", outvar),
		retrolog.Int("size", len(result)),
	)

	if symbolsvar {
		filename := filepath.Join(
			filepath.Dir(outvar),
			strings.TrimSuffix(filepath.Base(outvar), filepath.Ext(outvar))+".c8db",
		)

		file, err := os.Create(filename)

		if err != nil {
			logger.Error("Error creating symbol table", retrolog.Err(err))
			return 1
		}

		defer file.Close()

		if err := gob.NewEncoder(file).Encode(symtable); err != nil {
			logger.Error("Error writing symbol table", retrolog.Err(err))
			return 1
		}

		logger.Debug("Symbol table written", retrolog.String("file", filename))
	}

	return 0
}

func main() {
	os.Exit(chip8_asm())
}
