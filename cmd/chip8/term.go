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
	"context"
	"errors"
	"fmt"
	"os"
	"unicode"

	"github.com/lassandro/gochip8/pkg/debugger"
	"github.com/lassandro/gochip8/pkg/driver"
	"github.com/lassandro/gochip8/pkg/machine"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminals only report presses, so a key stays down for this many frames
const KEY_HOLD_FRAMES = 6

const (
	ASCII_ETX = 0x03
	ASCII_ESC = 0x1B
)

var termRestore *term.State

func enterRawTerm() {
	fd := int(os.Stdin.Fd())

	if termRestore != nil || !term.IsTerminal(fd) {
		return
	}

	state, err := term.MakeRaw(fd)

	if err != nil {
		panic(err)
	}

	if err := unix.SetNonblock(fd, true); err != nil {
		term.Restore(fd, state)
		panic(err)
	}

	termRestore = state
}

func exitRawTerm() {
	fd := int(os.Stdin.Fd())

	if termRestore == nil {
		return
	}

	if err := unix.SetNonblock(fd, false); err != nil {
		panic(err)
	}

	if err := term.Restore(fd, termRestore); err != nil {
		panic(err)
	}

	termRestore = nil
}

type terminalFrontend struct {
	Driver   *driver.Driver
	Debugger *debugger.Debugger
	Beeper   beeper

	held   [machine.KEY_COUNT]int
	out    *bufio.Writer
	buffer [64]byte
	sound  bool
}

func (tf *terminalFrontend) Inputs() []driver.Input {
	var inputs []driver.Input

	if shouldexit.Load() {
		return append(inputs, driver.Input{Kind: driver.InputQuit})
	}

	for termRestore != nil {
		n, err := unix.Read(int(os.Stdin.Fd()), tf.buffer[:])

		if n <= 0 || err != nil {
			break
		}

		inputs = tf.scan(tf.buffer[:n], inputs)
	}

	for key := range tf.held {
		if tf.held[key] > 0 {
			tf.held[key]--
			inputs = append(inputs, driver.Input{Kind: driver.InputKey, Key: uint8(key)})
		}
	}

	return inputs
}

// Length of the escape sequence at the start of buf, which begins with ESC.
// CSI sequences run to their final byte; any other ESC pair is treated as
// an Alt-modified key.
func escapeLength(buf []byte) int {
	if len(buf) < 2 {
		return len(buf)
	}

	switch buf[1] {
	case '[':
		for i := 2; i < len(buf); i++ {
			if buf[i] >= 0x40 && buf[i] <= 0x7E {
				return i + 1
			}
		}

		return len(buf)

	case 'O':
		return min(3, len(buf))
	}

	return 2
}

func (tf *terminalFrontend) scan(buf []byte, inputs []driver.Input) []driver.Input {
	for i := 0; i < len(buf); i++ {
		switch char := buf[i]; char {
		case ASCII_ETX:
			if tf.Debugger != nil && tf.Debugger.HandleBreak != nil {
				tf.Debugger.Break.Store(true)
			} else {
				inputs = append(inputs, driver.Input{Kind: driver.InputQuit})
			}

		case ASCII_ESC:
			if len(buf) == 1 {
				inputs = append(inputs, driver.Input{Kind: driver.InputQuit})
				continue
			}

			// Arrow and function keys must not reach the keymap
			i += escapeLength(buf[i:]) - 1

		case KEY_PAUSE, ' ':
			inputs = append(inputs, driver.Input{Kind: driver.InputPause})

		case KEY_STEP:
			inputs = append(inputs, driver.Input{Kind: driver.InputStep})

		default:
			if key, ok := keymap[unicode.ToLower(rune(char))]; ok {
				tf.held[key] = KEY_HOLD_FRAMES
			}
		}
	}

	return inputs
}

// Two display rows per line using half blocks
func (tf *terminalFrontend) Render(state *machine.MachineState) error {
	out := tf.out

	fmt.Fprint(out, "\033[H")

	for y := 0; y < machine.DISPLAY_HEIGHT; y += 2 {
		for x := 0; x < machine.DISPLAY_WIDTH; x++ {
			top := state.Display[y][x]
			bottom := state.Display[y+1][x]

			switch {
			case top && bottom:
				out.WriteRune('█')
			case top:
				out.WriteRune('▀')
			case bottom:
				out.WriteRune('▄')
			default:
				out.WriteRune(' ')
			}
		}

		out.WriteString("\033[K\r\n")
	}

	status := ""
	if tf.Driver != nil && tf.Driver.Paused {
		status = " \033[1mPAUSED\033[0m"
	}

	fmt.Fprintf(
		out,
		"\033[1;30mPC\033[0m %#04x \033[1;30mI\033[0m %#04x%s\033[K\r\n\033[J",
		state.Program,
		state.Index,
		status,
	)

	return out.Flush()
}

func (tf *terminalFrontend) Beep(on bool) {
	if tf.Beeper != nil {
		tf.Beeper.Set(on)
	} else if on && !tf.sound {
		tf.out.WriteByte('\a')
	}

	tf.sound = on
}

func runTerminal(ctx context.Context, d *driver.Driver, dbg *debugger.Debugger, beep beeper) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("terminal rendering needs an interactive terminal")
	}

	tf := &terminalFrontend{
		Driver:   d,
		Debugger: dbg,
		Beeper:   beep,
		out:      bufio.NewWriter(os.Stdout),
	}

	d.Frontend = tf

	enterRawTerm()
	defer exitRawTerm()

	fmt.Print("\033[2J\033[?25l")
	defer fmt.Print("\033[?25h\r\n")

	return d.Run(ctx)
}
