//go:build !headless

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
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/lassandro/gochip8/pkg/driver"
	"github.com/lassandro/gochip8/pkg/machine"
	"golang.org/x/image/font/basicfont"
)

const STATUS_HEIGHT = 16

var windowKeys = map[ebiten.Key]uint8{
	ebiten.KeyDigit1: keymap['1'], ebiten.KeyDigit2: keymap['2'],
	ebiten.KeyDigit3: keymap['3'], ebiten.KeyDigit4: keymap['4'],
	ebiten.KeyQ: keymap['q'], ebiten.KeyW: keymap['w'],
	ebiten.KeyE: keymap['e'], ebiten.KeyR: keymap['r'],
	ebiten.KeyA: keymap['a'], ebiten.KeyS: keymap['s'],
	ebiten.KeyD: keymap['d'], ebiten.KeyF: keymap['f'],
	ebiten.KeyZ: keymap['z'], ebiten.KeyX: keymap['x'],
	ebiten.KeyC: keymap['c'], ebiten.KeyV: keymap['v'],
}

var (
	pixelOn    = color.RGBA{0xE0, 0xE0, 0xD0, 0xFF}
	pixelOff   = color.RGBA{0x10, 0x10, 0x18, 0xFF}
	statusText = color.RGBA{0x80, 0x80, 0x80, 0xFF}
)

type windowFrontend struct {
	Driver *driver.Driver
	Beeper beeper
	Scale  int

	screen *ebiten.Image
	pixels []byte
	status string
}

func (wf *windowFrontend) Inputs() []driver.Input {
	var inputs []driver.Input

	if shouldexit.Load() || ebiten.IsWindowBeingClosed() ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return append(inputs, driver.Input{Kind: driver.InputQuit})
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		inputs = append(inputs, driver.Input{Kind: driver.InputPause})
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		inputs = append(inputs, driver.Input{Kind: driver.InputStep})
	}

	for key, value := range windowKeys {
		if ebiten.IsKeyPressed(key) {
			inputs = append(inputs, driver.Input{Kind: driver.InputKey, Key: value})
		}
	}

	return inputs
}

func (wf *windowFrontend) Render(state *machine.MachineState) error {
	for y := range state.Display {
		for x, pixel := range state.Display[y] {
			c := pixelOff
			if pixel {
				c = pixelOn
			}

			i := (y*machine.DISPLAY_WIDTH + x) * 4
			wf.pixels[i+0] = c.R
			wf.pixels[i+1] = c.G
			wf.pixels[i+2] = c.B
			wf.pixels[i+3] = c.A
		}
	}

	wf.status = fmt.Sprintf(
		"PC %#04x  I %#04x  %dHz", state.Program, state.Index, wf.Driver.Speed,
	)

	if wf.Driver.Paused {
		wf.status += "  PAUSED"
	}

	return nil
}

func (wf *windowFrontend) Beep(on bool) {
	if wf.Beeper != nil {
		wf.Beeper.Set(on)
	}
}

func (wf *windowFrontend) Update() error {
	err := wf.Driver.Frame()

	if errors.Is(err, driver.ErrQuit) {
		return ebiten.Termination
	}

	return err
}

func (wf *windowFrontend) Draw(screen *ebiten.Image) {
	if wf.screen == nil {
		wf.screen = ebiten.NewImage(machine.DISPLAY_WIDTH, machine.DISPLAY_HEIGHT)
	}

	wf.screen.WritePixels(wf.pixels)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(wf.Scale), float64(wf.Scale))
	screen.DrawImage(wf.screen, opts)

	baseline := machine.DISPLAY_HEIGHT*wf.Scale + STATUS_HEIGHT - 4
	text.Draw(screen, wf.status, basicfont.Face7x13, 4, baseline, statusText)
}

func (wf *windowFrontend) Layout(_, _ int) (int, int) {
	return machine.DISPLAY_WIDTH * wf.Scale,
		machine.DISPLAY_HEIGHT*wf.Scale + STATUS_HEIGHT
}

func runWindow(d *driver.Driver, scale int, beep beeper) error {
	wf := &windowFrontend{
		Driver: d,
		Beeper: beep,
		Scale:  scale,
		pixels: make([]byte, machine.DISPLAY_WIDTH*machine.DISPLAY_HEIGHT*4),
	}

	d.Frontend = wf

	ebiten.SetWindowSize(wf.Layout(0, 0))
	ebiten.SetWindowTitle("CHIP-8: " + romPath)
	ebiten.SetTPS(driver.FRAME_RATE)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(wf); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}

	return nil
}
