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


// Package driver paces a machine at its clock speed and moves input, video
// and sound between it and a frontend, one 60Hz frame at a time.
package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
)

func (d *Driver) speed() int {
	if d.Speed <= 0 {
		return DEFAULT_SPEED
	}

	return d.Speed
}

// Number of instructions to run this frame
func (d *Driver) budget() int {
	d.credit += d.speed()
	steps := d.credit / FRAME_RATE
	d.credit %= FRAME_RATE

	return steps
}

func (d *Driver) step() error {
	if err := d.Machine.Step(); err != nil {
		return fmt.Errorf("machine halted at %#04x: %w", d.Machine.State.Program, err)
	}

	if d.Debugger != nil && d.Debugger.HasBreakpoint(d.Machine.State.Program) {
		d.Pause()
	}

	return nil
}

func (d *Driver) Pause() {
	if !d.Paused && d.Logger != nil {
		d.Logger.Debug(
			"Paused",
			log.String("program", fmt.Sprintf("%#04x", d.Machine.State.Program)),
		)
	}

	d.Paused = true
	d.credit = 0
}

func (d *Driver) Resume() {
	if d.Paused && d.Logger != nil {
		d.Logger.Debug("Resumed")
	}

	d.Paused = false
}

// While paused, inputs are applied directly and InputStep executes exactly
// one instruction along with one timer tick.
func (d *Driver) framePaused(inputs []Input) error {
	mc := d.Machine

	for _, input := range inputs {
		switch input.Kind {
		case InputKey:
			mc.ClearKeys()
			mc.SetKey(input.Key)

		case InputStep:
			if err := d.Machine.Step(); err != nil {
				return fmt.Errorf("machine halted at %#04x: %w", mc.State.Program, err)
			}

			mc.TickTimers()

		case InputPause:
			d.Resume()
			return nil

		case InputQuit:
			return ErrQuit
		}
	}

	return nil
}

func (d *Driver) frameRunning(inputs []Input) error {
	mc := d.Machine

	mc.ClearKeys()
	mc.TickTimers()

	for _, input := range inputs {
		switch input.Kind {
		case InputKey:
			mc.SetKey(input.Key)

		case InputPause:
			d.Pause()

		case InputQuit:
			return ErrQuit
		}
	}

	for steps := d.budget(); steps > 0 && !d.Paused; steps-- {
		if err := d.step(); err != nil {
			return err
		}
	}

	return nil
}

// Frame advances the machine by one 60Hz frame and presents the result
func (d *Driver) Frame() error {
	inputs := d.Frontend.Inputs()

	var err error

	if d.Paused {
		err = d.framePaused(inputs)
	} else {
		err = d.frameRunning(inputs)
	}

	if err != nil {
		d.Frontend.Beep(false)
		return err
	}

	d.Frontend.Beep(d.Machine.SoundActive() && !d.Paused)

	return d.Frontend.Render(&d.Machine.State)
}

// Run calls Frame at FRAME_RATE until ctx is done, the frontend quits or
// the machine halts. Quitting is not an error.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(FRAME_DURATION)
	defer ticker.Stop()

	if d.Logger != nil {
		d.Logger.Debug("Driver started", log.Int("speed", d.speed()))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			err := d.Frame()

			if errors.Is(err, ErrQuit) {
				return nil
			} else if err != nil {
				if d.Logger != nil {
					d.Logger.Debug("Driver stopped", log.Err(err))
				}

				return err
			}
		}
	}
}
