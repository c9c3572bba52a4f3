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


package driver_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/lassandro/gochip8/pkg/debugger"
	"github.com/lassandro/gochip8/pkg/driver"
	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type testFrontend struct {
	// One entry per frame, frames past the end have no input
	Queue [][]driver.Input

	Renders int
	Beeps   []bool
	Keys    [][machine.KEY_COUNT]bool
}

func (f *testFrontend) Inputs() []driver.Input {
	if len(f.Queue) == 0 {
		return nil
	}

	inputs := f.Queue[0]
	f.Queue = f.Queue[1:]

	return inputs
}

func (f *testFrontend) Render(state *machine.MachineState) error {
	f.Renders++
	f.Keys = append(f.Keys, state.Keys)
	return nil
}

func (f *testFrontend) Beep(on bool) {
	f.Beeps = append(f.Beeps, on)
}

func newDriver(t *testing.T, speed int, rom ...byte) (*driver.Driver, *testFrontend) {
	t.Helper()

	mc := &machine.Machine{Logger: log.NewTestLogger(t)}
	assert.NoError(t, mc.LoadROM(bytes.NewReader(rom)))

	frontend := &testFrontend{}

	return &driver.Driver{
		Machine:  mc,
		Frontend: frontend,
		Speed:    speed,
		Logger:   log.NewTestLogger(t),
	}, frontend
}

// add v0 1, repeated
func counterROM(count int) []byte {
	rom := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		rom = append(rom, 0x70, 0x01)
	}
	return rom
}

func TestFrameBudget(t *testing.T) {
	tests := []struct {
		Name   string
		Speed  int
		Frames int
		Output uint8
	}{
		{"One Frame", 600, 1, 10},
		{"Two Frames", 600, 2, 20},
		{"Default Speed", 0, 1, driver.DEFAULT_SPEED / driver.FRAME_RATE},
		{"Carried Credit", 90, 2, 3},
		{"Below One Per Frame", 30, 3, 1},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			d, frontend := newDriver(t, test.Speed, counterROM(64)...)

			for i := 0; i < test.Frames; i++ {
				assert.NoError(t, d.Frame())
			}

			assert.Equal(t, test.Output, d.Machine.State.Registers[0])
			assert.Equal(t, test.Frames, frontend.Renders)
		})
	}
}

func TestPauseAndStep(t *testing.T) {
	d, frontend := newDriver(t, 600, counterROM(64)...)

	frontend.Queue = [][]driver.Input{
		{{Kind: driver.InputPause}},
		{{Kind: driver.InputStep}, {Kind: driver.InputStep}},
		{},
		{{Kind: driver.InputPause}},
		{},
	}

	assert.NoError(t, d.Frame())
	assert.True(t, d.Paused)
	assert.Equal(t, uint8(0), d.Machine.State.Registers[0])

	assert.NoError(t, d.Frame())
	assert.Equal(t, uint8(2), d.Machine.State.Registers[0])

	assert.NoError(t, d.Frame())
	assert.Equal(t, uint8(2), d.Machine.State.Registers[0])

	// Resuming takes effect from the following frame
	assert.NoError(t, d.Frame())
	assert.False(t, d.Paused)
	assert.Equal(t, uint8(2), d.Machine.State.Registers[0])

	assert.NoError(t, d.Frame())
	assert.Equal(t, uint8(12), d.Machine.State.Registers[0])
	assert.Equal(t, 5, frontend.Renders)
}

func TestSoundAndTimers(t *testing.T) {
	// ld v0 3; ld st v0; jp 0x204
	d, frontend := newDriver(t, 120, 0x60, 0x03, 0xF0, 0x18, 0x12, 0x04)

	for i := 0; i < 5; i++ {
		assert.NoError(t, d.Frame())
	}

	assert.Equal(t, []bool{true, true, true, false, false}, frontend.Beeps)
	assert.Equal(t, uint8(0), d.Machine.State.Sound)
}

func TestKeysLastOneFrame(t *testing.T) {
	// jp 0x200
	d, frontend := newDriver(t, 60, 0x12, 0x00)

	frontend.Queue = [][]driver.Input{
		{{Kind: driver.InputKey, Key: 0x5}, {Kind: driver.InputKey, Key: 0xA}},
		{},
	}

	assert.NoError(t, d.Frame())
	assert.NoError(t, d.Frame())

	assert.True(t, frontend.Keys[0][0x5])
	assert.True(t, frontend.Keys[0][0xA])
	assert.False(t, frontend.Keys[0][0x0])
	assert.Equal(t, [machine.KEY_COUNT]bool{}, frontend.Keys[1])
}

func TestKeyWaitAcrossFrames(t *testing.T) {
	// ld v2 k; add v2 1; jp 0x204
	d, frontend := newDriver(t, 600, 0xF2, 0x0A, 0x72, 0x01, 0x12, 0x04)

	frontend.Queue = [][]driver.Input{
		{},
		{{Kind: driver.InputKey, Key: 0x7}},
	}

	assert.NoError(t, d.Frame())
	assert.True(t, d.Machine.State.KeyWait)
	assert.Equal(t, uint16(0x202), d.Machine.State.Program)

	assert.NoError(t, d.Frame())
	assert.False(t, d.Machine.State.KeyWait)
	assert.Equal(t, uint8(0x8), d.Machine.State.Registers[2])
}

func TestBreakpointPauses(t *testing.T) {
	d, _ := newDriver(t, 600, counterROM(64)...)

	d.Debugger = &debugger.Debugger{}
	d.Debugger.AddBreakpoint(0x204)

	assert.NoError(t, d.Frame())
	assert.True(t, d.Paused)
	assert.Equal(t, uint16(0x204), d.Machine.State.Program)
	assert.Equal(t, uint8(2), d.Machine.State.Registers[0])
}

func TestHalt(t *testing.T) {
	// ret
	d, frontend := newDriver(t, 600, 0x00, 0xEE)

	err := d.Frame()
	assert.Error(t, err)

	var underflow *machine.StackUnderflowError
	assert.True(t, errors.As(err, &underflow))
	assert.Equal(t, 0, frontend.Renders)
	assert.Equal(t, []bool{false}, frontend.Beeps)
}

func TestQuit(t *testing.T) {
	d, frontend := newDriver(t, 600, counterROM(64)...)

	frontend.Queue = [][]driver.Input{{{Kind: driver.InputQuit}}}
	assert.True(t, errors.Is(d.Frame(), driver.ErrQuit))

	frontend.Queue = [][]driver.Input{{}, {{Kind: driver.InputQuit}}}
	assert.NoError(t, d.Run(context.Background()))
	assert.Equal(t, 1, frontend.Renders)
}

func TestRunCancelled(t *testing.T) {
	d, _ := newDriver(t, 600, counterROM(64)...)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.True(t, errors.Is(d.Run(ctx), context.Canceled))
}
