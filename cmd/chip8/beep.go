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
	"encoding/binary"
	"math"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

const (
	BEEP_SAMPLE_RATE = 44100
	BEEP_FREQUENCY   = 440
	BEEP_VOLUME      = 0.2
)

// Square wave that is silent unless the sound timer is running
type squareWave struct {
	on    atomic.Bool
	phase int
}

func (wave *squareWave) Read(p []byte) (int, error) {
	const period = BEEP_SAMPLE_RATE / BEEP_FREQUENCY

	on := wave.on.Load()

	for i := 0; i+4 <= len(p); i += 4 {
		var sample float32

		if on {
			sample = BEEP_VOLUME
			if wave.phase >= period/2 {
				sample = -BEEP_VOLUME
			}
		}

		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(sample))
		wave.phase = (wave.phase + 1) % period
	}

	return len(p) - len(p)%4, nil
}

type otoBeeper struct {
	wave   *squareWave
	player *oto.Player
}

func newBeeper() (beeper, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   BEEP_SAMPLE_RATE,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})

	if err != nil {
		return nil, err
	}

	<-ready

	wave := &squareWave{}
	player := ctx.NewPlayer(wave)
	player.Play()

	return &otoBeeper{wave, player}, nil
}

func (b *otoBeeper) Set(on bool) {
	b.wave.on.Store(on)
}

func (b *otoBeeper) Close() error {
	return b.player.Close()
}
