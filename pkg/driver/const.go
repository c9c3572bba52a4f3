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


package driver

import (
	"errors"
	"time"
)

const (
	FRAME_RATE     = 60
	FRAME_DURATION = time.Second / FRAME_RATE

	// Instructions per second when Speed is unset
	DEFAULT_SPEED = 500
)

const (
	InputKey InputKind = iota
	InputPause
	InputStep
	InputQuit
)

// Returned by Frame once the frontend asks to quit
var ErrQuit = errors.New("Quit requested")
