// Package joyquery is the boundary to the platform joystick query API. It
// exposes per-slot capability and live-state queries behind a small interface
// so the diagnostic logic does not care which backend answers them.
package joyquery

import (
	"fmt"
	"runtime"
)

// Axis identifies one analog degree of freedom. Values follow the field order
// of the legacy multimedia joystick API (JOYINFOEX).
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisR
	AxisU
	AxisV
)

// NumAxes is the number of axes the legacy API can report per device.
const NumAxes = 6

// MaxButtons is the width of the button bitmask; bit i encodes button i.
const MaxButtons = 32

// AxisOrder lists all axes in report order.
var AxisOrder = [NumAxes]Axis{AxisX, AxisY, AxisZ, AxisR, AxisU, AxisV}

var axisNames = [NumAxes]string{"X", "Y", "Z", "R", "U", "V"}

func (a Axis) String() string {
	if a < 0 || int(a) >= NumAxes {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

// Capabilities describes one device slot as reported by a capability query.
type Capabilities struct {
	Name       string
	VendorID   uint16
	ProductID  uint16
	NumAxes    uint32
	NumButtons uint32
	MaxAxes    uint32
	MaxButtons uint32
}

// State is one live snapshot of a device: the position of every axis on the
// unsigned 0..65535 scale plus the button bitmask.
type State struct {
	Axes    [NumAxes]uint32
	Buttons uint32
}

// Querier answers stateless per-slot queries. NumDevices returns the slot
// bound of the backend, not the number of connected devices; slots inside the
// bound may still fail their capability query.
type Querier interface {
	NumDevices() int
	Capabilities(id int) (Capabilities, error)
	State(id int) (State, error)
}

// Backend names accepted by Open.
const (
	BackendAuto  = "auto"
	BackendWinMM = "winmm"
	BackendSDL   = "sdl"
)

// Open returns a Querier for the named backend plus a cleanup function.
// BackendAuto prefers winmm on Windows and falls back to SDL.
func Open(backend string) (Querier, func(), error) {
	switch backend {
	case BackendWinMM:
		q, err := NewWinMM()
		if err != nil {
			return nil, nil, err
		}
		return q, func() {}, nil
	case BackendSDL:
		q, err := NewSDL()
		if err != nil {
			return nil, nil, err
		}
		return q, q.Close, nil
	case "", BackendAuto:
		if runtime.GOOS == "windows" {
			if q, err := NewWinMM(); err == nil {
				return q, func() {}, nil
			}
		}
		q, err := NewSDL()
		if err != nil {
			return nil, nil, err
		}
		return q, q.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown device backend %q", backend)
	}
}
