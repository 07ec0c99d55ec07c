package joyquery

import (
	"fmt"

	"github.com/jupiterrider/purego-sdl3/sdl"
)

// sdlSlotBound is the slot bound the SDL backend advertises. It mirrors the
// 16-slot bound of the legacy multimedia API so that callers probe the same
// id space regardless of backend.
const sdlSlotBound = 16

// SDL queries joysticks through the SDL3 joystick subsystem. A device id is a
// position in SDL's joystick list, so slot numbering stays 0..N-1 like the
// legacy API. Each query opens and closes the joystick; the backend keeps no
// per-device state.
type SDL struct{}

// NewSDL initializes the SDL joystick subsystem.
func NewSDL() (*SDL, error) {
	if !sdl.Init(sdl.InitJoystick) {
		return nil, fmt.Errorf("sdl backend: init failed: %s", sdl.GetError())
	}
	return &SDL{}, nil
}

// Close shuts the SDL subsystem down.
func (*SDL) Close() {
	sdl.Quit()
}

func (*SDL) NumDevices() int { return sdlSlotBound }

// open maps a slot id onto SDL's current joystick list. SDL only updates the
// list while events are pumped, so drain the queue first.
func (*SDL) open(id int) (*sdl.Joystick, error) {
	var event sdl.Event
	for sdl.PollEvent(&event) {
	}
	ids := sdl.GetJoysticks()
	if id < 0 || id >= len(ids) {
		return nil, fmt.Errorf("no joystick in slot %d", id)
	}
	js := sdl.OpenJoystick(ids[id])
	if js == nil {
		return nil, fmt.Errorf("open joystick in slot %d: %s", id, sdl.GetError())
	}
	return js, nil
}

func (s *SDL) Capabilities(id int) (Capabilities, error) {
	js, err := s.open(id)
	if err != nil {
		return Capabilities{}, err
	}
	defer sdl.CloseJoystick(js)

	return Capabilities{
		Name:       sdl.GetJoystickName(js),
		VendorID:   sdl.GetJoystickVendor(js),
		ProductID:  sdl.GetJoystickProduct(js),
		NumAxes:    uint32(sdl.GetNumJoystickAxes(js)),
		NumButtons: uint32(sdl.GetNumJoystickButtons(js)),
		MaxAxes:    NumAxes,
		MaxButtons: MaxButtons,
	}, nil
}

func (s *SDL) State(id int) (State, error) {
	js, err := s.open(id)
	if err != nil {
		return State{}, err
	}
	defer sdl.CloseJoystick(js)

	var st State
	numAxes := sdl.GetNumJoystickAxes(js)
	if numAxes > NumAxes {
		numAxes = NumAxes
	}
	for i := int32(0); i < numAxes; i++ {
		// Rebase SDL's signed -32768..32767 onto the unsigned 0..65535
		// scale the legacy API reports, so both backends agree.
		st.Axes[i] = uint32(int32(sdl.GetJoystickAxis(js, i)) + 32768)
	}

	numButtons := sdl.GetNumJoystickButtons(js)
	if numButtons > MaxButtons {
		numButtons = MaxButtons
	}
	for i := int32(0); i < numButtons; i++ {
		if sdl.GetJoystickButton(js, i) {
			st.Buttons |= 1 << uint(i)
		}
	}
	return st, nil
}
