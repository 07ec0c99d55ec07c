//go:build !windows

package joyquery

import "errors"

var errWinMMUnavailable = errors.New("winmm backend is only available on windows")

// WinMM is a stub on non-Windows platforms; NewWinMM always fails here.
type WinMM struct{}

func NewWinMM() (*WinMM, error) {
	return nil, errWinMMUnavailable
}

func (*WinMM) NumDevices() int { return 0 }

func (*WinMM) Capabilities(int) (Capabilities, error) {
	return Capabilities{}, errWinMMUnavailable
}

func (*WinMM) State(int) (State, error) {
	return State{}, errWinMMUnavailable
}
