package diag

import (
	"errors"

	"github.com/PhialsBasement/fnuipad-VR/internal/joyquery"
)

var errFakeMissing = errors.New("fake: no device in slot")

type pollResult struct {
	state joyquery.State
	err   error
}

// fakeQuerier scripts capability and state answers per slot. State answers
// are consumed in order, one per poll.
type fakeQuerier struct {
	bound int
	caps  map[int]joyquery.Capabilities
	polls []pollResult
	next  int
}

func (f *fakeQuerier) NumDevices() int { return f.bound }

func (f *fakeQuerier) Capabilities(id int) (joyquery.Capabilities, error) {
	c, ok := f.caps[id]
	if !ok {
		return joyquery.Capabilities{}, errFakeMissing
	}
	return c, nil
}

func (f *fakeQuerier) State(id int) (joyquery.State, error) {
	if _, ok := f.caps[id]; !ok {
		return joyquery.State{}, errFakeMissing
	}
	if f.next >= len(f.polls) {
		return joyquery.State{}, errors.New("fake: poll script exhausted")
	}
	p := f.polls[f.next]
	f.next++
	return p.state, p.err
}

// axes builds a state whose X position is x, with the remaining axes centered
// and the given button mask.
func axes(x uint32, buttons uint32) joyquery.State {
	return joyquery.State{
		Axes:    [joyquery.NumAxes]uint32{x, 32768, 32768, 32768, 32768, 32768},
		Buttons: buttons,
	}
}
