// Package diag implements the joystick diagnostic: slot enumeration, test
// device identification and live-state sampling against a joyquery backend.
package diag

import "github.com/PhialsBasement/fnuipad-VR/internal/joyquery"

// Descriptor pairs a device slot with the capabilities it reported.
type Descriptor struct {
	ID   int
	Caps joyquery.Capabilities
}

// Enumerate probes every slot in [0, bound). Slots whose capability query
// fails are skipped: they neither abort the scan nor appear in the result,
// so len(result) is the found count, never the bound.
func Enumerate(q joyquery.Querier, bound int) []Descriptor {
	devs := make([]Descriptor, 0, bound)
	for id := 0; id < bound; id++ {
		caps, err := q.Capabilities(id)
		if err != nil {
			continue
		}
		devs = append(devs, Descriptor{ID: id, Caps: caps})
	}
	return devs
}
