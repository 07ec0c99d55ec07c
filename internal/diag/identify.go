package diag

import (
	"strings"

	"github.com/PhialsBasement/fnuipad-VR/internal/joyquery"
)

// Matcher decides whether a descriptor belongs to the virtual test device.
// A descriptor matches when its name contains any of the patterns
// (case-insensitive) or its vendor/product pair equals the configured one.
type Matcher struct {
	NamePatterns []string
	VendorID     uint16
	ProductID    uint16
}

// DefaultMatcher recognizes the virtual gamepad the mapping layer creates.
func DefaultMatcher() Matcher {
	return Matcher{
		NamePatterns: []string{"Test Gamepad", "vJoy"},
		VendorID:     0x1234,
		ProductID:    0xBEAD,
	}
}

// Matches is a pure predicate over capability values; it touches no device.
func (m Matcher) Matches(c joyquery.Capabilities) bool {
	name := strings.ToLower(c.Name)
	for _, p := range m.NamePatterns {
		if p != "" && strings.Contains(name, strings.ToLower(p)) {
			return true
		}
	}
	return c.VendorID == m.VendorID && c.ProductID == m.ProductID
}

// Match is the outcome of scanning for the test device. Found false means no
// descriptor matched; that is a normal outcome, not an error.
type Match struct {
	Found   bool
	ID      int
	Buttons uint32
	Axes    uint32
}

// Select walks the descriptors in order and returns the best match. The first
// matching descriptor wins unless it reported zero buttons, in which case a
// later match that does expose buttons replaces it.
func (m Matcher) Select(devs []Descriptor) Match {
	var match Match
	for _, d := range devs {
		if match.Found && match.Buttons != 0 {
			break
		}
		if !m.Matches(d.Caps) {
			continue
		}
		if !match.Found || d.Caps.NumButtons != 0 {
			match = Match{
				Found:   true,
				ID:      d.ID,
				Buttons: d.Caps.NumButtons,
				Axes:    d.Caps.NumAxes,
			}
		}
	}
	return match
}
