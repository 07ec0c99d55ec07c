package diag

import (
	"testing"

	"github.com/PhialsBasement/fnuipad-VR/internal/joyquery"
)

func TestMatcherMatches(t *testing.T) {
	m := DefaultMatcher()

	tests := []struct {
		name     string
		caps     joyquery.Capabilities
		expected bool
	}{
		{"Exact name", joyquery.Capabilities{Name: "Test Gamepad"}, true},
		{"Name substring", joyquery.Capabilities{Name: "FNUI Test Gamepad VID1234PID"}, true},
		{"Case-insensitive name", joyquery.Capabilities{Name: "test gamepad"}, true},
		{"vJoy name", joyquery.Capabilities{Name: "vJoy Device"}, true},
		{"vJoy case-insensitive", joyquery.Capabilities{Name: "VJOY DEVICE"}, true},
		{"Vendor/product pair", joyquery.Capabilities{Name: "Generic", VendorID: 0x1234, ProductID: 0xBEAD}, true},
		{"Vendor only", joyquery.Capabilities{Name: "Generic", VendorID: 0x1234, ProductID: 0x0001}, false},
		{"Product only", joyquery.Capabilities{Name: "Generic", VendorID: 0x0001, ProductID: 0xBEAD}, false},
		{"Unrelated device", joyquery.Capabilities{Name: "Xbox 360 Controller", VendorID: 0x045E, ProductID: 0x028E}, false},
		{"Empty descriptor", joyquery.Capabilities{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Matches(tt.caps); got != tt.expected {
				t.Errorf("Matches(%q VID=0x%04X PID=0x%04X) = %v, want %v",
					tt.caps.Name, tt.caps.VendorID, tt.caps.ProductID, got, tt.expected)
			}
		})
	}
}

func TestMatcherCustomPatterns(t *testing.T) {
	m := Matcher{NamePatterns: []string{"FNUI Wheel"}, VendorID: 0xABCD, ProductID: 0x0001}

	if !m.Matches(joyquery.Capabilities{Name: "fnui wheel rev2"}) {
		t.Error("custom pattern did not match")
	}
	if m.Matches(joyquery.Capabilities{Name: "Test Gamepad"}) {
		t.Error("default pattern matched with custom matcher")
	}
}

func TestSelectPrefersMatchWithButtons(t *testing.T) {
	m := DefaultMatcher()

	tests := []struct {
		name        string
		devs        []Descriptor
		wantFound   bool
		wantID      int
		wantButtons uint32
	}{
		{
			name: "later match with buttons beats earlier degenerate match",
			devs: []Descriptor{
				{ID: 0, Caps: joyquery.Capabilities{Name: "vJoy Device", NumButtons: 0, NumAxes: 2}},
				{ID: 2, Caps: joyquery.Capabilities{Name: "Test Gamepad", NumButtons: 8, NumAxes: 4}},
			},
			wantFound: true, wantID: 2, wantButtons: 8,
		},
		{
			name: "first match with buttons wins outright",
			devs: []Descriptor{
				{ID: 0, Caps: joyquery.Capabilities{Name: "Test Gamepad", NumButtons: 32, NumAxes: 8}},
				{ID: 1, Caps: joyquery.Capabilities{Name: "vJoy Device", NumButtons: 8, NumAxes: 4}},
			},
			wantFound: true, wantID: 0, wantButtons: 32,
		},
		{
			name: "all matches degenerate keeps the first",
			devs: []Descriptor{
				{ID: 1, Caps: joyquery.Capabilities{Name: "vJoy Device", NumButtons: 0}},
				{ID: 3, Caps: joyquery.Capabilities{Name: "Test Gamepad", NumButtons: 0}},
			},
			wantFound: true, wantID: 1, wantButtons: 0,
		},
		{
			name: "non-matching devices are ignored",
			devs: []Descriptor{
				{ID: 0, Caps: joyquery.Capabilities{Name: "Xbox 360 Controller", NumButtons: 10}},
				{ID: 1, Caps: joyquery.Capabilities{Name: "Test Gamepad", NumButtons: 8, NumAxes: 4}},
			},
			wantFound: true, wantID: 1, wantButtons: 8,
		},
		{
			name: "no match is a normal outcome",
			devs: []Descriptor{
				{ID: 0, Caps: joyquery.Capabilities{Name: "Xbox 360 Controller", NumButtons: 10}},
			},
			wantFound: false,
		},
		{
			name:      "empty enumeration",
			devs:      nil,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := m.Select(tt.devs)
			if match.Found != tt.wantFound {
				t.Fatalf("Select found = %v, want %v", match.Found, tt.wantFound)
			}
			if !tt.wantFound {
				return
			}
			if match.ID != tt.wantID {
				t.Errorf("Select id = %d, want %d", match.ID, tt.wantID)
			}
			if match.Buttons != tt.wantButtons {
				t.Errorf("Select buttons = %d, want %d", match.Buttons, tt.wantButtons)
			}
		})
	}
}
