// Package hidscan enumerates joystick-class HID interfaces. It is a
// cross-check one layer below the legacy joystick API: if the virtual device
// shows up here but not in the slot scan, the translation layer is the part
// that lost it.
package hidscan

import (
	"fmt"
	"io"

	"github.com/sstallion/go-hid"

	"github.com/PhialsBasement/fnuipad-VR/internal/report"
)

const (
	usagePageGenericDesktop = 0x0001
	usageJoystick           = 0x04
	usageGamepad            = 0x05
)

// IsJoystickInterface reports whether a HID interface describes a
// joystick-class device (generic desktop page, joystick or gamepad usage).
func IsJoystickInterface(info *hid.DeviceInfo) bool {
	if info.UsagePage != usagePageGenericDesktop {
		return false
	}
	return info.Usage == usageJoystick || info.Usage == usageGamepad
}

// Scan enumerates all HID interfaces and returns the joystick-class ones in
// enumeration order.
func Scan() ([]*hid.DeviceInfo, error) {
	if err := hid.Init(); err != nil {
		return nil, fmt.Errorf("hid init: %w", err)
	}
	defer hid.Exit()

	var found []*hid.DeviceInfo
	err := hid.Enumerate(0, 0, func(info *hid.DeviceInfo) error {
		if IsJoystickInterface(info) {
			c := *info
			found = append(found, &c)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("hid enumerate: %w", err)
	}
	return found, nil
}

// Write emits the HID cross-check listing as KEY=VALUE lines.
func Write(w io.Writer, infos []*hid.DeviceInfo) error {
	e := report.NewEmitter(w)
	e.Int("HID_COUNT", len(infos))
	for i, info := range infos {
		prefix := fmt.Sprintf("HID_%d", i)
		e.Str(prefix+"_PATH", info.Path)
		e.Hex16(prefix+"_VID", info.VendorID)
		e.Hex16(prefix+"_PID", info.ProductID)
		e.Str(prefix+"_PRODUCT", info.ProductStr)
		e.Str(prefix+"_MFR", info.MfrStr)
		e.Hex16(prefix+"_USAGEPAGE", info.UsagePage)
		e.Hex16(prefix+"_USAGE", info.Usage)
	}
	return e.Err()
}
