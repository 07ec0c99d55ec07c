//go:build windows

package joyquery

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	joyReturnAll = 0x000000FF // JOY_RETURNALL

	maxPnameLen      = 32  // MAXPNAMELEN
	maxOEMVxDNameLen = 260 // MAX_JOYSTICKOEMVXDNAME
)

// joyCapsW mirrors the winmm JOYCAPSW structure.
type joyCapsW struct {
	Mid        uint16
	Pid        uint16
	Pname      [maxPnameLen]uint16
	XMin       uint32
	XMax       uint32
	YMin       uint32
	YMax       uint32
	ZMin       uint32
	ZMax       uint32
	NumButtons uint32
	PeriodMin  uint32
	PeriodMax  uint32
	RMin       uint32
	RMax       uint32
	UMin       uint32
	UMax       uint32
	VMin       uint32
	VMax       uint32
	Caps       uint32
	MaxAxes    uint32
	NumAxes    uint32
	MaxButtons uint32
	RegKey     [maxPnameLen]uint16
	OEMVxD     [maxOEMVxDNameLen]uint16
}

// joyInfoEx mirrors the winmm JOYINFOEX structure.
type joyInfoEx struct {
	Size         uint32
	Flags        uint32
	XPos         uint32
	YPos         uint32
	ZPos         uint32
	RPos         uint32
	UPos         uint32
	VPos         uint32
	Buttons      uint32
	ButtonNumber uint32
	POV          uint32
	Reserved1    uint32
	Reserved2    uint32
}

var (
	winmm              = windows.NewLazySystemDLL("winmm.dll")
	procJoyGetNumDevs  = winmm.NewProc("joyGetNumDevs")
	procJoyGetDevCapsW = winmm.NewProc("joyGetDevCapsW")
	procJoyGetPosEx    = winmm.NewProc("joyGetPosEx")
)

// WinMM queries joysticks through the winmm.dll multimedia joystick API, the
// same surface Wine's winebus translation presents to Windows programs.
type WinMM struct{}

// NewWinMM loads winmm.dll and returns a querier backed by it.
func NewWinMM() (*WinMM, error) {
	if err := winmm.Load(); err != nil {
		return nil, fmt.Errorf("winmm backend: %w", err)
	}
	return &WinMM{}, nil
}

// NumDevices returns the driver slot bound (joyGetNumDevs), typically 16.
func (*WinMM) NumDevices() int {
	n, _, _ := procJoyGetNumDevs.Call()
	return int(n)
}

func (*WinMM) Capabilities(id int) (Capabilities, error) {
	var caps joyCapsW
	ret, _, _ := procJoyGetDevCapsW.Call(uintptr(id), uintptr(unsafe.Pointer(&caps)), unsafe.Sizeof(caps))
	if ret != 0 {
		return Capabilities{}, fmt.Errorf("joyGetDevCapsW(%d) failed: MMRESULT %d", id, ret)
	}
	return Capabilities{
		Name:       windows.UTF16ToString(caps.Pname[:]),
		VendorID:   caps.Mid,
		ProductID:  caps.Pid,
		NumAxes:    caps.NumAxes,
		NumButtons: caps.NumButtons,
		MaxAxes:    caps.MaxAxes,
		MaxButtons: caps.MaxButtons,
	}, nil
}

func (*WinMM) State(id int) (State, error) {
	var info joyInfoEx
	info.Size = uint32(unsafe.Sizeof(info))
	info.Flags = joyReturnAll
	ret, _, _ := procJoyGetPosEx.Call(uintptr(id), uintptr(unsafe.Pointer(&info)))
	if ret != 0 {
		return State{}, fmt.Errorf("joyGetPosEx(%d) failed: MMRESULT %d", id, ret)
	}
	return State{
		Axes:    [NumAxes]uint32{info.XPos, info.YPos, info.ZPos, info.RPos, info.UPos, info.VPos},
		Buttons: info.Buttons,
	}, nil
}
