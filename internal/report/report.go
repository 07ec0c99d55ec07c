// Package report renders diagnostic results as ordered KEY=VALUE lines.
// Counts are unsigned decimal, vendor/product ids are 0x%04X and bitmasks
// 0x%08X, so a wrapping process can parse the output without locale or
// formatting ambiguity.
package report

import (
	"fmt"
	"io"
	"math/bits"
	"time"

	"github.com/PhialsBasement/fnuipad-VR/internal/diag"
	"github.com/PhialsBasement/fnuipad-VR/internal/joyquery"
)

// Emitter writes KEY=VALUE lines in call order with a sticky error, so a
// report function can emit its whole fixed sequence and check once.
type Emitter struct {
	w   io.Writer
	err error
}

func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

func (e *Emitter) line(key, value string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, "%s=%s\n", key, value)
}

func (e *Emitter) Str(key, value string) { e.line(key, value) }

func (e *Emitter) Int(key string, v int) { e.line(key, fmt.Sprintf("%d", v)) }

func (e *Emitter) Uint(key string, v uint64) { e.line(key, fmt.Sprintf("%d", v)) }

func (e *Emitter) Hex16(key string, v uint16) { e.line(key, fmt.Sprintf("0x%04X", v)) }

func (e *Emitter) Hex32(key string, v uint32) { e.line(key, fmt.Sprintf("0x%08X", v)) }

// Err returns the first write error, if any.
func (e *Emitter) Err() error { return e.err }

// WriteEnumeration emits the device listing: the probed slot bound, one block
// per slot that answered its capability query, the found count, then the
// test-device identification summary.
func WriteEnumeration(w io.Writer, bound int, devs []diag.Descriptor, match diag.Match) error {
	e := NewEmitter(w)
	e.Int("NUM_DEVS", bound)
	for _, d := range devs {
		prefix := fmt.Sprintf("JOY_%d", d.ID)
		e.Str(prefix+"_NAME", d.Caps.Name)
		e.Uint(prefix+"_BUTTONS", uint64(d.Caps.NumButtons))
		e.Uint(prefix+"_AXES", uint64(d.Caps.NumAxes))
		e.Uint(prefix+"_MAXBUTTONS", uint64(d.Caps.MaxButtons))
		e.Uint(prefix+"_MAXAXES", uint64(d.Caps.MaxAxes))
		e.Hex16(prefix+"_VID", d.Caps.VendorID)
		e.Hex16(prefix+"_PID", d.Caps.ProductID)
	}
	e.Int("FOUND_COUNT", len(devs))
	if match.Found {
		e.Int("TEST_FOUND", 1)
	} else {
		e.Int("TEST_FOUND", 0)
	}
	e.Uint("TEST_BUTTONS", uint64(match.Buttons))
	e.Uint("TEST_AXES", uint64(match.Axes))
	return e.Err()
}

// WriteSampling emits the sampling report: capability header, the first and
// last successful raw samples, success/error counters, then the per-axis
// ranges and the cumulative button mask. Axis and button aggregates are
// omitted entirely when no poll succeeded.
func WriteSampling(w io.Writer, deviceID, samples int, delay time.Duration, res *diag.Result) error {
	e := NewEmitter(w)
	e.Int("JOY_ID", deviceID)
	e.Str("JOY_NAME", res.Caps.Name)
	e.Hex16("JOY_VID", res.Caps.VendorID)
	e.Hex16("JOY_PID", res.Caps.ProductID)
	e.Uint("JOY_AXES", uint64(res.Caps.NumAxes))
	e.Uint("JOY_BUTTONS", uint64(res.Caps.NumButtons))
	e.Int("SAMPLES", samples)
	e.Int("DELAY_MS", int(delay.Milliseconds()))

	if res.First != nil {
		writeSample(e, res.First)
		if res.Last != nil && res.Last.Iteration != res.First.Iteration {
			writeSample(e, res.Last)
		}
	}

	e.Int("READ_SUCCESS", res.Stats.Successes)
	e.Int("READ_ERRORS", res.Stats.Errors)

	if res.Stats.Successes > 0 {
		for _, axis := range joyquery.AxisOrder {
			r := res.Stats.AxisRanges[axis]
			e.Uint(axis.String()+"_MIN", uint64(r.Min))
			e.Uint(axis.String()+"_MAX", uint64(r.Max))
			e.Uint(axis.String()+"_RANGE", uint64(r.Max-r.Min))
		}
		e.Hex32("BUTTONS_PRESSED", res.Stats.Buttons)
		e.Int("BUTTON_COUNT", bits.OnesCount32(res.Stats.Buttons))
	}
	return e.Err()
}

// WriteNoDevice emits the absent-device report for a failed initial probe.
func WriteNoDevice(w io.Writer, deviceID int) error {
	e := NewEmitter(w)
	e.Str("ERROR", "NO_DEVICE")
	e.Int("JOY_ID", deviceID)
	return e.Err()
}

func writeSample(e *Emitter, rec *diag.SampleRecord) {
	prefix := fmt.Sprintf("SAMPLE_%d", rec.Iteration)
	for i, axis := range joyquery.AxisOrder {
		e.Uint(prefix+"_"+axis.String(), uint64(rec.State.Axes[i]))
	}
	e.Hex32(prefix+"_BUTTONS", rec.State.Buttons)
}
