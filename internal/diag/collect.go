package diag

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PhialsBasement/fnuipad-VR/internal/joyquery"
)

// ErrNoDevice reports that the capability probe for the requested slot failed
// before any sampling took place.
var ErrNoDevice = errors.New("device not present")

// Range tracks the observed minimum and maximum position of one axis.
type Range struct {
	Min uint32
	Max uint32
}

// SampleRecord is one successful poll retained verbatim, together with the
// iteration it came from.
type SampleRecord struct {
	Iteration int
	State     joyquery.State
}

// Aggregate accumulates statistics over the successful polls of one run.
// AxisRanges has an entry per axis once at least one poll succeeded and is
// empty otherwise. Buttons is the bitwise union of every successful poll's
// mask and only ever gains bits.
type Aggregate struct {
	AxisRanges map[joyquery.Axis]Range
	Buttons    uint32
	Successes  int
	Errors     int
}

// NewAggregate returns an empty aggregate ready to fold samples into.
func NewAggregate() *Aggregate {
	return &Aggregate{AxisRanges: make(map[joyquery.Axis]Range, joyquery.NumAxes)}
}

// Fold merges one successful poll into the aggregate.
func (a *Aggregate) Fold(st joyquery.State) {
	for i, axis := range joyquery.AxisOrder {
		pos := st.Axes[i]
		r, ok := a.AxisRanges[axis]
		if !ok {
			r = Range{Min: pos, Max: pos}
		} else {
			if pos < r.Min {
				r.Min = pos
			}
			if pos > r.Max {
				r.Max = pos
			}
		}
		a.AxisRanges[axis] = r
	}
	a.Buttons |= st.Buttons
	a.Successes++
}

// Collector polls a single device slot a fixed number of times with a real
// delay between polls. Every poll is classified independently: a failed poll
// only increments the error counter and never stops the run.
type Collector struct {
	Querier  joyquery.Querier
	DeviceID int
	Samples  int
	Delay    time.Duration
}

// Result is the outcome of one collection run.
type Result struct {
	Caps  joyquery.Capabilities
	Stats *Aggregate
	First *SampleRecord // earliest successful poll, nil if none succeeded
	Last  *SampleRecord // latest successful poll; equals First for a single success
}

// Run probes the slot once and, if the device is present, performs the
// configured polls in strict sequence. A failing probe returns ErrNoDevice
// and no sampling happens. The run completes all iterations unless ctx is
// cancelled, in which case ctx's error is returned and the partial result
// discarded.
func (c *Collector) Run(ctx context.Context) (*Result, error) {
	caps, err := c.Querier.Capabilities(c.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDevice, err)
	}

	res := &Result{Caps: caps, Stats: NewAggregate()}
	for i := 0; i < c.Samples; i++ {
		st, err := c.Querier.State(c.DeviceID)
		if err != nil {
			res.Stats.Errors++
		} else {
			res.Stats.Fold(st)
			rec := &SampleRecord{Iteration: i, State: st}
			if res.First == nil {
				res.First = rec
			}
			res.Last = rec
		}

		if err := sleep(ctx, c.Delay); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// sleep waits for d while observing cancellation.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
