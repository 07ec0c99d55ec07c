package diag

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PhialsBasement/fnuipad-VR/internal/joyquery"
)

var errFakeRead = errors.New("fake: read failed")

func testCaps() map[int]joyquery.Capabilities {
	return map[int]joyquery.Capabilities{
		0: {Name: "Test Gamepad", VendorID: 0x1234, ProductID: 0xBEAD, NumAxes: 6, NumButtons: 32},
	}
}

func TestCollectorAxisRanges(t *testing.T) {
	q := &fakeQuerier{
		caps: testCaps(),
		polls: []pollResult{
			{state: axes(10, 0x1)},
			{state: axes(50, 0x2)},
			{state: axes(30, 0x0)},
			{state: axes(70, 0x4)},
			{state: axes(20, 0x0)},
		},
	}
	c := &Collector{Querier: q, DeviceID: 0, Samples: 5}

	res, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.Stats.Successes != 5 || res.Stats.Errors != 0 {
		t.Fatalf("successes/errors = %d/%d, want 5/0", res.Stats.Successes, res.Stats.Errors)
	}

	x := res.Stats.AxisRanges[joyquery.AxisX]
	if x.Min != 10 || x.Max != 70 {
		t.Errorf("X range = [%d, %d], want [10, 70]", x.Min, x.Max)
	}
	y := res.Stats.AxisRanges[joyquery.AxisY]
	if y.Min != 32768 || y.Max != 32768 {
		t.Errorf("Y range = [%d, %d], want [32768, 32768]", y.Min, y.Max)
	}

	if res.Stats.Buttons != 0x7 {
		t.Errorf("button union = 0x%X, want 0x7", res.Stats.Buttons)
	}

	if res.First == nil || res.Last == nil {
		t.Fatal("first/last samples not retained")
	}
	if res.First.Iteration != 0 || res.First.State.Axes[joyquery.AxisX] != 10 {
		t.Errorf("first sample = iter %d X %d, want iter 0 X 10",
			res.First.Iteration, res.First.State.Axes[joyquery.AxisX])
	}
	if res.Last.Iteration != 4 || res.Last.State.Axes[joyquery.AxisX] != 20 {
		t.Errorf("last sample = iter %d X %d, want iter 4 X 20",
			res.Last.Iteration, res.Last.State.Axes[joyquery.AxisX])
	}
}

func TestCollectorCountsFailedPolls(t *testing.T) {
	q := &fakeQuerier{
		caps: testCaps(),
		polls: []pollResult{
			{err: errFakeRead},
			{state: axes(40, 0x10)},
			{err: errFakeRead},
			{state: axes(60, 0x20)},
			{err: errFakeRead},
		},
	}
	c := &Collector{Querier: q, DeviceID: 0, Samples: 5}

	res, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.Stats.Successes != 2 || res.Stats.Errors != 3 {
		t.Fatalf("successes/errors = %d/%d, want 2/3", res.Stats.Successes, res.Stats.Errors)
	}
	x := res.Stats.AxisRanges[joyquery.AxisX]
	if x.Min != 40 || x.Max != 60 {
		t.Errorf("X range = [%d, %d], want [40, 60] over successes only", x.Min, x.Max)
	}
	if res.Stats.Buttons != 0x30 {
		t.Errorf("button union = 0x%X, want 0x30", res.Stats.Buttons)
	}
	if res.First.Iteration != 1 || res.Last.Iteration != 3 {
		t.Errorf("first/last iterations = %d/%d, want 1/3", res.First.Iteration, res.Last.Iteration)
	}
}

func TestCollectorSingleSuccessServesAsFirstAndLast(t *testing.T) {
	q := &fakeQuerier{
		caps: testCaps(),
		polls: []pollResult{
			{err: errFakeRead},
			{state: axes(123, 0x1)},
			{err: errFakeRead},
		},
	}
	c := &Collector{Querier: q, DeviceID: 0, Samples: 3}

	res, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.First != res.Last {
		t.Error("single success should serve as both first and last sample")
	}
	if res.First.Iteration != 1 {
		t.Errorf("retained iteration = %d, want 1", res.First.Iteration)
	}
}

func TestCollectorAllPollsFail(t *testing.T) {
	q := &fakeQuerier{
		caps:  testCaps(),
		polls: []pollResult{{err: errFakeRead}, {err: errFakeRead}},
	}
	c := &Collector{Querier: q, DeviceID: 0, Samples: 2}

	res, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Stats.Successes != 0 || res.Stats.Errors != 2 {
		t.Errorf("successes/errors = %d/%d, want 0/2", res.Stats.Successes, res.Stats.Errors)
	}
	if len(res.Stats.AxisRanges) != 0 {
		t.Errorf("axis ranges populated with %d entries despite zero successes", len(res.Stats.AxisRanges))
	}
	if res.First != nil || res.Last != nil {
		t.Error("no sample should be retained when every poll fails")
	}
}

func TestCollectorNoDevice(t *testing.T) {
	q := &fakeQuerier{caps: map[int]joyquery.Capabilities{}}
	c := &Collector{Querier: q, DeviceID: 3, Samples: 5}

	res, err := c.Run(context.Background())
	if !errors.Is(err, ErrNoDevice) {
		t.Fatalf("Run() error = %v, want ErrNoDevice", err)
	}
	if res != nil {
		t.Error("result should be nil when the probe fails")
	}
	if q.next != 0 {
		t.Errorf("%d polls issued after a failed probe, want 0", q.next)
	}
}

func TestCollectorZeroSamples(t *testing.T) {
	q := &fakeQuerier{caps: testCaps()}
	c := &Collector{Querier: q, DeviceID: 0, Samples: 0}

	res, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Stats.Successes != 0 || res.Stats.Errors != 0 {
		t.Errorf("successes/errors = %d/%d, want 0/0", res.Stats.Successes, res.Stats.Errors)
	}
}

func TestCollectorCancellation(t *testing.T) {
	q := &fakeQuerier{
		caps:  testCaps(),
		polls: []pollResult{{state: axes(10, 0)}, {state: axes(20, 0)}},
	}
	c := &Collector{Querier: q, DeviceID: 0, Samples: 2, Delay: 50 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := c.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if res != nil {
		t.Error("cancelled run must not return a partial result")
	}
}

func TestAggregateButtonUnionIsMonotonic(t *testing.T) {
	agg := NewAggregate()

	masks := []uint32{0x1, 0x4, 0x1, 0x80000000, 0x0, 0x2}
	var prev uint32
	for _, m := range masks {
		agg.Fold(axes(0, m))
		if agg.Buttons&prev != prev {
			t.Fatalf("button union lost bits: had 0x%X, now 0x%X", prev, agg.Buttons)
		}
		prev = agg.Buttons
	}
	if agg.Buttons != 0x80000007 {
		t.Errorf("button union = 0x%X, want 0x80000007", agg.Buttons)
	}
}
