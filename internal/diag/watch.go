package diag

import (
	"context"
	"sync"
	"time"

	"github.com/PhialsBasement/fnuipad-VR/internal/joyquery"
)

// Snapshot is one live poll of the watched device as seen by stream
// consumers. Connected false means the poll (or the capability probe before
// it) failed.
type Snapshot struct {
	Connected bool                     `json:"connected"`
	Name      string                   `json:"name,omitempty"`
	Axes      [joyquery.NumAxes]uint32 `json:"axes"`
	Buttons   uint32                   `json:"buttons"`
}

// Watcher continuously polls one device slot and emits snapshots on a channel
// for live consumers. Unlike Collector it has no fixed iteration count; it
// runs until its context is cancelled. Polls that report the same state as
// the previous one are not re-emitted.
type Watcher struct {
	querier  joyquery.Querier
	deviceID int
	interval time.Duration
	changes  chan Snapshot

	mu   sync.RWMutex
	last Snapshot
	name string
}

func NewWatcher(q joyquery.Querier, deviceID int, interval time.Duration) *Watcher {
	return &Watcher{
		querier:  q,
		deviceID: deviceID,
		interval: interval,
		changes:  make(chan Snapshot, 64),
	}
}

// Changes returns the channel on which state changes are sent.
func (w *Watcher) Changes() <-chan Snapshot {
	return w.changes
}

// Current returns the most recently observed snapshot.
func (w *Watcher) Current() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.last
}

// Run polls the device at the configured interval until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.poll()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *Watcher) poll() {
	// The display name comes from the capability probe; re-probe until the
	// device shows up so late attachment is picked up.
	if w.name == "" {
		if caps, err := w.querier.Capabilities(w.deviceID); err == nil {
			w.name = caps.Name
		}
	}

	var snap Snapshot
	if st, err := w.querier.State(w.deviceID); err == nil {
		snap = Snapshot{Connected: true, Name: w.name, Axes: st.Axes, Buttons: st.Buttons}
	}

	w.mu.Lock()
	if snap == w.last {
		w.mu.Unlock()
		return
	}
	w.last = snap
	w.mu.Unlock()

	select {
	case w.changes <- snap:
	default:
		// Drop if the channel is full rather than stall the poll loop.
	}
}
