package hub

import (
	"encoding/json"
	"log"
	"time"

	"github.com/PhialsBasement/fnuipad-VR/internal/diag"
)

// resyncInterval is how often the last snapshot is rebroadcast even without a
// change, so clients that missed a frame converge.
const resyncInterval = 5 * time.Second

// Broadcaster listens for device snapshots and broadcasts them to the hub.
type Broadcaster struct {
	hub          *Hub
	changes      <-chan diag.Snapshot
	lastSnapshot diag.Snapshot
	seq          int64
}

func NewBroadcaster(h *Hub, changes <-chan diag.Snapshot) *Broadcaster {
	return &Broadcaster{
		hub:     h,
		changes: changes,
	}
}

// Run starts the broadcaster loop. Should be run in a goroutine.
func (b *Broadcaster) Run() {
	ticker := time.NewTicker(resyncInterval)
	defer ticker.Stop()

	for {
		select {
		case snap, ok := <-b.changes:
			if !ok {
				return
			}
			b.lastSnapshot = snap
			b.seq++
			b.send(snap)

		case <-ticker.C:
			if b.lastSnapshot.Connected {
				b.seq++
				b.send(b.lastSnapshot)
			}
		}
	}
}

// SendInitialState sends the current snapshot to a newly connected client.
func (b *Broadcaster) SendInitialState(c *Client) {
	b.seq++
	msg := NewSampleMessage(b.seq, &b.lastSnapshot)
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling initial snapshot: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (b *Broadcaster) send(snap diag.Snapshot) {
	msg := NewSampleMessage(b.seq, &snap)
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling snapshot: %v", err)
		return
	}
	b.hub.Broadcast(data)
}
