package hub

import (
	"time"

	"github.com/PhialsBasement/fnuipad-VR/internal/diag"
)

// WSMessage is one server-to-client frame on the watch stream.
type WSMessage struct {
	Type      string         `json:"type"`      // "sample" for a poll snapshot
	Seq       int64          `json:"seq"`       // Sequence number for ordering
	Timestamp int64          `json:"timestamp"` // Unix timestamp in milliseconds
	Snapshot  *diag.Snapshot `json:"snapshot,omitempty"`
}

// NewSampleMessage wraps a poll snapshot for the wire.
func NewSampleMessage(seq int64, snap *diag.Snapshot) *WSMessage {
	return &WSMessage{
		Type:      "sample",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Snapshot:  snap,
	}
}
