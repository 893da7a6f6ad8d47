package amqp

import (
	"encoding/json"
	"time"

	"github.com/simaogato/networth-backend/internal/domain"
)

// SnapshotRoutingKey is the routing key of snapshot events
const SnapshotRoutingKey = "networth.snapshot.recorded"

// SnapshotRecordedMessage is published after a net worth entry has been stored
type SnapshotRecordedMessage struct {
	Date             string    `json:"date"`
	TotalAssets      string    `json:"total_assets"`
	TotalLiabilities string    `json:"total_liabilities"`
	NetWorth         string    `json:"net_worth"`
	RecordedAt       time.Time `json:"recorded_at"`
}

// NewSnapshotRecordedMessage creates the event for a stored entry
func NewSnapshotRecordedMessage(entry domain.NetWorthEntry) *SnapshotRecordedMessage {
	recordedAt := entry.CreatedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	return &SnapshotRecordedMessage{
		Date:             entry.Date,
		TotalAssets:      entry.TotalAssets.String(),
		TotalLiabilities: entry.TotalLiabilities.String(),
		NetWorth:         entry.NetWorth.String(),
		RecordedAt:       recordedAt.UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SnapshotRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SnapshotRecordedMessageFromJSON creates a message from JSON bytes
func SnapshotRecordedMessageFromJSON(data []byte) (*SnapshotRecordedMessage, error) {
	var msg SnapshotRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
