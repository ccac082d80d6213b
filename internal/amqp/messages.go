package amqp

import (
	"encoding/json"
	"time"
)

// SnapshotSavedMessage tells the sync worker that an identity's snapshot
// changed. It carries no payload; the worker pulls the current snapshot
// from the store, so a stale message at worst triggers a redundant mirror
// pass.
type SnapshotSavedMessage struct {
	Identity  string    `json:"identity"`
	TxCount   int       `json:"txCount"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSnapshotSavedMessage(identity string, txCount int) *SnapshotSavedMessage {
	return &SnapshotSavedMessage{
		Identity:  identity,
		TxCount:   txCount,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SnapshotSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SnapshotSavedMessageFromJSON creates a message from JSON bytes
func SnapshotSavedMessageFromJSON(data []byte) (*SnapshotSavedMessage, error) {
	var msg SnapshotSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
