package amqp

import (
	"encoding/json"
	"time"
)

// BackupMessage asks the worker to back up one user's ledger. It carries
// only the key and a reason; the worker fetches the current snapshot from
// the store, so a burst of mutations collapses into whichever snapshot is
// live when the message is handled.
type BackupMessage struct {
	UserKey   string    `json:"user_key"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// NewBackupMessage creates a backup request for the given user key.
func NewBackupMessage(userKey, reason string) *BackupMessage {
	return &BackupMessage{
		UserKey:   userKey,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *BackupMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BackupMessageFromJSON creates a message from JSON bytes.
func BackupMessageFromJSON(data []byte) (*BackupMessage, error) {
	var msg BackupMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
