package amqp

import (
	"testing"
)

func TestBackupMessageRoundTrip(t *testing.T) {
	msg := NewBackupMessage("alice", "transaction_added")
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := BackupMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.UserKey != "alice" || got.Reason != "transaction_added" {
		t.Fatalf("unexpected message: %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}
}

func TestBackupMessageFromJSONInvalid(t *testing.T) {
	if _, err := BackupMessageFromJSON([]byte("{broken")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
