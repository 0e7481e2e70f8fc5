package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SnapshotVersion is the current on-disk schema version. Deserialization
// rejects anything else rather than guessing.
const SnapshotVersion = 1

// ErrCorruptSnapshot is returned when persisted data does not match the
// snapshot schema. It is deliberately loud: a half-readable snapshot must
// never be silently coerced into an empty ledger.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

type (
	// Snapshot is the flat, serializable representation of a ledger's full
	// state. Round-tripping through Encode/DecodeSnapshot is lossless.
	Snapshot struct {
		Version      int                `json:"version"`
		Categories   []string           `json:"categories"`
		Transactions []SnapshotTx       `json:"transactions"`
		Activity     []SnapshotActivity `json:"activity,omitempty"`
	}

	SnapshotTx struct {
		ID          string `json:"id"`
		Date        string `json:"date"` // YYYY-MM-DD
		AmountCents int64  `json:"amount_cents"`
		Kind        string `json:"kind"`
		Category    string `json:"category"`
		Description string `json:"description,omitempty"`
	}

	SnapshotActivity struct {
		At      time.Time `json:"at"`
		Message string    `json:"message"`
	}
)

// Snapshot captures the ledger's full state.
func (l *Ledger) Snapshot() Snapshot {
	s := Snapshot{
		Version:      SnapshotVersion,
		Categories:   append([]string(nil), l.categories...),
		Transactions: make([]SnapshotTx, 0, len(l.transactions)),
	}
	for _, tx := range l.transactions {
		s.Transactions = append(s.Transactions, SnapshotTx{
			ID:          tx.ID,
			Date:        tx.Date.String(),
			AmountCents: tx.Amount.Cents,
			Kind:        string(tx.Kind),
			Category:    tx.Category,
			Description: tx.Description,
		})
	}
	for _, a := range l.activity {
		s.Activity = append(s.Activity, SnapshotActivity{At: a.At, Message: a.Message})
	}
	return s
}

// FromSnapshot rebuilds a ledger for the given user key. Any shape mismatch
// fails with ErrCorruptSnapshot.
func FromSnapshot(key string, s Snapshot) (*Ledger, error) {
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, s.Version)
	}
	if s.Categories == nil || s.Transactions == nil {
		return nil, fmt.Errorf("%w: missing categories or transactions", ErrCorruptSnapshot)
	}
	seen := make(map[string]bool, len(s.Categories))
	for _, c := range s.Categories {
		if c == "" || seen[c] {
			return nil, fmt.Errorf("%w: empty or duplicate category %q", ErrCorruptSnapshot, c)
		}
		seen[c] = true
	}
	l := &Ledger{
		key:        key,
		categories: append([]string(nil), s.Categories...),
		now:        time.Now,
		newID:      uuid.NewString,
	}
	ids := make(map[string]bool, len(s.Transactions))
	for i, st := range s.Transactions {
		if st.ID == "" || ids[st.ID] {
			return nil, fmt.Errorf("%w: transaction %d has empty or duplicate id", ErrCorruptSnapshot, i)
		}
		ids[st.ID] = true
		date, err := ParseDate(st.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: transaction %s has bad date %q", ErrCorruptSnapshot, st.ID, st.Date)
		}
		tx := Transaction{
			ID:          st.ID,
			Date:        date,
			Amount:      Money{Cents: st.AmountCents},
			Kind:        Kind(st.Kind),
			Category:    st.Category,
			Description: st.Description,
		}
		if err := tx.Amount.Validate(); err != nil {
			return nil, fmt.Errorf("%w: transaction %s has non-positive amount", ErrCorruptSnapshot, st.ID)
		}
		if err := tx.Kind.Validate(); err != nil {
			return nil, fmt.Errorf("%w: transaction %s has kind %q", ErrCorruptSnapshot, st.ID, st.Kind)
		}
		l.transactions = append(l.transactions, tx)
	}
	for _, a := range s.Activity {
		l.activity = append(l.activity, ActivityEntry{At: a.At, Message: a.Message})
	}
	if len(l.activity) > activityCap {
		l.activity = l.activity[:activityCap]
	}
	return l, nil
}

// EncodeSnapshot marshals a snapshot to its persisted JSON form.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSnapshot unmarshals persisted bytes, failing with ErrCorruptSnapshot
// on malformed JSON or wrong field types. Shape validation happens in
// FromSnapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return s, nil
}
