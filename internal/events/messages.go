package events

import (
	"encoding/json"
	"time"
)

// Actions carried by ledger change events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// LedgerEvent represents a lightweight notification that a ledger row changed.
// Contains only the table, action and row ID; consumers fetch the full row if
// they need it.
type LedgerEvent struct {
	Ledger    string    `json:"ledger"`
	Action    string    `json:"action"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerEvent creates a change event stamped with the current time.
func NewLedgerEvent(ledger, action, id string) *LedgerEvent {
	return &LedgerEvent{
		Ledger:    ledger,
		Action:    action,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON creates an event from JSON bytes
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var ev LedgerEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
