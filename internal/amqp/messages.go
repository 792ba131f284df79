package amqp

import (
	"encoding/json"
	"time"
)

// Event kinds carried on the ledger exchange.
const (
	KindTransactionCreated = "transaction_created"
	KindGoalDeposit        = "goal_deposit"
)

// LedgerEvent is a lightweight notification: only the kind and the id.
// Consumers fetch the full record from storage, so a stale or replayed
// event is harmless.
type LedgerEvent struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEvent(kind, id string) *LedgerEvent {
	return &LedgerEvent{Kind: kind, ID: id, Timestamp: time.Now()}
}

func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
