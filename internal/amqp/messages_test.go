package amqp

import (
	"context"
	"testing"
)

func TestLedgerEventRoundTrip(t *testing.T) {
	e := NewLedgerEvent(KindTransactionCreated, "tx-42")
	data, err := e.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := LedgerEventFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Kind != KindTransactionCreated || got.ID != "tx-42" {
		t.Fatalf("got %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Fatalf("timestamp not carried")
	}
}

func TestLedgerEventFromJSONRejectsGarbage(t *testing.T) {
	if _, err := LedgerEventFromJSON([]byte("{nope")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNilClientIsSafe(t *testing.T) {
	var c *Client
	if err := c.PublishLedgerEvent(context.Background(), KindGoalDeposit, "g1"); err != nil {
		t.Fatalf("nil publish: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
}
