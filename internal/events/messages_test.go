package events

import (
	"strings"
	"testing"
	"time"
)

func TestMutationRoundTrip(t *testing.T) {
	msg := NewMutation(EntityPot, OpWithdraw, "pot-1", 7).WithAmount(2500)

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	got, err := MutationFromJSON(body)
	if err != nil {
		t.Fatalf("MutationFromJSON() error = %v", err)
	}
	if got.Entity != EntityPot || got.Op != OpWithdraw || got.ID != "pot-1" {
		t.Errorf("got %+v", got)
	}
	if got.Revision != 7 {
		t.Errorf("revision = %d, want 7", got.Revision)
	}
	if got.AmountCents != 2500 {
		t.Errorf("amount cents = %d, want 2500", got.AmountCents)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
}

func TestMutationOmitsZeroAmount(t *testing.T) {
	body, err := NewMutation(EntityBudget, OpDelete, "bud-1", 3).ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	if strings.Contains(string(body), "amountCents") {
		t.Errorf("delete event should omit amountCents: %s", body)
	}
}

func TestMutationFromJSONRejectsGarbage(t *testing.T) {
	if _, err := MutationFromJSON([]byte("{")); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestMutationTimestampRecent(t *testing.T) {
	msg := NewMutation(EntityPot, OpCreate, "pot-1", 1)
	if time.Since(msg.Timestamp) > time.Minute {
		t.Errorf("timestamp %v not recent", msg.Timestamp)
	}
}
