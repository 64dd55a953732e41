package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"findash/internal/events"
)

type appenderStub struct {
	rows [][]interface{}
	err  error
}

func (a *appenderStub) AppendRow(_ context.Context, row []interface{}) error {
	if a.err != nil {
		return a.err
	}
	a.rows = append(a.rows, row)
	return nil
}

func TestHandleMutation(t *testing.T) {
	stub := &appenderStub{}
	w := NewJournalWorker(stub, nil)

	msg := &events.Mutation{
		Entity:      events.EntityPot,
		Op:          events.OpWithdraw,
		ID:          "pot-1",
		Revision:    9,
		AmountCents: 2550,
		Timestamp:   time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC),
	}
	if err := w.HandleMutation(context.Background(), msg); err != nil {
		t.Fatalf("HandleMutation() error = %v", err)
	}

	if len(stub.rows) != 1 {
		t.Fatalf("rows appended = %d, want 1", len(stub.rows))
	}
	row := stub.rows[0]
	want := []interface{}{"2025-07-10T12:00:00Z", "pot", "withdraw", "pot-1", "9", "25.50"}
	if len(row) != len(want) {
		t.Fatalf("row = %v", row)
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("row[%d] = %v, want %v", i, row[i], want[i])
		}
	}
}

func TestHandleMutationOmitsAmountWhenAbsent(t *testing.T) {
	stub := &appenderStub{}
	w := NewJournalWorker(stub, nil)

	msg := events.NewMutation(events.EntityBudget, events.OpDelete, "bud-1", 4)
	if err := w.HandleMutation(context.Background(), msg); err != nil {
		t.Fatalf("HandleMutation() error = %v", err)
	}
	if got := stub.rows[0][5]; got != "" {
		t.Errorf("amount column = %v, want empty for non-monetary ops", got)
	}
}

func TestHandleMutationPropagatesAppendError(t *testing.T) {
	stub := &appenderStub{err: errors.New("quota exceeded")}
	w := NewJournalWorker(stub, nil)

	err := w.HandleMutation(context.Background(), events.NewMutation(events.EntityPot, events.OpCreate, "p", 1))
	if err == nil {
		t.Error("append failures must propagate so the delivery is requeued")
	}
}
