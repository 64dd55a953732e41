package events

import (
	"encoding/json"
	"time"
)

// Entities and operations carried on the mutation stream.
const (
	EntityPot    = "pot"
	EntityBudget = "budget"

	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpDeposit  = "deposit"
	OpWithdraw = "withdraw"
)

// Mutation is a lightweight record of one in-memory state change.
// Consumers that need the full entity read it back from the API; the
// message only identifies what changed.
type Mutation struct {
	Entity      string    `json:"entity"`
	Op          string    `json:"op"`
	ID          string    `json:"id"`
	Revision    int64     `json:"revision"`
	AmountCents int64     `json:"amountCents,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewMutation(entity, op, id string, revision int64) *Mutation {
	return &Mutation{
		Entity:    entity,
		Op:        op,
		ID:        id,
		Revision:  revision,
		Timestamp: time.Now(),
	}
}

// WithAmount attaches the money amount for deposit and withdraw events.
func (m *Mutation) WithAmount(cents int64) *Mutation {
	m.AmountCents = cents
	return m
}

func (m *Mutation) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MutationFromJSON(data []byte) (*Mutation, error) {
	var msg Mutation
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
