package events

import (
	"encoding/json"
	"time"
)

// MutationMessage announces one ledger mutation to interested consumers.
// It carries identifiers only; consumers fetch whatever detail they need
// through the API.
type MutationMessage struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id,omitempty"`
	Month     string    `json:"month,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMutationMessage creates a message for a mutation of the given kind.
func NewMutationMessage(kind, id, month string) *MutationMessage {
	return &MutationMessage{
		Kind:      kind,
		ID:        id,
		Month:     month,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *MutationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MutationMessageFromJSON creates a message from JSON bytes.
func MutationMessageFromJSON(data []byte) (*MutationMessage, error) {
	var msg MutationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
