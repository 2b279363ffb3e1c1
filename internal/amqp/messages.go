package amqp

import (
	"encoding/json"
	"time"
)

// MovementCreatedMessage notifies the mirror worker that a movement was
// persisted. It carries only the id; the worker fetches the full row
// from the database so the queue never holds stale field values.
type MovementCreatedMessage struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMovementCreatedMessage(id string) *MovementCreatedMessage {
	return &MovementCreatedMessage{
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

func (m *MovementCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MovementCreatedMessageFromJSON(data []byte) (*MovementCreatedMessage, error) {
	var msg MovementCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
