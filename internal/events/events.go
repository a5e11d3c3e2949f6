package events

import (
	"encoding/json"
	"time"
)

// Event types published over SSE during a search run.
const (
	TypePing           = "ping"
	TypeSearchStarted  = "search_started"
	TypeSearchFinished = "search_finished"
	TypeJobStored      = "job_stored"
	TypeJobDeleted     = "job_deleted"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// MakeEvent serializes a versioned event envelope.
func MakeEvent(reqID, typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   1,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
