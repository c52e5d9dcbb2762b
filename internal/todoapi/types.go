package todoapi

import (
	"encoding/json"
	"time"
)

// TodoItem mirrors a single entry returned by the todos endpoints.
type TodoItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

// UnmarshalJSON accepts the Mongo-style "_id" key some deployments still emit.
func (t *TodoItem) UnmarshalJSON(data []byte) error {
	type plain TodoItem
	var raw struct {
		plain
		LegacyID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = TodoItem(raw.plain)
	if t.ID == "" {
		t.ID = raw.LegacyID
	}
	return nil
}

// ParsedCreatedAt returns the CreatedAt timestamp as time.Time when possible.
func (t TodoItem) ParsedCreatedAt() time.Time {
	return parseTime(t.CreatedAt)
}

// Patch carries the fields of an update. Nil fields are left out of the request body.
type Patch struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// SetText returns a Patch that changes only the text.
func SetText(text string) Patch {
	return Patch{Text: &text}
}

// SetCompleted returns a Patch that changes only the completion flag.
func SetCompleted(completed bool) Patch {
	return Patch{Completed: &completed}
}

type createRequest struct {
	Text string `json:"text"`
}

type errorBody struct {
	Message string `json:"message"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000Z0700", "2006-01-02T15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
