package chatclient

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackwu/shopchat/model"
)

// SendRequest is the body of POST /api/chat. An empty ConversationID asks
// the backend to open a new conversation.
type SendRequest struct {
	UserID         string `json:"user_id"`
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type SendResponse struct {
	ConversationID string
	UserMessage    model.Message
	AIMessage      model.Message
}

type sendResponse struct {
	ConversationID string      `json:"conversation_id"`
	UserMessage    wireMessage `json:"user_message"`
	AIMessage      wireMessage `json:"ai_message"`
}

type wireMessage struct {
	ID        string   `json:"_id"`
	Sender    string   `json:"sender"`
	Content   string   `json:"content"`
	Timestamp wireTime `json:"timestamp"`
}

func (w wireMessage) toModel() model.Message {
	return model.Message{
		ID:        w.ID,
		Sender:    model.ParseSender(w.Sender),
		Content:   w.Content,
		Timestamp: time.Time(w.Timestamp),
	}
}

type wireConversation struct {
	ID        string   `json:"_id"`
	Title     string   `json:"title"`
	UpdatedAt wireTime `json:"updated_at"`
}

func (w wireConversation) toModel() model.ConversationSummary {
	return model.ConversationSummary{
		ID:        w.ID,
		Title:     w.Title,
		UpdatedAt: time.Time(w.UpdatedAt),
	}
}

// wireTime accepts RFC 3339 as well as the zone-less ISO timestamps the
// backend emits, which are UTC.
type wireTime time.Time

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (t *wireTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		*t = wireTime(parsed)
		return nil
	}
	for _, layout := range naiveLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			*t = wireTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognised format %q", s)
}
