package model

import (
	"strings"
	"time"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is a single chat entry. Messages are never edited after creation.
type Message struct {
	ID        string
	Sender    Sender
	Content   string
	Timestamp time.Time
}

// ParseSender maps a backend sender value onto a Sender.
// The backend labels replies "ai"; anything unknown is shown as the user.
func ParseSender(s string) Sender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ai", "assistant", "bot":
		return SenderAssistant
	default:
		return SenderUser
	}
}
