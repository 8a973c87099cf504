package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackwu/shopchat/model"
)

// Store holds the current conversation state. It is not safe for concurrent
// use; the TUI only touches it from its Update loop.
type Store struct {
	state State
	now   func() time.Time
	newID func() string
}

type Option func(*Store)

// WithClock overrides the time source used to stamp new messages.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs overrides the id source used for new messages.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func New(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Store) State() State {
	return s.state
}

// Dispatch applies a and returns the resulting state.
func (s *Store) Dispatch(a Action) State {
	s.state = Reduce(s.state, a)
	return s.state
}

func (s *Store) SendMessage(text string) State {
	return s.Dispatch(SendMessage{Message: s.message(model.SenderUser, text)})
}

func (s *Store) ReceiveMessage(text string) State {
	return s.Dispatch(ReceiveMessage{Message: s.message(model.SenderAssistant, text)})
}

func (s *Store) SetInput(text string) State {
	return s.Dispatch(SetInput{Text: text})
}

func (s *Store) LoadConversation(conversationID string, msgs []model.Message) State {
	return s.Dispatch(LoadConversation{ConversationID: conversationID, Messages: msgs})
}

func (s *Store) ClearConversation() State {
	return s.Dispatch(ClearConversation{})
}

func (s *Store) SetConversation(conversationID string) State {
	return s.Dispatch(SetConversation{ConversationID: conversationID})
}

func (s *Store) message(sender model.Sender, text string) model.Message {
	return model.Message{
		ID:        s.newID(),
		Sender:    sender,
		Content:   text,
		Timestamp: s.now(),
	}
}
