package store

import "github.com/jackwu/shopchat/model"

// Action is one of the state transitions the store understands.
type Action interface {
	isAction()
}

// SendMessage appends a user message and marks a reply as pending.
type SendMessage struct{ Message model.Message }

// ReceiveMessage appends an assistant message and clears the pending flag.
type ReceiveMessage struct{ Message model.Message }

// SetInput replaces the draft.
type SetInput struct{ Text string }

// LoadConversation swaps in another conversation's messages.
type LoadConversation struct {
	ConversationID string
	Messages       []model.Message
}

// ClearConversation starts a fresh chat.
type ClearConversation struct{}

// SetConversation records the backend id of the active conversation.
type SetConversation struct{ ConversationID string }

func (SendMessage) isAction()       {}
func (ReceiveMessage) isAction()    {}
func (SetInput) isAction()          {}
func (LoadConversation) isAction()  {}
func (ClearConversation) isAction() {}
func (SetConversation) isAction()   {}
