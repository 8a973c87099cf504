package store

import "github.com/jackwu/shopchat/model"

// ErrorReply is shown as the assistant's answer when a send fails.
const ErrorReply = "Sorry, I couldn't reach the support service. Please try again."

// State is the whole conversation view state.
type State struct {
	ConversationID string // empty until the backend assigns one
	Messages       []model.Message
	Input          string
	Loading        bool
}

// Reduce applies a to s and returns the new state. The message slice of s is
// never written to, so earlier states remain valid snapshots.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SendMessage:
		s.Messages = appendMessage(s.Messages, a.Message)
		s.Loading = true
		s.Input = ""
	case ReceiveMessage:
		s.Messages = appendMessage(s.Messages, a.Message)
		s.Loading = false
	case SetInput:
		s.Input = a.Text
	case LoadConversation:
		s.ConversationID = a.ConversationID
		s.Messages = append([]model.Message(nil), a.Messages...)
		s.Loading = false
		s.Input = ""
	case ClearConversation:
		s = State{}
	case SetConversation:
		s.ConversationID = a.ConversationID
	}
	return s
}

func appendMessage(msgs []model.Message, m model.Message) []model.Message {
	out := make([]model.Message, len(msgs), len(msgs)+1)
	copy(out, msgs)
	return append(out, m)
}
