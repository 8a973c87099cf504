package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/jackwu/shopchat/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	n := 0
	fixed := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return New(
		WithClock(func() time.Time { return fixed }),
		WithIDs(func() string {
			n++
			return fmt.Sprintf("m%d", n)
		}),
	)
}

func TestSendThenReceiveAppendsTwoInOrder(t *testing.T) {
	prefixes := [][]model.Message{
		nil,
		{{ID: "a", Sender: model.SenderUser, Content: "earlier"}},
		{
			{ID: "a", Sender: model.SenderUser, Content: "q"},
			{ID: "b", Sender: model.SenderAssistant, Content: "r"},
		},
	}

	for i, prefix := range prefixes {
		t.Run(fmt.Sprintf("prefix-%d", i), func(t *testing.T) {
			s := newTestStore()
			s.LoadConversation("c1", prefix)
			before := len(s.State().Messages)

			s.SendMessage("where is my order?")
			st := s.ReceiveMessage("It shipped yesterday.")

			require.Len(t, st.Messages, before+2)
			if before > 0 {
				assert.Equal(t, prefix, st.Messages[:before])
			}
			assert.Equal(t, model.SenderUser, st.Messages[before].Sender)
			assert.Equal(t, "where is my order?", st.Messages[before].Content)
			assert.Equal(t, model.SenderAssistant, st.Messages[before+1].Sender)
			assert.Equal(t, "It shipped yesterday.", st.Messages[before+1].Content)
			assert.False(t, st.Loading)
		})
	}
}

func TestHelloScenario(t *testing.T) {
	s := newTestStore()
	s.SetInput("Hello")

	st := s.SendMessage("Hello")
	require.Len(t, st.Messages, 1)
	assert.Equal(t, model.SenderUser, st.Messages[0].Sender)
	assert.True(t, st.Loading)
	assert.Empty(t, st.Input)

	st = s.ReceiveMessage("Hi")
	require.Len(t, st.Messages, 2)
	assert.Equal(t, "Hi", st.Messages[1].Content)
	assert.False(t, st.Loading)
}

func TestLoadConversationReplaces(t *testing.T) {
	s := newTestStore()
	s.SendMessage("old question")
	s.SetInput("half typed")

	loaded := []model.Message{
		{ID: "x1", Sender: model.SenderUser, Content: "What is the status of my order?"},
		{ID: "x2", Sender: model.SenderAssistant, Content: "Your order is being processed."},
	}
	st := s.LoadConversation("conv-9", loaded)

	assert.Equal(t, loaded, st.Messages)
	assert.Equal(t, "conv-9", st.ConversationID)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Input)

	// the store keeps its own copy
	loaded[0].Content = "changed"
	assert.Equal(t, "What is the status of my order?", s.State().Messages[0].Content)
}

func TestClearConversation(t *testing.T) {
	states := []func(*Store){
		func(*Store) {},
		func(s *Store) { s.SendMessage("hi") },
		func(s *Store) {
			s.LoadConversation("c", []model.Message{{ID: "1", Content: "x"}})
			s.SetInput("draft")
		},
	}
	for i, setup := range states {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			s := newTestStore()
			setup(s)
			st := s.ClearConversation()
			assert.Empty(t, st.Messages)
			assert.Empty(t, st.Input)
			assert.Empty(t, st.ConversationID)
			assert.False(t, st.Loading)
		})
	}
}

func TestReduceLeavesPreviousStateIntact(t *testing.T) {
	base := State{Messages: make([]model.Message, 1, 4)}
	base.Messages[0] = model.Message{ID: "1", Content: "first"}

	a := Reduce(base, SendMessage{Message: model.Message{ID: "2", Content: "a"}})
	b := Reduce(base, SendMessage{Message: model.Message{ID: "3", Content: "b"}})

	assert.Len(t, base.Messages, 1)
	assert.Equal(t, "a", a.Messages[1].Content)
	assert.Equal(t, "b", b.Messages[1].Content)
}

func TestSetInputAndConversation(t *testing.T) {
	s := newTestStore()
	assert.Equal(t, "typing", s.SetInput("typing").Input)
	assert.Equal(t, "c42", s.SetConversation("c42").ConversationID)
	assert.Equal(t, "typing", s.State().Input)
}

func TestMessagesAreStamped(t *testing.T) {
	s := newTestStore()
	st := s.SendMessage("one")
	st = s.ReceiveMessage("two")

	assert.Equal(t, "m1", st.Messages[0].ID)
	assert.Equal(t, "m2", st.Messages[1].ID)
	assert.Equal(t, 2024, st.Messages[0].Timestamp.Year())
}
