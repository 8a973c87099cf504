package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jackwu/shopchat/chatclient"
	"github.com/jackwu/shopchat/model"
)

// ChatAPI is the backend surface the views depend on.
type ChatAPI interface {
	SendChatMessage(ctx context.Context, req chatclient.SendRequest) (chatclient.SendResponse, error)
	FetchConversations(ctx context.Context, userID string) []model.ConversationSummary
	FetchMessages(ctx context.Context, conversationID string) []model.Message
}

// chatReplyMsg carries a successful send. generation identifies the
// conversation view that issued it.
type chatReplyMsg struct {
	generation  int
	requestedID string // conversation id the send was made against
	resp        chatclient.SendResponse
}

type chatFailedMsg struct {
	generation  int
	requestedID string
	err         error
}

type conversationsLoadedMsg struct {
	conversations []model.ConversationSummary
}

// messagesLoadedMsg is sent when a conversation's messages arrive.
type messagesLoadedMsg struct {
	conversationID string // identifies which selection this result belongs to
	messages       []model.Message
}

func sendMessage(api ChatAPI, req chatclient.SendRequest, generation int) tea.Cmd {
	return func() tea.Msg {
		resp, err := api.SendChatMessage(context.Background(), req)
		if err != nil {
			return chatFailedMsg{generation: generation, requestedID: req.ConversationID, err: err}
		}
		return chatReplyMsg{generation: generation, requestedID: req.ConversationID, resp: resp}
	}
}

func loadConversations(api ChatAPI, userID string) tea.Cmd {
	return func() tea.Msg {
		return conversationsLoadedMsg{conversations: api.FetchConversations(context.Background(), userID)}
	}
}

func loadMessages(api ChatAPI, conversationID string) tea.Cmd {
	return func() tea.Msg {
		msgs := api.FetchMessages(context.Background(), conversationID)
		return messagesLoadedMsg{conversationID: conversationID, messages: msgs}
	}
}
