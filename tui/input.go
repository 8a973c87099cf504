package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jackwu/shopchat/chatclient"
	"github.com/jackwu/shopchat/logger"
	"github.com/jackwu/shopchat/store"
)

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submit()

	case "tab":
		cmd := m.setFocus(focusHistory)
		return m, cmd

	case "ctrl+n":
		m.newChat()
		return m, nil

	case "f1":
		m.help.open()
		m.mode = modeHelp
		return m, nil

	case "pgup":
		m.chatScrollUp(m.bodyRows())
		return m, nil
	case "pgdown":
		m.chatScrollDown(m.bodyRows())
		return m, nil
	case "ctrl+home":
		m.chatOffset = 0
		return m, nil
	case "ctrl+end":
		m.chatScrollToBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != m.store.State().Input {
		m.store.SetInput(v)
	}
	return m, cmd
}

// submit sends the draft. Blank drafts are ignored, and so is any submit
// while a reply is pending, which keeps sends to one at a time.
func (m Model) submit() (tea.Model, tea.Cmd) {
	st := m.store.State()
	text := strings.TrimSpace(st.Input)
	if text == "" || st.Loading {
		return m, nil
	}

	st = m.store.SendMessage(text)
	m.input.Reset()
	m.refreshChat(true)

	req := chatclient.SendRequest{
		UserID:         m.userID,
		Message:        text,
		ConversationID: st.ConversationID,
	}
	return m, sendMessage(m.api, req, m.generation)
}

// replyApplies reports whether a send result belongs to the conversation
// on screen. Sends into an existing conversation match by id, so reopening
// that conversation keeps the pending reply. Sends that start a conversation
// have no id yet and match by generation.
func (m Model) replyApplies(generation int, requestedID string) bool {
	if requestedID != "" {
		return requestedID == m.store.State().ConversationID
	}
	return generation == m.generation
}

func (m Model) handleReply(msg chatReplyMsg) (tea.Model, tea.Cmd) {
	created := msg.resp.ConversationID != "" && msg.resp.ConversationID != msg.requestedID

	if !m.replyApplies(msg.generation, msg.requestedID) {
		// the user moved to another conversation; the reply is stored
		// server-side and shows up when that conversation is reopened
		logger.Log.Debugf("dropping reply for replaced conversation %s", msg.resp.ConversationID)
		if created {
			cmd := m.refreshHistory()
			return m, cmd
		}
		return m, nil
	}

	if created {
		m.store.SetConversation(msg.resp.ConversationID)
	}
	m.store.ReceiveMessage(msg.resp.AIMessage.Content)
	m.refreshChat(true)

	if created {
		cmd := m.refreshHistory()
		return m, cmd
	}
	return m, nil
}

func (m Model) handleSendFailure(msg chatFailedMsg) (tea.Model, tea.Cmd) {
	logger.ErrorWithFields("send chat message failed", logger.Fields{
		"user_id":         m.userID,
		"conversation_id": msg.requestedID,
		"error":           msg.err.Error(),
	})
	if !m.replyApplies(msg.generation, msg.requestedID) {
		return m, nil
	}
	m.store.ReceiveMessage(store.ErrorReply)
	m.refreshChat(true)
	return m, nil
}

func (m Model) viewInput() string {
	if m.store.State().Loading {
		return dimStyle.Render(m.input.Prompt+"waiting for reply... ") + m.input.Value()
	}
	return m.input.View()
}
