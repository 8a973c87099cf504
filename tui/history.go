package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jackwu/shopchat/logger"
	"github.com/jackwu/shopchat/model"
)

const noConversations = "No past conversations."

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "tab", "esc":
		cmd := m.setFocus(focusInput)
		return m, cmd

	case "up", "k":
		if m.historyCursor > 0 {
			m.historyCursor--
			m.clampHistoryOffset()
		}

	case "down", "j":
		if m.historyCursor < len(m.conversations)-1 {
			m.historyCursor++
			m.clampHistoryOffset()
		}

	case "home", "g":
		m.historyCursor = 0
		m.clampHistoryOffset()

	case "end", "G":
		m.historyCursor = max(0, len(m.conversations)-1)
		m.clampHistoryOffset()

	case "enter":
		if len(m.conversations) == 0 {
			return m, nil
		}
		// always re-fetched; nothing is cached
		id := m.conversations[m.historyCursor].ID
		m.pendingID = id
		logger.Log.Debugf("loading conversation %s", id)
		return m, loadMessages(m.api, id)

	case "r":
		cmd := m.refreshHistory()
		return m, cmd

	case "n":
		m.newChat()
		cmd := m.setFocus(focusInput)
		return m, cmd
	}

	return m, nil
}

func (m *Model) refreshHistory() tea.Cmd {
	m.historyLoading = true
	return loadConversations(m.api, m.userID)
}

// handleMessagesLoaded swaps in a fetched conversation. Results for a
// selection the user has since moved away from are discarded.
func (m Model) handleMessagesLoaded(msg messagesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.conversationID != m.pendingID {
		return m, nil
	}
	m.pendingID = ""
	m.store.LoadConversation(msg.conversationID, msg.messages)
	m.generation++
	m.input.Reset()
	m.refreshChat(true)
	cmd := m.setFocus(focusInput)
	return m, cmd
}

func (m Model) viewHistory() string {
	width := m.historyWidth()
	rows := m.bodyRows()

	header := headerStyle.Render(pad("Past Conversations", width-2))
	lines := []string{header}

	switch {
	case m.historyLoading && len(m.conversations) == 0:
		lines = append(lines, dimStyle.Render(" Loading..."))
	case len(m.conversations) == 0:
		lines = append(lines, dimStyle.Render(" "+noConversations))
	default:
		visible := m.historyVisibleRows()
		end := min(m.historyOffset+visible, len(m.conversations))
		active := m.store.State().ConversationID
		for i := m.historyOffset; i < end; i++ {
			lines = append(lines, m.renderHistoryRow(m.conversations[i], i == m.historyCursor, m.conversations[i].ID == active))
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(rows).
		MaxHeight(rows).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderHistoryRow(c model.ConversationSummary, selected, active bool) string {
	width := m.historyWidth()
	marker := "  "
	if active {
		marker = "● "
	}
	row := pad(marker+c.DisplayTitle(width-3), width)

	switch {
	case selected && m.focus == focusHistory:
		return selectedStyle.Render(row)
	case active:
		return activeStyle.Render(row)
	default:
		return row
	}
}

func (m Model) historyVisibleRows() int {
	// minus the panel header
	return max(1, m.bodyRows()-1)
}

func (m *Model) clampHistoryOffset() {
	visible := m.historyVisibleRows()
	if m.historyCursor < m.historyOffset {
		m.historyOffset = m.historyCursor
	}
	if m.historyCursor >= m.historyOffset+visible {
		m.historyOffset = m.historyCursor - visible + 1
	}
	if m.historyOffset < 0 {
		m.historyOffset = 0
	}
}
