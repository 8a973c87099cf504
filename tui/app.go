package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jackwu/shopchat/logger"
	"github.com/jackwu/shopchat/model"
	"github.com/jackwu/shopchat/store"
)

type focus int

const (
	focusInput focus = iota
	focusHistory
)

type mode int

const (
	modeChat mode = iota
	modeHelp
)

const (
	defaultHistoryWidth = 30
	minHistoryWidth     = 18
)

type Model struct {
	store  *store.Store
	api    ChatAPI
	userID string

	width  int
	height int
	focus  focus
	mode   mode

	input textinput.Model

	// message list
	chatLines  []string
	chatOffset int
	// generation changes whenever the displayed conversation is replaced;
	// replies to a send that started a conversation in an older generation
	// are not shown.
	generation int

	// history panel
	conversations  []model.ConversationSummary
	historyCursor  int
	historyOffset  int
	historyLoading bool
	pendingID      string // conversation whose messages are being fetched

	help helpOverlay

	quitting bool
}

// NewModel wires the views to st and api. userID is the customer whose
// history is listed.
func NewModel(st *store.Store, api ChatAPI, userID string) Model {
	ti := textinput.New()
	ti.Placeholder = "Type your message..."
	ti.CharLimit = 2000
	ti.Prompt = "> "
	ti.Focus()

	m := Model{
		store:          st,
		api:            api,
		userID:         userID,
		input:          ti,
		width:          100,
		height:         30,
		historyLoading: true,
		help:           newHelpOverlay(),
	}
	m.input.SetValue(st.State().Input)
	m.refreshChat(true)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, loadConversations(m.api, m.userID))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = m.chatWidth() - lipgloss.Width(m.input.Prompt) - 1
		m.refreshChat(false)
		m.clampHistoryOffset()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.mode == modeHelp {
			return m.updateHelp(msg)
		}
		switch m.focus {
		case focusHistory:
			return m.updateHistory(msg)
		default:
			return m.updateInput(msg)
		}

	case chatReplyMsg:
		return m.handleReply(msg)

	case chatFailedMsg:
		return m.handleSendFailure(msg)

	case conversationsLoadedMsg:
		m.conversations = msg.conversations
		m.historyLoading = false
		if m.historyCursor >= len(m.conversations) {
			m.historyCursor = max(0, len(m.conversations)-1)
		}
		m.clampHistoryOffset()
		return m, nil

	case messagesLoadedMsg:
		return m.handleMessagesLoaded(msg)
	}

	// cursor blink and other input housekeeping
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// newChat resets the conversation and drops any pending history load.
func (m *Model) newChat() {
	m.store.ClearConversation()
	m.generation++
	m.pendingID = ""
	m.input.Reset()
	m.refreshChat(true)
	logger.Log.Debug("started new conversation")
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	if f == focusInput {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == modeHelp {
		return m.viewHelp()
	}

	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	rows := m.bodyRows()
	sep := separatorStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", rows), "\n"))
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewHistory(), sep, m.viewChat())
	b.WriteString(body)
	b.WriteString("\n")

	b.WriteString(m.viewInput())
	b.WriteString("\n")
	b.WriteString(m.helpBar())

	return b.String()
}

func (m Model) renderTitle() string {
	title := titleStyle.Render("ShopChat Support")
	st := m.store.State()
	conv := "new conversation"
	if st.ConversationID != "" {
		conv = "conversation " + st.ConversationID
	}
	info := dimStyle.Render(fmt.Sprintf("  %s  ·  %s  ·  %d messages", m.userID, conv, len(st.Messages)))
	return title + info
}

func (m Model) helpBar() string {
	var keys string
	switch m.focus {
	case focusHistory:
		keys = "  Enter: open  r: refresh  n: new chat  Tab/Esc: back  q: quit"
	default:
		keys = "  Enter: send  Tab: history  PgUp/PgDn Ctrl+Home/End: scroll  Ctrl+N: new  F1: help  Ctrl+C: quit"
	}
	return helpStyle.Render(keys) + m.scrollInfo()
}

// bodyRows is the height shared by the history panel and message list:
// total minus title, input and help bar.
func (m Model) bodyRows() int {
	rows := m.height - 3
	if rows < 3 {
		rows = 3
	}
	return rows
}

func (m Model) historyWidth() int {
	w := defaultHistoryWidth
	if m.width < 80 {
		w = m.width / 3
	}
	if w < minHistoryWidth {
		w = minHistoryWidth
	}
	return w
}

func (m Model) chatWidth() int {
	w := m.width - m.historyWidth() - 1 // separator column
	if w < 20 {
		w = 20
	}
	return w
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}
