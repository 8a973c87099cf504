package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jackwu/shopchat/model"
)

var welcomeLines = []string{
	"I can help you with:",
	"  • Order status and tracking",
	"  • Product availability and details",
	"  • Return and refund policies",
	"  • Payment and shipping information",
	"",
	"Just ask me anything about your shopping experience!",
}

const typingIndicator = "Assistant is typing..."

func (m Model) viewChat() string {
	width := m.chatWidth()
	rows := m.bodyRows()

	var lines []string
	switch {
	case m.pendingID != "":
		lines = []string{"", "  Loading conversation..."}
	default:
		start := min(m.chatOffset, len(m.chatLines))
		end := min(start+rows, len(m.chatLines))
		lines = m.chatLines[start:end]
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(rows).
		MaxHeight(rows).
		Render(strings.Join(lines, "\n"))
}

// refreshChat re-renders the message list. With follow set the view jumps
// to the newest entry; otherwise the current offset is kept in range.
func (m *Model) refreshChat(follow bool) {
	m.chatLines = m.renderChatContent()
	if follow {
		m.chatScrollToBottom()
		return
	}
	m.chatScrollDown(0)
}

// renderChatContent renders every message into display lines.
func (m Model) renderChatContent() []string {
	st := m.store.State()
	maxWidth := m.chatWidth() - 2

	var lines []string
	if len(st.Messages) == 0 {
		lines = append(lines, "", " "+welcomeStyle.Render("Welcome to ShopChat Support!"), "")
		for _, wl := range welcomeLines {
			lines = append(lines, " "+wl)
		}
	}

	for _, msg := range st.Messages {
		lines = append(lines, renderMessageHeader(msg))

		textStyle := lipgloss.NewStyle()
		if msg.Sender == model.SenderAssistant {
			textStyle = assistantTextStyle
		}
		for _, wl := range wrapText(msg.Content, maxWidth) {
			lines = append(lines, " "+textStyle.Render(wl))
		}

		// blank separator
		lines = append(lines, "")
	}

	if st.Loading {
		lines = append(lines, " "+typingStyle.Render(typingIndicator))
	}

	return lines
}

func renderMessageHeader(msg model.Message) string {
	var role string
	switch msg.Sender {
	case model.SenderAssistant:
		role = assistantRoleStyle.Render(" ASSISTANT ")
	default:
		role = userRoleStyle.Render(" YOU ")
	}
	if msg.Timestamp.IsZero() {
		return role
	}
	return role + " " + dimStyle.Render(msg.Timestamp.Local().Format("15:04"))
}

// wrapText splits text into lines that fit within maxWidth runes.
func wrapText(text string, maxWidth int) []string {
	if maxWidth < 1 {
		maxWidth = 1
	}
	var result []string
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			result = append(result, "")
			continue
		}
		runes := []rune(line)
		for len(runes) > maxWidth {
			cut := maxWidth
			// prefer breaking after a space
			for i := maxWidth; i > maxWidth/2; i-- {
				if runes[i-1] == ' ' {
					cut = i
					break
				}
			}
			result = append(result, strings.TrimRight(string(runes[:cut]), " "))
			runes = runes[cut:]
		}
		result = append(result, string(runes))
	}
	return result
}

func (m *Model) chatScrollUp(n int) {
	m.chatOffset -= n
	if m.chatOffset < 0 {
		m.chatOffset = 0
	}
}

func (m *Model) chatScrollDown(n int) {
	m.chatOffset += n
	maxOffset := max(0, len(m.chatLines)-m.bodyRows())
	if m.chatOffset > maxOffset {
		m.chatOffset = maxOffset
	}
}

func (m *Model) chatScrollToBottom() {
	m.chatOffset = max(0, len(m.chatLines)-m.bodyRows())
}

func (m Model) scrollInfo() string {
	if len(m.chatLines) <= m.bodyRows() {
		return ""
	}
	pct := m.chatOffset * 100 / (len(m.chatLines) - m.bodyRows())
	return " " + statusBarStyle.Render(fmt.Sprintf("%d%%", pct))
}
