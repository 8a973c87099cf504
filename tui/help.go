package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type faq struct {
	question string
	answer   string
}

var quickHelp = []faq{
	{
		question: "How do I track my order?",
		answer:   "You can track your order by entering your order number in the tracking section.",
	},
	{
		question: "What's your return policy?",
		answer:   "We offer 30-day returns for most items. Some restrictions apply.",
	},
	{
		question: "Do you ship internationally?",
		answer:   "Yes, we ship to most countries. Shipping costs and delivery times vary.",
	},
	{
		question: "How can I change my order?",
		answer:   "Contact us within 2 hours of placing your order for modifications.",
	},
}

// helpOverlay is the quick-help box listing common questions.
type helpOverlay struct {
	items  []faq
	cursor int
}

func newHelpOverlay() helpOverlay {
	return helpOverlay{items: quickHelp}
}

func (h *helpOverlay) open() {
	h.cursor = 0
}

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := &m.help

	switch msg.String() {
	case "esc", "f1", "q":
		m.mode = modeChat
		return m, nil

	case "up", "k", "shift+tab":
		h.cursor = (h.cursor - 1 + len(h.items)) % len(h.items)

	case "down", "j", "tab":
		h.cursor = (h.cursor + 1) % len(h.items)

	case "enter":
		// ask the selected question
		q := h.items[h.cursor].question
		m.input.SetValue(q)
		m.input.CursorEnd()
		m.store.SetInput(q)
		m.mode = modeChat
		cmd := m.setFocus(focusInput)
		return m, cmd
	}

	return m, nil
}

func (m Model) viewHelp() string {
	h := m.help

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("39")).
		Padding(1, 2).
		Width(64)

	titleStr := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Render("Quick Help")

	var items []string
	for i, item := range h.items {
		if i == h.cursor {
			q := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Render("▼ " + item.question)
			a := dimStyle.Render(strings.Join(wrapText(item.answer, 54), "\n  "))
			items = append(items, q+"\n  "+a)
			continue
		}
		items = append(items, "▶ "+item.question)
	}

	content := fmt.Sprintf(
		"%s\n\n%s\n\n%s",
		titleStr,
		strings.Join(items, "\n"),
		dimStyle.Render("Enter: ask  ↑↓: select  Esc: close"),
	)

	box := boxStyle.Render(content)

	// center the box on screen
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
