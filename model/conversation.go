package model

import "time"

const untitledConversation = "New conversation"

// ConversationSummary is one row of the history panel.
type ConversationSummary struct {
	ID        string
	Title     string
	UpdatedAt time.Time
}

// DisplayTitle returns the title cut to maxLen runes, ending in "..." when truncated.
func (c ConversationSummary) DisplayTitle(maxLen int) string {
	title := c.Title
	if title == "" {
		title = untitledConversation
	}
	runes := []rune(title)
	if maxLen <= 3 || len(runes) <= maxLen {
		return title
	}
	return string(runes[:maxLen-3]) + "..."
}
