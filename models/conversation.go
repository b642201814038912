package models

import "strings"

// DefaultWindowTurns bounds the short-term conversation history.
const DefaultWindowTurns = 8

// ConversationEntry is one message in the short-term window.
type ConversationEntry struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ConversationWindow is a bounded short-term conversation history. Oldest
// entries are evicted first once the window is full.
type ConversationWindow struct {
	Entries  []ConversationEntry `json:"entries"`
	MaxTurns int                 `json:"maxTurns"`
}

// NewConversationWindow returns a window bounded to maxTurns entries.
func NewConversationWindow(maxTurns int) ConversationWindow {
	if maxTurns <= 0 {
		maxTurns = DefaultWindowTurns
	}
	return ConversationWindow{MaxTurns: maxTurns}
}

// Append records one message, evicting the oldest entry when full.
func (w *ConversationWindow) Append(role, text string) {
	if w.MaxTurns <= 0 {
		w.MaxTurns = DefaultWindowTurns
	}
	w.Entries = append(w.Entries, ConversationEntry{Role: role, Text: text})
	if len(w.Entries) > w.MaxTurns {
		w.Entries = w.Entries[len(w.Entries)-w.MaxTurns:]
	}
}

// Summary renders the window as "role: text" lines for judgment prompts.
func (w *ConversationWindow) Summary() string {
	lines := make([]string, 0, len(w.Entries))
	for _, e := range w.Entries {
		lines = append(lines, e.Role+": "+e.Text)
	}
	return strings.Join(lines, "\n")
}
