package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationWindowEvictsOldest(t *testing.T) {
	w := NewConversationWindow(3)
	for i := 1; i <= 5; i++ {
		w.Append("user", fmt.Sprintf("msg %d", i))
	}

	assert.Len(t, w.Entries, 3)
	assert.Equal(t, "msg 3", w.Entries[0].Text)
	assert.Equal(t, "msg 5", w.Entries[2].Text)
}

func TestConversationWindowSummary(t *testing.T) {
	w := NewConversationWindow(4)
	assert.Empty(t, w.Summary())

	w.Append("user", "there is a fire")
	w.Append("assistant", "what is your address?")
	assert.Equal(t, "user: there is a fire\nassistant: what is your address?", w.Summary())
}

func TestConversationWindowZeroValueUsesDefault(t *testing.T) {
	var w ConversationWindow
	for i := 0; i < DefaultWindowTurns+2; i++ {
		w.Append("user", "x")
	}
	assert.Len(t, w.Entries, DefaultWindowTurns)
}
