package models

import "time"

// TriageSession is the envelope stored per caller session. The context and
// the conversation window round-trip through the session cache between
// turns; an abandoned session simply expires with its TTL.
type TriageSession struct {
	ID        string             `json:"id"`
	Context   TriageContext      `json:"context"`
	Window    ConversationWindow `json:"window"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
