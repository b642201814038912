// Package triage contains the multi-agent dialogue core: the shared triage
// context, the fire and medical handlers, and the orchestrator that routes
// turns between them.
package triage

import (
	"context"

	"rescuehub/models"
)

// FollowUpTrigger is the reserved internal token handed to the medical
// handler when the fire branch escalates. It is never ordinary user text and
// is not recorded as an injury description.
const FollowUpTrigger = "system: follow up"

// TurnResult is a handler's report for one turn. Ownership transfer is an
// explicit return value: the orchestrator alone applies NextOwner to the
// context, and Handoff requests one immediate internal follow-up turn.
type TurnResult struct {
	Reply     string
	NextOwner models.AgentKind
	Handoff   bool
}

// Handler owns one incident-domain's conversational logic.
type Handler interface {
	Name() string
	Handle(ctx context.Context, utterance string, tc *models.TriageContext, summary string) (TurnResult, error)
}
