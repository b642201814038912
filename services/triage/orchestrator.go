package triage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rescuehub/models"
	"rescuehub/services/dispatch"
	"rescuehub/services/intelligence"
	"rescuehub/services/memory"

	"go.uber.org/zap"
)

// recallThreshold is the minimum normalized similarity for a remembered
// entry to count as a recall match.
const recallThreshold = 0.80

// handoffBudget caps handler turns per utterance. The only legitimate double
// turn today is the fire-to-medical escalation; the cap keeps a future
// handler from chaining handoffs indefinitely.
const handoffBudget = 2

// Orchestrator owns the triage context for the session's lifetime: it
// selects the active handler each turn, executes it, applies ownership
// transitions, and answers recall queries against semantic memory.
type Orchestrator struct {
	Judgment intelligence.JudgmentService
	Recall   memory.RecallIndex
	Logger   *zap.Logger

	fire    *FireHandler
	medical *MedicalHandler
}

func NewOrchestrator(judgment intelligence.JudgmentService, recall memory.RecallIndex, plan dispatch.PlanFunc, logger *zap.Logger) *Orchestrator {
	if plan == nil {
		plan = dispatch.Plan
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		Judgment: judgment,
		Recall:   recall,
		Logger:   logger,
		fire:     &FireHandler{Judgment: judgment, Plan: plan},
		medical:  &MedicalHandler{Judgment: judgment, Plan: plan},
	}
}

// ProcessTurn handles one caller utterance and returns the (possibly
// multi-part) reply. The session's context and conversation window are
// mutated in place; the caller checks Context.Done to end the session.
func (o *Orchestrator) ProcessTurn(ctx context.Context, utterance string, sess *models.TriageSession) (string, error) {
	tc := &sess.Context
	if tc.Done {
		return "", ErrSessionClosed
	}

	kind, err := o.Judgment.ClassifyIncident(ctx, sess.Window.Summary(), utterance)
	if err != nil {
		kind = intelligence.DefaultIncidentKind()
	}

	if isRecallQuery(utterance) {
		if reply, ok := o.tryRecall(ctx, utterance, kind); ok {
			sess.Window.Append("assistant", reply)
			return reply, nil
		}
	}

	sess.Window.Append("user", utterance)
	if o.Recall != nil {
		if err := o.Recall.Add(ctx, utterance, string(kind)); err != nil {
			o.Logger.Warn("recall add failed", zap.Error(err))
		}
	}

	if tc.ActiveAgent == "" {
		tc.ActiveAgent = initialOwner(kind)
	}

	input := utterance
	var parts []string
	for i := 0; i < handoffBudget; i++ {
		handler := o.handlerFor(tc.ActiveAgent)
		res, err := handler.Handle(ctx, input, tc, sess.Window.Summary())
		if err != nil {
			return "", err
		}
		parts = append(parts, handler.Name()+": "+res.Reply)

		previous := tc.ActiveAgent
		tc.ActiveAgent = res.NextOwner
		if !res.Handoff || res.NextOwner == previous {
			break
		}
		input = FollowUpTrigger
	}

	reply := strings.Join(parts, "\n")
	sess.Window.Append("assistant", reply)
	return reply, nil
}

// RecallContext summarizes remembered entries relevant to the query, for
// prefixing onto a normal turn. Returns "" when nothing clears the
// similarity threshold or the summarizer is unavailable.
func (o *Orchestrator) RecallContext(ctx context.Context, query string) string {
	if o.Recall == nil {
		return ""
	}
	entries, scores, err := o.Recall.Search(ctx, query, 3)
	if err != nil || len(entries) == 0 {
		return ""
	}
	var texts []string
	for i := range entries {
		if scores[i] >= recallThreshold {
			texts = append(texts, entries[i].Text)
		}
	}
	if len(texts) == 0 {
		return ""
	}
	summary, err := o.Judgment.Summarize(ctx, texts, query)
	if err != nil {
		return ""
	}
	return summary
}

// tryRecall answers an explicit recall request when a prior entry of the
// same classified kind clears the similarity threshold. A hit short-circuits
// the turn: no handler runs and the context is untouched.
func (o *Orchestrator) tryRecall(ctx context.Context, utterance string, kind models.IncidentKind) (string, bool) {
	if o.Recall == nil {
		return "", false
	}
	entries, scores, err := o.Recall.Search(ctx, utterance, 3)
	if err != nil {
		o.Logger.Warn("recall search failed", zap.Error(err))
		return "", false
	}
	for i := range entries {
		if scores[i] > recallThreshold && entries[i].Kind == string(kind) {
			return fmt.Sprintf("RescueHub: Yes, I remember your previous %s report. Do you want to update it or add new information?", kind), true
		}
	}
	return "", false
}

func (o *Orchestrator) handlerFor(agent models.AgentKind) Handler {
	if agent == models.AgentMedical {
		return o.medical
	}
	return o.fire
}

// initialOwner maps the first classified kind onto a handler. Anything that
// is not clearly medical opens with the fire handler, which escalates if
// injuries surface.
func initialOwner(kind models.IncidentKind) models.AgentKind {
	if kind == models.IncidentMedical {
		return models.AgentMedical
	}
	return models.AgentFire
}

// Snapshot projects the context fields that seed a persisted incident
// record. The core itself never writes the record; callers hand the
// snapshot to the persistence worker.
func Snapshot(sessionID string, tc *models.TriageContext) models.IncidentSnapshot {
	incidentType := tc.IncidentType
	if incidentType == "" {
		if tc.ActiveAgent != "" {
			incidentType = models.IncidentKind(tc.ActiveAgent)
		} else {
			incidentType = models.IncidentUnknown
		}
	}
	return models.IncidentSnapshot{
		SessionID:         sessionID,
		Address:           tc.Address,
		IncidentType:      incidentType,
		Injuries:          tc.Injuries,
		InjuryDescription: tc.InjuryDescription,
		Dispatched:        tc.Done,
		Source:            "agent",
		Timestamp:         time.Now().UTC(),
	}
}
