package triage

import (
	"context"
	"fmt"
	"strings"

	"rescuehub/models"
	"rescuehub/services/dispatch"
	"rescuehub/services/intelligence"
)

const (
	fireAskAddress    = "I'm sorry to hear that. Can you tell me your address?"
	fireAskInjuries   = "Thank you. Are there any injuries?"
	fireConfirmInjury = "Could you please confirm: are there any injuries?"
	fireEscalation    = "I'm escalating this to our medical team. Please hold."
	fireHold          = "Understood. Please hold while I confirm the details."
)

// FireHandler drives the fire-incident branch. It asks its one injury
// question, and either finalizes a pure fire dispatch or escalates to the
// medical handler once an injury is confirmed.
type FireHandler struct {
	Judgment intelligence.JudgmentService
	Plan     dispatch.PlanFunc
}

func (h *FireHandler) Name() string { return "Fire Agent" }

func (h *FireHandler) Handle(ctx context.Context, utterance string, tc *models.TriageContext, summary string) (TurnResult, error) {
	stay := TurnResult{NextOwner: models.AgentFire}

	if tc.Address == "" {
		slots, err := h.Judgment.ParseSlots(ctx, summary, utterance)
		if err != nil {
			slots = intelligence.DefaultSlots()
		}
		if slots.Address != "" {
			tc.Address = slots.Address
		}
	}
	if tc.Address == "" {
		stay.Reply = fireAskAddress
		return stay, nil
	}

	tc.HadFire = true

	if !tc.InjuriesKnown() && !tc.EscalationDone {
		// The injury question is asked at most once per session.
		tc.EscalationDone = true
		stay.Reply = fireAskInjuries
		return stay, nil
	}

	if !tc.InjuriesKnown() && tc.EscalationDone {
		judgment, err := h.Judgment.DetectInjury(ctx, utterance, summary)
		if err != nil {
			judgment = intelligence.DefaultInjuryJudgment()
		}
		switch judgment {
		case models.InjuryPresent:
			tc.SetInjuries(true)
			return TurnResult{Reply: fireEscalation, NextOwner: models.AgentMedical, Handoff: true}, nil
		case models.InjuryAbsent:
			tc.SetInjuries(false)
			return h.finalize(tc), nil
		default:
			stay.Reply = fireConfirmInjury
			return stay, nil
		}
	}

	// Re-entry safety: injuries already resolved before the handoff or
	// dispatch completed.
	if tc.Injuries != nil && *tc.Injuries {
		return TurnResult{Reply: fireEscalation, NextOwner: models.AgentMedical, Handoff: true}, nil
	}
	if tc.Injuries != nil && !*tc.Injuries {
		return h.finalize(tc), nil
	}

	stay.Reply = fireHold
	return stay, nil
}

// finalize performs the session's single dispatch on the injury-free path.
func (h *FireHandler) finalize(tc *models.TriageContext) TurnResult {
	tc.IncidentType = models.IncidentFire
	res := h.Plan(models.IncidentFire, tc.Address, false)
	tc.Done = true
	reply := fmt.Sprintf("We're dispatching %s to %s. Please stay safe until firefighters arrive.",
		strings.Join(res.Resources, ", "), tc.Address)
	return TurnResult{Reply: reply, NextOwner: models.AgentFire}
}
