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
	medicalFollowUpReply    = "I understand there's an injury. Can you describe what happened?"
	medicalAskAddress       = "What is your exact address?"
	medicalAskAddressStrict = "Please provide the full address (number + street)."
)

// MedicalHandler drives the medical branch for both direct entry and
// escalated entry from the fire branch. It never dispatches on the first
// sufficient-information turn: the initial probe and the follow-up
// confirmation gate each interpose one clarifying round, except on the
// dual-incident path which dispatches immediately.
type MedicalHandler struct {
	Judgment intelligence.JudgmentService
	Plan     dispatch.PlanFunc
}

func (h *MedicalHandler) Name() string { return "Medical Agent" }

func (h *MedicalHandler) Handle(ctx context.Context, utterance string, tc *models.TriageContext, summary string) (TurnResult, error) {
	stay := TurnResult{NextOwner: models.AgentMedical}

	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(utterance)), FollowUpTrigger) {
		// Post-escalation entry; the trigger is not injury description text.
		stay.Reply = medicalFollowUpReply
		return stay, nil
	}

	if tc.InjuryDescription == "" {
		tc.InjuryDescription = utterance
	}

	if tc.Address == "" {
		if addr := h.extractAddress(ctx, summary, utterance); addr != "" {
			tc.Address = addr
		}
	}
	if tc.Address == "" {
		if !tc.AskedAddressOnce {
			tc.AskedAddressOnce = true
			stay.Reply = medicalAskAddress
		} else {
			stay.Reply = medicalAskAddressStrict
		}
		return stay, nil
	}

	analysis := h.analyze(ctx, summary, utterance)
	nextQuestion := analysis.NextQuestion
	if nextQuestion == "" {
		nextQuestion = intelligence.DefaultFollowUpQuestion
	}

	if !tc.MedicalProbeDone {
		// Every medical session asks at least one clarifying question
		// before any dispatch decision.
		tc.MedicalProbeDone = true
		stay.Reply = nextQuestion
		return stay, nil
	}

	if analysis.HasEnoughInfo {
		tc.HadMedical = true
		if tc.HadFire {
			// Dual incident: dispatch now, skipping the confirmation gate.
			tc.IncidentType = models.IncidentBoth
			res := h.Plan(models.IncidentBoth, tc.Address, true)
			tc.Done = true
			return TurnResult{Reply: dispatchReply(res, tc.Address), NextOwner: models.AgentMedical}, nil
		}
		tc.IncidentType = models.IncidentMedical
	}

	if tc.Severity != models.SeverityFollowupAsked {
		tc.Severity = models.SeverityFollowupAsked
		stay.Reply = nextQuestion
		return stay, nil
	}

	if tc.HadFire {
		tc.IncidentType = models.IncidentBoth
	} else {
		tc.IncidentType = models.IncidentMedical
	}
	res := h.Plan(tc.IncidentType, tc.Address, true)
	tc.Done = true
	return TurnResult{Reply: dispatchReply(res, tc.Address), NextOwner: models.AgentMedical}, nil
}

// analyze runs the triage judgment and corroborates it with the local
// keyword scan: concrete injury keywords force sufficiency and backfill a
// missing injury type.
func (h *MedicalHandler) analyze(ctx context.Context, summary, utterance string) models.TriageJudgment {
	tj, err := h.Judgment.Triage(ctx, summary, utterance)
	if err != nil {
		tj = intelligence.DefaultTriageJudgment()
	}
	if !tj.HasEnoughInfo && matchesInjuryKeyword(utterance) {
		tj.HasEnoughInfo = true
		tj.InjuryType = keywordInjuryType(utterance)
		tj.NextQuestion = ""
	}
	if tj.InjuryType == "" || tj.InjuryType == "unknown" {
		tj.InjuryType = keywordInjuryType(utterance)
	}
	return tj
}

// extractAddress tries the slot-parsing judgment first, then the
// deterministic street pattern.
func (h *MedicalHandler) extractAddress(ctx context.Context, summary, utterance string) string {
	slots, err := h.Judgment.ParseSlots(ctx, summary, utterance)
	if err != nil {
		slots = intelligence.DefaultSlots()
	}
	if slots.Address != "" {
		return slots.Address
	}
	return extractAddressPattern(utterance)
}

func dispatchReply(res models.DispatchResult, address string) string {
	return fmt.Sprintf("Thank you. We're dispatching %s to %s. Please stay calm and keep the patient safe until help arrives.",
		strings.Join(res.Resources, ", "), address)
}
