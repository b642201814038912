package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"rescuehub/models"
)

// GeminiJudgmentService implements JudgmentService over a text generator.
type GeminiJudgmentService struct {
	Gen TextGenerator
}

func NewGeminiJudgmentService(gen TextGenerator) *GeminiJudgmentService {
	return &GeminiJudgmentService{Gen: gen}
}

const classifyPrompt = "You are RescueHub's incident classifier. " +
	"Decide the emergency type. Return only: fire, medical, or both.\n\n" +
	"Context:\n%s\nCaller: %s"

// ClassifyIncident decides fire/medical/both from the latest utterance.
func (s *GeminiJudgmentService) ClassifyIncident(ctx context.Context, summary, utterance string) (models.IncidentKind, error) {
	reply, err := s.Gen.GenerateText(ctx, fmt.Sprintf(classifyPrompt, summary, utterance))
	if err != nil {
		return DefaultIncidentKind(), err
	}
	r := strings.ToLower(strings.TrimSpace(reply))
	switch {
	case strings.Contains(r, "both"):
		return models.IncidentBoth, nil
	case strings.Contains(r, "fire"):
		return models.IncidentFire, nil
	case strings.Contains(r, "medical"):
		return models.IncidentMedical, nil
	}
	return DefaultIncidentKind(), nil
}

const injuryPrompt = "Check if the user clearly mentions any person being injured, burned, or hurt. " +
	"Reply only with one word: yes, no, or unknown.\n\n" +
	"Conversation:\n%s\nUser said: %s"

// DetectInjury returns present/absent/inconclusive for the latest utterance.
func (s *GeminiJudgmentService) DetectInjury(ctx context.Context, utterance, summary string) (models.InjuryJudgment, error) {
	reply, err := s.Gen.GenerateText(ctx, fmt.Sprintf(injuryPrompt, summary, utterance))
	if err != nil {
		return DefaultInjuryJudgment(), err
	}
	r := strings.ToLower(strings.TrimSpace(reply))
	switch {
	case strings.Contains(r, "yes"):
		return models.InjuryPresent, nil
	// "unknown" contains "no"; check it first.
	case strings.Contains(r, "unknown"):
		return DefaultInjuryJudgment(), nil
	case strings.Contains(r, "no"):
		return models.InjuryAbsent, nil
	}
	return DefaultInjuryJudgment(), nil
}

const slotsPrompt = "You are the NLP parser for RescueHub.\n" +
	"Analyze the user's input (with possible STT errors) in context of previous dialogue.\n" +
	"Return only a compact JSON object:\n" +
	`{"address": "string or null", "injury": true/false/null}` + "\n\n" +
	"Context:\n%s\n\nCaller: %s"

// ParseSlots extracts the address and injury flag best-effort.
func (s *GeminiJudgmentService) ParseSlots(ctx context.Context, summary, utterance string) (models.Slots, error) {
	reply, err := s.Gen.GenerateText(ctx, fmt.Sprintf(slotsPrompt, summary, utterance))
	if err != nil {
		return DefaultSlots(), err
	}
	var slots models.Slots
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &slots); err != nil {
		return DefaultSlots(), fmt.Errorf("malformed slots payload: %w", err)
	}
	return slots, nil
}

const triagePrompt = "You are RescueHub's medical triage AI.\n" +
	"Analyze the user's latest message about an injury.\n" +
	"Return structured JSON only like:\n" +
	`{"injury_type": "burn | fracture | bleeding | head | other", "has_enough_info": true/false, "next_question": "short medical question or null"}` + "\n\n" +
	"Rules:\n" +
	"- If user clearly describes something like 'second-degree burn', 'broken leg', or 'heavy bleeding', set has_enough_info=true.\n" +
	"- If vague ('he's hurt', 'he's in pain'), set has_enough_info=false and propose a follow-up.\n" +
	"- If has_enough_info=true, next_question must be null.\n" +
	"- NEVER repeat identical questions.\n\n" +
	"Conversation so far:\n%s\nUser said: %s"

// Triage judges injury type and information sufficiency.
func (s *GeminiJudgmentService) Triage(ctx context.Context, summary, utterance string) (models.TriageJudgment, error) {
	reply, err := s.Gen.GenerateText(ctx, fmt.Sprintf(triagePrompt, summary, utterance))
	if err != nil {
		return DefaultTriageJudgment(), err
	}
	var tj models.TriageJudgment
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &tj); err != nil {
		return DefaultTriageJudgment(), fmt.Errorf("malformed triage payload: %w", err)
	}
	return tj, nil
}

const summarizePrompt = "You are RescueHub's memory summarizer.\n" +
	"Summarize in 1-2 sentences:\n\n%s\n\nUser's current query: %s"

// Summarize condenses recalled entries against the current query.
func (s *GeminiJudgmentService) Summarize(ctx context.Context, entries []string, query string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}
	joined := strings.Join(entries, "\n---\n")
	reply, err := s.Gen.GenerateText(ctx, fmt.Sprintf(summarizePrompt, joined, query))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

const correctPrompt = "You are a speech-to-text corrector for an emergency assistant (RescueHub).\n" +
	"Fix grammar and recognition errors in the user's voice transcript without changing meaning.\n" +
	"Prefer emergency-related words (fire, burn, injury, ambulance, address).\n" +
	"Return only the corrected sentence.\n" +
	"Context:\n%s\nUser said (possibly wrong): %s"

// CorrectTranscript rewrites a raw STT transcript; the degraded path is the
// raw text unchanged.
func (s *GeminiJudgmentService) CorrectTranscript(ctx context.Context, summary, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return raw, nil
	}
	reply, err := s.Gen.GenerateText(ctx, fmt.Sprintf(correctPrompt, summary, raw))
	if err != nil {
		return raw, err
	}
	return strings.TrimSpace(reply), nil
}

// stripCodeFence removes a markdown fence the model sometimes wraps JSON in.
func stripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	if strings.HasPrefix(t, "```") {
		t = strings.TrimPrefix(t, "```json")
		t = strings.TrimPrefix(t, "```")
		t = strings.TrimSuffix(t, "```")
	}
	return strings.TrimSpace(t)
}
