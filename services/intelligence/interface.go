// Package intelligence wraps the language-model judgments the triage core
// depends on. Implementations are non-deterministic and may fail; callers
// substitute the centralized defaults from fallback.go and keep the turn
// moving rather than surfacing errors to the caller.
package intelligence

import (
	"context"

	"rescuehub/models"
)

// JudgmentService is the contract the orchestration core consumes.
type JudgmentService interface {
	// ClassifyIncident decides the emergency type of the latest utterance.
	ClassifyIncident(ctx context.Context, summary, utterance string) (models.IncidentKind, error)

	// DetectInjury checks whether the caller clearly mentions an injured person.
	DetectInjury(ctx context.Context, utterance, summary string) (models.InjuryJudgment, error)

	// ParseSlots extracts structured fields (address, injury flag) best-effort.
	ParseSlots(ctx context.Context, summary, utterance string) (models.Slots, error)

	// Triage judges whether enough injury detail exists to dispatch.
	Triage(ctx context.Context, summary, utterance string) (models.TriageJudgment, error)

	// Summarize condenses recalled entries against the current query.
	Summarize(ctx context.Context, entries []string, query string) (string, error)

	// CorrectTranscript fixes speech-to-text errors in a voice transcript.
	CorrectTranscript(ctx context.Context, summary, raw string) (string, error)
}

// TextGenerator produces a completion for a prompt. GeminiClient implements
// it; tests supply canned generators.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
