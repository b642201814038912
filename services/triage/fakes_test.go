package triage

import (
	"context"

	"rescuehub/models"
	"rescuehub/services/dispatch"
	"rescuehub/services/intelligence"
	"rescuehub/services/memory"
)

// fakeJudgment scripts judgment outcomes per call; nil funcs fall back to
// the conservative defaults, mimicking an unavailable service.
type fakeJudgment struct {
	classify func(summary, utterance string) (models.IncidentKind, error)
	injury   func(utterance, summary string) (models.InjuryJudgment, error)
	slots    func(summary, utterance string) (models.Slots, error)
	triage   func(summary, utterance string) (models.TriageJudgment, error)
}

func (f *fakeJudgment) ClassifyIncident(ctx context.Context, summary, utterance string) (models.IncidentKind, error) {
	if f.classify == nil {
		return intelligence.DefaultIncidentKind(), nil
	}
	return f.classify(summary, utterance)
}

func (f *fakeJudgment) DetectInjury(ctx context.Context, utterance, summary string) (models.InjuryJudgment, error) {
	if f.injury == nil {
		return intelligence.DefaultInjuryJudgment(), nil
	}
	return f.injury(utterance, summary)
}

func (f *fakeJudgment) ParseSlots(ctx context.Context, summary, utterance string) (models.Slots, error) {
	if f.slots == nil {
		return intelligence.DefaultSlots(), nil
	}
	return f.slots(summary, utterance)
}

func (f *fakeJudgment) Triage(ctx context.Context, summary, utterance string) (models.TriageJudgment, error) {
	if f.triage == nil {
		return intelligence.DefaultTriageJudgment(), nil
	}
	return f.triage(summary, utterance)
}

func (f *fakeJudgment) Summarize(ctx context.Context, entries []string, query string) (string, error) {
	return "recalled summary", nil
}

func (f *fakeJudgment) CorrectTranscript(ctx context.Context, summary, raw string) (string, error) {
	return raw, nil
}

// planRecorder wraps the real planner and records every invocation.
type planRecorder struct {
	calls    int
	kind     models.IncidentKind
	injuries bool
}

func (p *planRecorder) plan() dispatch.PlanFunc {
	return func(kind models.IncidentKind, address string, injuries bool) models.DispatchResult {
		p.calls++
		p.kind = kind
		p.injuries = injuries
		return dispatch.Plan(kind, address, injuries)
	}
}

// fakeRecall serves preset search results and records adds.
type fakeRecall struct {
	entries []memory.Entry
	scores  []float64
	added   []memory.Entry
}

func (f *fakeRecall) Add(ctx context.Context, text, kind string) error {
	f.added = append(f.added, memory.Entry{Text: text, Kind: kind})
	return nil
}

func (f *fakeRecall) Search(ctx context.Context, query string, topK int) ([]memory.Entry, []float64, error) {
	return f.entries, f.scores, nil
}

// slotAddress returns a slots func that extracts the given address when the
// utterance mentions it.
func slotAddress(address string) func(summary, utterance string) (models.Slots, error) {
	return func(summary, utterance string) (models.Slots, error) {
		return models.Slots{Address: address}, nil
	}
}

func newSession() *models.TriageSession {
	return &models.TriageSession{
		ID:     "sess-test",
		Window: models.NewConversationWindow(models.DefaultWindowTurns),
	}
}
