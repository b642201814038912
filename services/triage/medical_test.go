package triage

import (
	"context"
	"testing"

	"rescuehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insufficientTriage(summary, utterance string) (models.TriageJudgment, error) {
	return models.TriageJudgment{
		InjuryType:    "unknown",
		HasEnoughInfo: false,
		NextQuestion:  "Where exactly is the pain?",
	}, nil
}

func sufficientTriage(injuryType string) func(summary, utterance string) (models.TriageJudgment, error) {
	return func(summary, utterance string) (models.TriageJudgment, error) {
		return models.TriageJudgment{InjuryType: injuryType, HasEnoughInfo: true}, nil
	}
}

func TestMedicalHandlerFollowUpTrigger(t *testing.T) {
	h := &MedicalHandler{Judgment: &fakeJudgment{}, Plan: (&planRecorder{}).plan()}
	tc := &models.TriageContext{Address: "12 Oak Street"}

	res, err := h.Handle(context.Background(), FollowUpTrigger, tc, "")
	require.NoError(t, err)
	assert.Equal(t, medicalFollowUpReply, res.Reply)

	// The trigger token is not injury description text.
	assert.Empty(t, tc.InjuryDescription)
}

func TestMedicalHandlerStoresFirstUtteranceAsDescription(t *testing.T) {
	h := &MedicalHandler{Judgment: &fakeJudgment{triage: insufficientTriage}, Plan: (&planRecorder{}).plan()}
	tc := &models.TriageContext{Address: "12 Oak Street"}

	_, err := h.Handle(context.Background(), "my friend fell off a ladder", tc, "")
	require.NoError(t, err)
	assert.Equal(t, "my friend fell off a ladder", tc.InjuryDescription)

	_, err = h.Handle(context.Background(), "he is breathing", tc, "")
	require.NoError(t, err)
	assert.Equal(t, "my friend fell off a ladder", tc.InjuryDescription)
}

func TestMedicalHandlerAddressPromptEscalatesInStrictness(t *testing.T) {
	h := &MedicalHandler{Judgment: &fakeJudgment{}, Plan: (&planRecorder{}).plan()}
	tc := &models.TriageContext{}

	res, err := h.Handle(context.Background(), "My friend fell", tc, "")
	require.NoError(t, err)
	assert.Equal(t, medicalAskAddress, res.Reply)
	assert.True(t, tc.AskedAddressOnce)

	res, err = h.Handle(context.Background(), "where", tc, "")
	require.NoError(t, err)
	assert.Equal(t, medicalAskAddressStrict, res.Reply)

	// Re-running extraction on address-free text stays a no-op.
	assert.Empty(t, tc.Address)
}

func TestMedicalHandlerRegexAddressFallback(t *testing.T) {
	h := &MedicalHandler{Judgment: &fakeJudgment{triage: insufficientTriage}, Plan: (&planRecorder{}).plan()}
	tc := &models.TriageContext{}

	_, err := h.Handle(context.Background(), "I'm at 12 Oak Street", tc, "")
	require.NoError(t, err)
	assert.Equal(t, "12 Oak Street", tc.Address)
}

func TestMedicalHandlerAlwaysProbesBeforeDispatch(t *testing.T) {
	rec := &planRecorder{}
	h := &MedicalHandler{Judgment: &fakeJudgment{triage: sufficientTriage("fracture")}, Plan: rec.plan()}
	tc := &models.TriageContext{Address: "12 Oak Street"}

	// Even a fully informative first utterance only earns the probe question.
	res, err := h.Handle(context.Background(), "he has a broken leg", tc, "")
	require.NoError(t, err)
	assert.True(t, tc.MedicalProbeDone)
	assert.False(t, tc.Done)
	assert.Zero(t, rec.calls)
	assert.NotEmpty(t, res.Reply)
}

func TestMedicalHandlerSingleIncidentConfirmationGate(t *testing.T) {
	rec := &planRecorder{}
	h := &MedicalHandler{Judgment: &fakeJudgment{triage: sufficientTriage("bleeding")}, Plan: rec.plan()}
	tc := &models.TriageContext{Address: "12 Oak Street"}

	// Turn 1: probe.
	_, err := h.Handle(context.Background(), "she is bleeding heavily from her arm", tc, "")
	require.NoError(t, err)
	assert.False(t, tc.Done)

	// Turn 2: sufficiency reached but the follow-up gate interposes.
	_, err = h.Handle(context.Background(), "yes it will not stop", tc, "")
	require.NoError(t, err)
	assert.False(t, tc.Done)
	assert.Equal(t, models.SeverityFollowupAsked, tc.Severity)
	assert.True(t, tc.HadMedical)
	assert.Zero(t, rec.calls)

	// Turn 3: finalize.
	_, err = h.Handle(context.Background(), "please hurry", tc, "")
	require.NoError(t, err)
	assert.True(t, tc.Done)
	assert.Equal(t, models.IncidentMedical, tc.IncidentType)
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, models.IncidentMedical, rec.kind)
	assert.True(t, rec.injuries)
}

func TestMedicalHandlerDualIncidentDispatchesImmediately(t *testing.T) {
	rec := &planRecorder{}
	h := &MedicalHandler{Judgment: &fakeJudgment{triage: insufficientTriage}, Plan: rec.plan()}
	tc := &models.TriageContext{
		Address:          "12 Oak Street",
		HadFire:          true,
		MedicalProbeDone: true,
	}
	tc.SetInjuries(true)

	// The keyword scan overrides the insufficient judgment.
	res, err := h.Handle(context.Background(), "He has a second-degree burn on his arm", tc, "")
	require.NoError(t, err)

	assert.True(t, tc.Done)
	assert.True(t, tc.HadMedical)
	assert.Equal(t, models.IncidentBoth, tc.IncidentType)
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, models.IncidentBoth, rec.kind)
	assert.True(t, rec.injuries)
	assert.Contains(t, res.Reply, "firetruck")
	assert.Contains(t, res.Reply, "ambulance")

	// The confirmation gate was skipped on the dual-incident path.
	assert.NotEqual(t, models.SeverityFollowupAsked, tc.Severity)
}

func TestMedicalHandlerEscalatedSessionFinalizesAsBoth(t *testing.T) {
	rec := &planRecorder{}
	h := &MedicalHandler{Judgment: &fakeJudgment{triage: insufficientTriage}, Plan: rec.plan()}
	tc := &models.TriageContext{
		Address:          "12 Oak Street",
		HadFire:          true,
		MedicalProbeDone: true,
		Severity:         models.SeverityFollowupAsked,
	}

	// Sufficiency never reached; the gate already crossed; keywords absent.
	_, err := h.Handle(context.Background(), "please just come quickly", tc, "")
	require.NoError(t, err)
	assert.True(t, tc.Done)
	assert.Equal(t, models.IncidentBoth, tc.IncidentType)
	assert.Equal(t, 1, rec.calls)
}

func TestMedicalAnalyzeKeywordCorroboration(t *testing.T) {
	h := &MedicalHandler{Judgment: &fakeJudgment{triage: insufficientTriage}}

	tj := h.analyze(context.Background(), "", "his leg looks broken")
	assert.True(t, tj.HasEnoughInfo)
	assert.Equal(t, "fracture", tj.InjuryType)
	assert.Empty(t, tj.NextQuestion)

	// No keyword match leaves the judgment alone but backfills the type.
	tj = h.analyze(context.Background(), "", "he is in pain")
	assert.False(t, tj.HasEnoughInfo)
	assert.Equal(t, "other", tj.InjuryType)
	assert.Equal(t, "Where exactly is the pain?", tj.NextQuestion)
}
