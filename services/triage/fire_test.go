package triage

import (
	"context"
	"errors"
	"testing"

	"rescuehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFireHandlerAsksForAddressFirst(t *testing.T) {
	rec := &planRecorder{}
	h := &FireHandler{Judgment: &fakeJudgment{}, Plan: rec.plan()}
	tc := &models.TriageContext{}

	res, err := h.Handle(context.Background(), "there is a fire", tc, "")
	require.NoError(t, err)
	assert.Equal(t, fireAskAddress, res.Reply)
	assert.Equal(t, models.AgentFire, res.NextOwner)
	assert.False(t, res.Handoff)

	// Nothing but the address question happened.
	assert.Empty(t, tc.Address)
	assert.False(t, tc.HadFire)
	assert.False(t, tc.EscalationDone)
	assert.Zero(t, rec.calls)
}

func TestFireHandlerAsksInjuryQuestionOnce(t *testing.T) {
	h := &FireHandler{
		Judgment: &fakeJudgment{slots: slotAddress("12 Oak Street")},
		Plan:     (&planRecorder{}).plan(),
	}
	tc := &models.TriageContext{}

	res, err := h.Handle(context.Background(), "There's a fire at 12 Oak Street", tc, "")
	require.NoError(t, err)
	assert.Equal(t, fireAskInjuries, res.Reply)
	assert.Equal(t, "12 Oak Street", tc.Address)
	assert.True(t, tc.EscalationDone)
	assert.True(t, tc.HadFire)
	assert.Nil(t, tc.Injuries)
}

func TestFireHandlerNoInjuriesDispatchesFire(t *testing.T) {
	rec := &planRecorder{}
	h := &FireHandler{
		Judgment: &fakeJudgment{
			injury: func(utterance, summary string) (models.InjuryJudgment, error) {
				return models.InjuryAbsent, nil
			},
		},
		Plan: rec.plan(),
	}
	tc := &models.TriageContext{Address: "12 Oak Street", EscalationDone: true, HadFire: true}

	res, err := h.Handle(context.Background(), "no one is hurt", tc, "")
	require.NoError(t, err)

	assert.True(t, tc.Done)
	assert.Equal(t, models.IncidentFire, tc.IncidentType)
	require.NotNil(t, tc.Injuries)
	assert.False(t, *tc.Injuries)
	assert.Equal(t, 1, rec.calls)
	assert.False(t, rec.injuries)
	assert.Contains(t, res.Reply, "firetruck")
	assert.Contains(t, res.Reply, "firefighter")
	assert.Contains(t, res.Reply, "12 Oak Street")
}

func TestFireHandlerInjuryEscalates(t *testing.T) {
	rec := &planRecorder{}
	h := &FireHandler{
		Judgment: &fakeJudgment{
			injury: func(utterance, summary string) (models.InjuryJudgment, error) {
				return models.InjuryPresent, nil
			},
		},
		Plan: rec.plan(),
	}
	tc := &models.TriageContext{Address: "12 Oak Street", EscalationDone: true, HadFire: true}

	res, err := h.Handle(context.Background(), "yes, my neighbor is burned", tc, "")
	require.NoError(t, err)

	assert.Equal(t, fireEscalation, res.Reply)
	assert.Equal(t, models.AgentMedical, res.NextOwner)
	assert.True(t, res.Handoff)
	require.NotNil(t, tc.Injuries)
	assert.True(t, *tc.Injuries)

	// Dispatch belongs to the medical branch from here on.
	assert.Zero(t, rec.calls)
	assert.False(t, tc.Done)
}

func TestFireHandlerInconclusiveReasks(t *testing.T) {
	h := &FireHandler{
		Judgment: &fakeJudgment{
			injury: func(utterance, summary string) (models.InjuryJudgment, error) {
				return models.InjuryInconclusive, errors.New("low confidence")
			},
		},
		Plan: (&planRecorder{}).plan(),
	}
	tc := &models.TriageContext{Address: "12 Oak Street", EscalationDone: true, HadFire: true}

	res, err := h.Handle(context.Background(), "maybe", tc, "")
	require.NoError(t, err)
	assert.Equal(t, fireConfirmInjury, res.Reply)
	assert.Nil(t, tc.Injuries)
	assert.False(t, tc.Done)
}

func TestFireHandlerReentryWithKnownInjuryEscalatesAgain(t *testing.T) {
	h := &FireHandler{Judgment: &fakeJudgment{}, Plan: (&planRecorder{}).plan()}
	tc := &models.TriageContext{Address: "12 Oak Street", EscalationDone: true, HadFire: true}
	tc.SetInjuries(true)

	res, err := h.Handle(context.Background(), "anything", tc, "")
	require.NoError(t, err)
	assert.Equal(t, fireEscalation, res.Reply)
	assert.Equal(t, models.AgentMedical, res.NextOwner)
	assert.True(t, res.Handoff)
}

func TestFireHandlerReentryWithKnownNoInjuryFinalizes(t *testing.T) {
	rec := &planRecorder{}
	h := &FireHandler{Judgment: &fakeJudgment{}, Plan: rec.plan()}
	tc := &models.TriageContext{Address: "12 Oak Street", EscalationDone: true, HadFire: true}
	tc.SetInjuries(false)

	_, err := h.Handle(context.Background(), "anything", tc, "")
	require.NoError(t, err)
	assert.True(t, tc.Done)
	assert.Equal(t, models.IncidentFire, tc.IncidentType)
	assert.Equal(t, 1, rec.calls)
}
