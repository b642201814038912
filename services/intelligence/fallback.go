package intelligence

import "rescuehub/models"

// Conservative defaults substituted whenever a judgment call fails, times
// out, or returns an unparseable payload. Declared once here so the degraded
// path of every call site is the same and tested in one place.

// DefaultFollowUpQuestion is asked when the triage judgment supplies none.
const DefaultFollowUpQuestion = "Can you describe the injury in more detail?"

func DefaultIncidentKind() models.IncidentKind {
	return models.IncidentUnknown
}

func DefaultInjuryJudgment() models.InjuryJudgment {
	return models.InjuryInconclusive
}

func DefaultSlots() models.Slots {
	return models.Slots{}
}

func DefaultTriageJudgment() models.TriageJudgment {
	return models.TriageJudgment{
		InjuryType:    "unknown",
		HasEnoughInfo: false,
		NextQuestion:  DefaultFollowUpQuestion,
	}
}
