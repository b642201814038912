package models

// InjuryJudgment is the outcome of the injury-detection judgment.
type InjuryJudgment string

const (
	InjuryPresent      InjuryJudgment = "present"
	InjuryAbsent       InjuryJudgment = "absent"
	InjuryInconclusive InjuryJudgment = "inconclusive"
)

// Slots carries the best-effort structured extraction from one utterance.
// Any field may be empty; absence of a slot is not an error.
type Slots struct {
	Address string `json:"address,omitempty"`
	Injury  *bool  `json:"injury,omitempty"`
}

// TriageJudgment is the structured result of the medical triage judgment.
type TriageJudgment struct {
	InjuryType    string `json:"injury_type"`
	HasEnoughInfo bool   `json:"has_enough_info"`
	NextQuestion  string `json:"next_question,omitempty"`
}
