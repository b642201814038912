package models

// AgentKind identifies which specialized handler owns the conversation turn.
type AgentKind string

const (
	AgentFire    AgentKind = "fire"
	AgentMedical AgentKind = "medical"
)

// IncidentKind is the classified type of an emergency.
type IncidentKind string

const (
	IncidentFire    IncidentKind = "fire"
	IncidentMedical IncidentKind = "medical"
	IncidentBoth    IncidentKind = "both"
	IncidentUnknown IncidentKind = "unknown"
)

// SeverityFollowupAsked marks that the medical branch has asked its one
// follow-up confirmation question.
const SeverityFollowupAsked = "followup-asked"

// TriageContext is the single mutable state record for one triage session.
// It is owned exclusively by the orchestrator; handlers receive it by
// reference for the duration of a turn and report ownership changes through
// their turn result, never by writing ActiveAgent themselves.
type TriageContext struct {
	Address           string       `json:"address,omitempty"`
	Severity          string       `json:"severity,omitempty"`
	Injuries          *bool        `json:"injuries,omitempty"`
	InjuryDescription string       `json:"injuryDescription,omitempty"`
	ActiveAgent       AgentKind    `json:"activeAgent,omitempty"`
	Done              bool         `json:"done"`
	EscalationDone    bool         `json:"escalationDone"`
	IncidentType      IncidentKind `json:"incidentType,omitempty"`
	MedicalProbeDone  bool         `json:"medicalProbeDone"`
	AskedAddressOnce  bool         `json:"askedAddressOnce"`
	HadFire           bool         `json:"hadFire"`
	HadMedical        bool         `json:"hadMedical"`
}

// InjuriesKnown reports whether the injury question has been resolved either way.
func (c *TriageContext) InjuriesKnown() bool {
	return c.Injuries != nil
}

// SetInjuries records the injury flag once known.
func (c *TriageContext) SetInjuries(v bool) {
	c.Injuries = &v
}
