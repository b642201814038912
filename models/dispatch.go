package models

// DispatchResult lists the resources committed to an incident and the
// estimated arrival time. It is constructed only by the dispatch planner and
// never mutated afterwards.
type DispatchResult struct {
	Resources  []string `json:"resources"`
	ETAMinutes int      `json:"etaMinutes"`
}
