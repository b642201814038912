package triage

import "fmt"

// TransitionError reports a caller error: a turn submitted against a session
// the state machine no longer accepts turns for.
type TransitionError struct {
	Code    string
	Message string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrSessionClosed rejects turns submitted after the session finalized.
var ErrSessionClosed = &TransitionError{
	Code:    "sessionClosed",
	Message: "session already dispatched; no further turns are processed",
}
