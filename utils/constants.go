// File: utils/constants.go
package utils

import "time"

// SessionKeyPrefix is the prefix used for Redis triage session keys.
const SessionKeyPrefix = "triage:sess:"

// DefaultSessionTTL is the time-to-live for idle triage sessions.
const DefaultSessionTTL = 30 * time.Minute
