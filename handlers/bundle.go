package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Triage    *TriageHandlers
	Incidents *IncidentHandlers

	// Speech endpoints
	TranscribeHandler gin.HandlerFunc
}
