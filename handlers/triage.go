package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"rescuehub/config"
	"rescuehub/cron"
	"rescuehub/models"
	"rescuehub/services/session"
	"rescuehub/services/triage"
	"rescuehub/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const triageGreeting = "This is RescueHub emergency services. What is your emergency?"

// TriageHandlers serves the caller-facing conversation endpoints.
type TriageHandlers struct {
	Store        *session.RedisSessionStore
	Orchestrator *triage.Orchestrator
	Queue        *asynq.Client
}

// StartSession mints a new triage session and a caller token scoped to it.
func (h *TriageHandlers) StartSession(c *gin.Context) {
	sessionID := uuid.New().String()
	sess := &models.TriageSession{
		ID:        sessionID,
		Window:    models.NewConversationWindow(models.DefaultWindowTurns),
		CreatedAt: time.Now().UTC(),
	}

	ctx := c.Request.Context()
	if err := h.Store.Save(ctx, sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session", "details": err.Error()})
		return
	}

	ttl := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	token, err := utils.GenerateSessionToken(sessionID, ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue session token", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionID": sessionID,
		"token":     token,
		"reply":     triageGreeting,
	})
}

// Turn runs one caller utterance through the agent pipeline.
func (h *TriageHandlers) Turn(c *gin.Context) {
	logger := getLogger(c)
	sessionID := c.Param("sessionID")

	var input struct {
		Message string `json:"message" binding:"required"`
		Voice   bool   `json:"voice"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	sess, err := h.Store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session", "details": err.Error()})
		return
	}

	utterance := input.Message
	if input.Voice {
		// Voice transcripts arrive noisy; let the model clean them up
		// against the conversation so far. Degrades to the raw text.
		corrected, err := h.Orchestrator.Judgment.CorrectTranscript(ctx, sess.Window.Summary(), utterance)
		if err != nil {
			logger.Warn("transcript correction failed", zap.Error(err))
		} else if corrected != "" {
			utterance = corrected
		}
	}

	if recalled := h.Orchestrator.RecallContext(ctx, utterance); recalled != "" {
		utterance = fmt.Sprintf("(Context: %s)\n%s", recalled, utterance)
	}

	reply, err := h.Orchestrator.ProcessTurn(ctx, utterance, sess)
	if err != nil {
		var terr *triage.TransitionError
		if errors.As(err, &terr) {
			c.JSON(http.StatusConflict, gin.H{"error": terr.Code, "details": terr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "turn processing failed", "details": err.Error()})
		return
	}

	if err := h.Store.Save(ctx, sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist session", "details": err.Error()})
		return
	}

	h.enqueueSnapshot(sess, logger)

	c.JSON(http.StatusOK, gin.H{
		"reply":        reply,
		"done":         sess.Context.Done,
		"incidentType": sess.Context.IncidentType,
	})
}

// EndSession drops the session from the cache. The incident record, if
// any, already lives in the store.
func (h *TriageHandlers) EndSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.Store.Clear(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to end session", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ended": true})
}

// enqueueSnapshot hands the session's current state to the persistence
// worker. Queue failures only log; the conversation must not stall on the
// background pipeline.
func (h *TriageHandlers) enqueueSnapshot(sess *models.TriageSession, logger *zap.Logger) {
	if h.Queue == nil {
		return
	}
	task, err := cron.NewIncidentPersistTask(triage.Snapshot(sess.ID, &sess.Context))
	if err != nil {
		logger.Error("failed to build persist task", zap.Error(err))
		return
	}
	if _, err := h.Queue.EnqueueContext(context.Background(), task); err != nil {
		logger.Error("failed to enqueue persist task", zap.Error(err), zap.String("sessionID", sess.ID))
	}
}
