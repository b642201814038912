package handlers

import (
	"errors"
	"net/http"
	"strconv"

	incidentRepo "rescuehub/database/repository/incident"

	"github.com/gin-gonic/gin"
)

// IncidentHandlers serves the operator-facing read endpoints over the
// incident store.
type IncidentHandlers struct {
	Repo incidentRepo.IncidentRepository
}

// GetByID returns one incident record with its full history.
func (h *IncidentHandlers) GetByID(c *gin.Context) {
	rec, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, incidentRepo.ErrIncidentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch incident", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ListRecent returns the most recently updated incident records.
func (h *IncidentHandlers) ListRecent(c *gin.Context) {
	limit := int64(20)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer between 1 and 100"})
			return
		}
		limit = parsed
	}

	recs, err := h.Repo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list incidents", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"incidents": recs, "count": len(recs)})
}

// FindByAddress returns the record whose normalized address matches the
// query, if any.
func (h *IncidentHandlers) FindByAddress(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address query parameter is required"})
		return
	}

	rec, err := h.Repo.FindByAddress(c.Request.Context(), address)
	if errors.Is(err, incidentRepo.ErrIncidentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no incident at that address"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search incidents", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}
