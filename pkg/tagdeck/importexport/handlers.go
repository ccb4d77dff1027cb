package importexport

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/tagdeck/tagdeck/pkg/tagdeck/models"
	"github.com/tagdeck/tagdeck/pkg/tagdeck/tags"
)

// Handler handles import/export requests
type Handler struct {
	repo *tags.Repository
}

// NewHandler creates a new import/export handler
func NewHandler(repo *tags.Repository) *Handler {
	return &Handler{repo: repo}
}

// ImportRequest represents an import request
type ImportRequest struct {
	Tags []models.Tag `json:"tags" binding:"required"`
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// Import upserts a batch of tag records. Records that fail validation are
// skipped and reported; one bad record never aborts the batch.
func (h *Handler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := ImportResult{}
	for i, tag := range req.Tags {
		if err := h.repo.Upsert(c.Request.Context(), &tag); err != nil {
			var verr *tags.ValidationError
			if errors.As(err, &verr) {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("record %d: %s", i, verr.Message))
				continue
			}
			log.WithError(err).Error("Failed to import tags")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import tags"})
			return
		}
		result.Imported++
	}

	c.JSON(http.StatusOK, result)
}

// Export returns every tag record as a JSON download
func (h *Handler) Export(c *gin.Context) {
	all, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to export tags")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export tags"})
		return
	}

	filename := fmt.Sprintf("tagdeck-export-%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.JSON(http.StatusOK, all)
}

// RegisterRoutes registers import/export routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/import", h.Import)
	rg.GET("/export", h.Export)
}
