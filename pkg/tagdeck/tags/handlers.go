package tags

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/tagdeck/tagdeck/pkg/tagdeck/auth"
	"github.com/tagdeck/tagdeck/pkg/tagdeck/models"
)

// Handler handles tag-related requests
type Handler struct {
	repo *Repository
}

// NewHandler creates a new tags handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ClickRequest identifies the tag being clicked
type ClickRequest struct {
	ID string `json:"id"`
}

// DeleteRequest identifies the tag being deleted
type DeleteRequest struct {
	ID string `json:"id" binding:"required"`
}

// List returns tags ordered by updated_at descending. Optional query
// filters (q, category, show_inactive) are applied server-side; the
// show_inactive filter is honored only for admin callers.
func (h *Handler) List(c *gin.Context) {
	all, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list tags")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	f := Filter{
		Search:       c.Query("q"),
		Category:     c.Query("category"),
		ShowInactive: c.Query("show_inactive") == "true",
		IsAdmin:      auth.IsAdmin(c),
	}

	c.JSON(http.StatusOK, Visible(all, f))
}

// Popular returns the top active tags by click count
func (h *Handler) Popular(c *gin.Context) {
	all, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list tags")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, Popular(all))
}

// Stats returns count statistics for the tag set
func (h *Handler) Stats(c *gin.Context) {
	all, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list tags")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	showInactive := c.Query("show_inactive") == "true" && auth.IsAdmin(c)
	c.JSON(http.StatusOK, ComputeStats(all, showInactive))
}

// Upsert creates a tag or replaces an existing one with the same id
func (h *Handler) Upsert(c *gin.Context) {
	var tag models.Tag
	if err := c.ShouldBindJSON(&tag); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	if err := h.repo.Upsert(c.Request.Context(), &tag); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": verr.Message})
			return
		}
		log.WithError(err).WithField("id", tag.ID).Error("Failed to upsert tag")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Delete removes a tag by id. Deleting an unknown id still reports success.
func (h *Handler) Delete(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), req.ID); err != nil {
		log.WithError(err).WithField("id", req.ID).Error("Failed to delete tag")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Click increments a tag's click counter
func (h *Handler) Click(c *gin.Context) {
	var req ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing tag id"})
		return
	}

	if err := h.repo.IncrementClick(c.Request.Context(), req.ID); err != nil {
		log.WithError(err).WithField("id", req.ID).Error("Failed to increment click count")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RegisterRoutes registers the public tag routes. Clicking is the one
// anonymous mutation: inactive tags are filtered out of the anonymous view
// before they could ever be clicked.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tags", h.List)
	rg.GET("/tags/popular", h.Popular)
	rg.GET("/tags/stats", h.Stats)
	rg.POST("/click", h.Click)
}

// RegisterAdminRoutes registers the mutating tag routes
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/tags", h.Upsert)
	rg.DELETE("/tags", h.Delete)
}
