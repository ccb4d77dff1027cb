package metadata

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler handles metadata resolution requests
type Handler struct {
	resolver *Resolver
}

// NewHandler creates a new metadata handler
func NewHandler(resolver *Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// ResolveRequest carries the raw user input (a bare domain or full URL)
type ResolveRequest struct {
	Input string `json:"input" binding:"required"`
}

// ResolveResponse reports the resolved info and the advisory status
type ResolveResponse struct {
	Status Status       `json:"status"`
	Info   *WebsiteInfo `json:"info,omitempty"`
}

// Resolve runs the resolution chain for the given input
func (h *Handler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, status := h.resolver.Resolve(c.Request.Context(), req.Input)
	c.JSON(http.StatusOK, ResolveResponse{Status: status, Info: info})
}

// RegisterRoutes registers metadata routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/metadata/resolve", h.Resolve)
}
