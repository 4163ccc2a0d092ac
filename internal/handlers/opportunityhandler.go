package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Hues-Apply/profile-sync/internal/dtos"
	"github.com/Hues-Apply/profile-sync/internal/services"
)

type OpportunityHandler struct {
	Opportunities *services.OpportunityService
}

func NewOpportunityHandler(opportunities *services.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{Opportunities: opportunities}
}

// opportunityToken is like bearerToken, except a missing header is fine
// when the service has a fallback token source configured.
func (h *OpportunityHandler) opportunityToken(c *gin.Context) (string, bool) {
	if c.GetHeader("Authorization") == "" && h.Opportunities.Fallback != nil {
		return "", true
	}
	return bearerToken(c)
}

// List proxies the opportunity listing with query filters.
func (h *OpportunityHandler) List(c *gin.Context) {
	token, ok := h.opportunityToken(c)
	if !ok {
		return
	}

	filter := dtos.OpportunityFilter{
		Kind:     c.Query("kind"),
		Query:    c.Query("q"),
		Location: c.Query("location"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.Query("page_size")); err == nil {
		filter.PageSize = size
	}

	resp, err := h.Opportunities.List(c.Request.Context(), token, filter)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch opportunities: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Matches returns the backend's ranked matches as-is.
func (h *OpportunityHandler) Matches(c *gin.Context) {
	token, ok := h.opportunityToken(c)
	if !ok {
		return
	}

	resp, err := h.Opportunities.Matches(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch matches: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}
