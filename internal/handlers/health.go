package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hues-Apply/profile-sync/internal/services"
)

// HealthCheck is the liveness probe. It reports the live session count so
// the reaper's behavior is visible without a debugger.
func HealthCheck(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "ok",
			"active_sessions": sessions.ActiveSessions(),
		})
	}
}
