package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/harmony-api/internal/progression"
)

// HealthCheck returns the health status of the API. The progression catalogue
// is embedded, so a failure to parse it marks the service degraded.
func HealthCheck(service *progression.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		catalogue := gin.H{"status": "ok"}
		status := "healthy"
		if templates, err := service.Templates(); err != nil {
			status = "degraded"
			catalogue = gin.H{"status": "error", "error": err.Error()}
		} else {
			catalogue["templates"] = len(templates)
		}

		c.JSON(http.StatusOK, gin.H{
			"status":       status,
			"progressions": catalogue,
		})
	}
}
