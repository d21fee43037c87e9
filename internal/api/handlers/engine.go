package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/harmony-api/internal/logger"
	"github.com/Conceptual-Machines/harmony-api/internal/metrics"
)

// track logs and records one engine computation for the current request
func track(c *gin.Context, recorder *metrics.Recorder, operation string, start time.Time, success bool) {
	duration := time.Since(start)
	logger.LogComputation(c.Request.Context(), operation, duration, logger.WithContext(c))
	recorder.RecordComputation(c.Request.Context(), operation, duration, success)
}

func queryMode(c *gin.Context) string {
	return c.DefaultQuery("mode", defaultMode)
}

// queryBool reads an optional boolean query parameter. It answers 400 and
// returns false for ok when the value does not parse.
func queryBool(c *gin.Context, key string) (value, ok bool) {
	raw := c.Query(key)
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		badRequest(c, "invalid "+key+" parameter: "+raw)
		return false, false
	}
	return v, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
