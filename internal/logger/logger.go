package logger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// Fields represents structured log fields
type Fields map[string]interface{}

// tagKeys are promoted to Sentry tags so events can be filtered by them
var tagKeys = []string{"request_id", "operation", "root", "mode", "export_id"}

// WithContext extracts request context for logging, including the key being
// worked on when the route names one.
func WithContext(c *gin.Context) Fields {
	fields := Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
	}

	if userID, exists := c.Get("user_id"); exists {
		fields["user_id"] = userID
	}
	if root := c.Param("root"); root != "" {
		fields["root"] = root
	}
	if mode := c.Query("mode"); mode != "" {
		fields["mode"] = mode
	}
	return fields
}

// Info logs an informational message and leaves a Sentry breadcrumb
func Info(msg string, fields Fields) {
	emit(sentry.LevelInfo, msg, fields)
}

// Warn logs a warning and leaves a Sentry breadcrumb
func Warn(msg string, fields Fields) {
	emit(sentry.LevelWarning, msg, fields)
}

// Debug logs a debug message and leaves a Sentry breadcrumb
func Debug(msg string, fields Fields) {
	emit(sentry.LevelDebug, msg, fields)
}

func emit(level sentry.Level, msg string, fields Fields) {
	log.Printf("[%s] %s %s", strings.ToUpper(string(level)), msg, formatFields(fields))

	if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.AddBreadcrumb(&sentry.Breadcrumb{
			Type:     string(level),
			Category: "log",
			Message:  msg,
			Data:     map[string]interface{}(fields),
			Level:    level,
		}, nil)
	}
}

// Error logs an error and reports it to Sentry with fields as context
func Error(msg string, err error, fields Fields) {
	log.Printf("[ERROR] %s: %v %s", msg, err, formatFields(fields))

	if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetContext("fields", sentry.Context(fields))
			for _, key := range tagKeys {
				if v, ok := fields[key].(string); ok && v != "" {
					scope.SetTag(key, v)
				}
			}
			if err == nil {
				hub.CaptureException(errors.New(msg))
				return
			}
			hub.CaptureException(fmt.Errorf("%s: %w", msg, err))
		})
	}
}

// LogComputation logs one engine computation and records it as a Sentry span
// on the request transaction. fields gains operation and duration_ms.
func LogComputation(ctx context.Context, operation string, duration time.Duration, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	fields["operation"] = operation
	fields["duration_ms"] = duration.Milliseconds()

	Debug("Computation completed", fields)

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		span := sentry.StartSpan(ctx, "engine."+operation)
		span.Description = operation
		for k, v := range fields {
			span.SetData(k, v)
		}
		span.Finish()
	}
}

// formatFields renders fields as {k=v, ...} with keys sorted
func formatFields(fields Fields) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + formatValue(fields[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatValue(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.2f", f)
	}
	return fmt.Sprint(v)
}
