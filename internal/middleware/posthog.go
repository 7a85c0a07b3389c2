package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/bank_recon_engine/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware tracks successful state-changing API calls (imports, reconciliations, locks).
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		eventName := EventNameForRoute(c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string)
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

// EventNameForRoute turns a route template into an event name, e.g.
// "/api/v1/organizations/:organization_id/accounting-periods/lock" -> "api_v1_organizations_accounting_periods_lock".
func EventNameForRoute(fullPath string) string {
	parts := strings.Split(strings.Trim(fullPath, "/"), "/")
	kept := parts[:0]
	for _, p := range parts {
		if p == "" || strings.HasPrefix(p, ":") || strings.HasPrefix(p, "*") {
			continue
		}
		kept = append(kept, strings.ReplaceAll(p, "-", "_"))
	}
	return strings.Join(kept, "_")
}
