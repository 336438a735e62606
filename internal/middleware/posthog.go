package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// EventEnqueuer accepts product analytics events. *utils.PosthogClientWrapper satisfies it.
type EventEnqueuer interface {
	Enqueue(distinctID, event string, properties map[string]any)
}

var untrackedRoutes = map[string]bool{
	"/health": true,
}

// PosthogMiddleware sends one event per successful authenticated request, named after
// the matched route and tagged with the ledger the request ran in.
func PosthogMiddleware(events EventEnqueuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if events == nil || untrackedRoutes[c.FullPath()] {
			return
		}
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		name := routeEventName(c.FullPath())
		if name == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if actx, ok := GetLedgerContext(c); ok {
			props["ledger_mode"] = string(actx.Mode)
			if !actx.IsPersonal() {
				props["company_id"] = actx.CompanyID
			}
		}
		for _, p := range c.Params {
			props["param_"+p.Key] = p.Value
		}
		events.Enqueue(userID, name, props)
	}
}

// routeEventName maps "/api/v1/ledger/entries/:entryID/void" to "ledger_entries_void".
func routeEventName(fullPath string) string {
	var parts []string
	for _, seg := range strings.Split(strings.TrimPrefix(fullPath, "/api/v1"), "/") {
		if seg == "" || strings.HasPrefix(seg, ":") {
			continue
		}
		parts = append(parts, strings.ReplaceAll(seg, ".", "_"))
	}
	return strings.Join(parts, "_")
}
