package auditlog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/farhanputra/event-management-backend/middleware"
)

// Trail records every mutating request after it completes. Reads are not
// audited. The write happens on the request path but is best effort, so a
// broken audit store never blocks the API.
func Trail(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			return
		}

		var userID *uint
		if p, exists := c.Get("principal"); exists {
			if principal, ok := p.(*middleware.Principal); ok {
				userID = &principal.UserID
			}
		}

		var eventID *uint
		if c.FullPath() != "" && len(c.Params) > 0 {
			// Event-scoped routes carry the event id as the :id param
			if raw := c.Param("id"); raw != "" && pathIsEventScoped(c.FullPath()) {
				if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
					v := uint(id)
					eventID = &v
				}
			}
		}

		status := "success"
		if c.Writer.Status() >= http.StatusBadRequest {
			status = "failure"
		}

		svc.LogAction(c.Request.Context(), userID, eventID,
			c.Request.Method+" "+c.FullPath(),
			map[string]interface{}{
				"path":        c.Request.URL.Path,
				"status_code": c.Writer.Status(),
			},
			middleware.GetIPFromContext(c),
			status,
		)
	}
}

func pathIsEventScoped(fullPath string) bool {
	const prefix = "/api/v1/events/:id"
	return len(fullPath) >= len(prefix) && fullPath[:len(prefix)] == prefix
}
