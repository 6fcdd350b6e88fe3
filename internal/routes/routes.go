// Package routes registers the custom inventory API routes.
//
// Route groups:
//   - /api/ext/stock    : serial number parsing, serial_int rebuild, backfill metrics
//   - /api/ext/settings : app_settings groups (superuser)
package routes

import (
	"github.com/hibiken/asynq"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

// asynqClient enqueues background tasks. Nil until SetAsynqClient is called,
// in which case task routes answer 503.
var asynqClient *asynq.Client

// SetAsynqClient sets the shared worker client used by task routes.
func SetAsynqClient(c *asynq.Client) {
	asynqClient = c
}

// Register mounts all custom route groups on the PocketBase router.
func Register(se *core.ServeEvent) {
	g := se.Router.Group("/api/ext")
	g.Bind(apis.RequireAuth())

	registerStockRoutes(g)
	registerSettingsRoutes(g)
}

// ─── Helpers ─────────────────────────────────────────────

// authInfo returns the id and email of the authenticated actor.
func authInfo(e *core.RequestEvent) (string, string) {
	if e.Auth == nil {
		return "unknown", ""
	}
	return e.Auth.Id, e.Auth.GetString("email")
}

// apiError returns a PocketBase-style error response.
func apiError(e *core.RequestEvent, status int, msg string, err error) error {
	body := map[string]any{"code": status, "message": msg}
	if err != nil {
		body["data"] = map[string]any{"error": err.Error()}
	}
	return e.JSON(status, body)
}
