package routes

import (
	"errors"
	"net/http"

	"github.com/hibiken/asynq"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"

	"github.com/websoft9/inventory/internal/audit"
	"github.com/websoft9/inventory/internal/metrics"
	"github.com/websoft9/inventory/internal/serial"
	"github.com/websoft9/inventory/internal/stock"
	"github.com/websoft9/inventory/internal/worker"
)

// registerStockRoutes registers the stock serial routes.
//
// Endpoints:
//
//	GET  /api/ext/stock/serials/parse?serial=  : preview the serial_int of a serial
//	POST /api/ext/stock/serials/rebuild        : enqueue a serial_int rebuild (superuser)
//	GET  /api/ext/stock/metrics                : backfill counters, Prometheus format (superuser)
func registerStockRoutes(g *router.RouterGroup[*core.RequestEvent]) {
	s := g.Group("/stock")

	s.GET("/serials/parse", handleSerialParse)
	s.POST("/serials/rebuild", handleSerialsRebuild).Bind(apis.RequireSuperuserAuth())
	s.GET("/metrics", apis.WrapStdHandler(metrics.Handler())).Bind(apis.RequireSuperuserAuth())
}

func handleSerialParse(e *core.RequestEvent) error {
	text := e.Request.URL.Query().Get("serial")
	n, ok := serial.Parse(text)
	return e.JSON(http.StatusOK, map[string]any{
		"serial":    text,
		"serialInt": n,
		"matched":   ok,
	})
}

// handleSerialsRebuild enqueues the rebuild task. The worker writes the audit
// record once the rebuild has run; only enqueue failures are audited here.
func handleSerialsRebuild(e *core.RequestEvent) error {
	if asynqClient == nil {
		return apiError(e, http.StatusServiceUnavailable, "task queue unavailable", nil)
	}

	userID, userEmail := authInfo(e)
	task, err := worker.NewSerialsRebuildTask(worker.SerialsRebuildPayload{
		UserID:    userID,
		UserEmail: userEmail,
	})
	if err != nil {
		return apiError(e, http.StatusInternalServerError, "failed to build task payload", err)
	}

	info, err := asynqClient.Enqueue(task)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return apiError(e, http.StatusConflict, "a serial rebuild is already queued", nil)
	}
	if err != nil {
		audit.Write(e.App, audit.Entry{
			UserID: userID, UserEmail: userEmail,
			Action: audit.ActionSerialsRebuild, ResourceType: "collection", ResourceName: stock.Collection,
			IP:     e.RealIP(),
			Status: audit.StatusFailed,
			Detail: map[string]any{"errorMessage": err.Error()},
		})
		return apiError(e, http.StatusInternalServerError, "enqueue failed", err)
	}

	return e.JSON(http.StatusAccepted, map[string]any{"taskId": info.ID})
}
