// Package worker manages the embedded Asynq task worker.
//
// The worker runs inside the PocketBase process and connects to Redis for
// persistent async task processing.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"

	"github.com/websoft9/inventory/internal/audit"
	"github.com/websoft9/inventory/internal/config"
	"github.com/websoft9/inventory/internal/metrics"
	"github.com/websoft9/inventory/internal/stock"
)

const (
	TaskSerialsRebuild = "stock:serials:rebuild"
)

// SerialsRebuildPayload identifies who asked for a rebuild.
type SerialsRebuildPayload struct {
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
}

// Worker manages the Asynq server and a shared client for enqueuing tasks.
type Worker struct {
	app    core.App
	server *asynq.Server
	client *asynq.Client
}

// New creates a Worker for app. Call Start to begin processing and Shutdown
// to stop.
func New(app core.App, cfg *config.Config) *Worker {
	opt := asynq.RedisClientOpt{Addr: cfg.RedisAddr}

	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: cfg.WorkerConcurrency,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
	})

	return &Worker{
		app:    app,
		server: srv,
		client: asynq.NewClient(opt),
	}
}

// Start begins processing tasks in a background goroutine.
// Call it only once per application lifecycle.
func (w *Worker) Start() {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskSerialsRebuild, w.handleSerialsRebuild)

	go func() {
		if err := w.server.Run(mux); err != nil {
			log.Error().Err(err).Msg("asynq worker stopped")
		}
	}()
}

// Client returns the shared Asynq client for enqueuing tasks.
func (w *Worker) Client() *asynq.Client {
	return w.client
}

// Shutdown stops the worker and closes the client connection.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
	_ = w.client.Close()
}

// NewSerialsRebuildTask builds the task that reruns the serial_int backfill.
// Enqueueing fails with asynq.ErrDuplicateTask while an identical rebuild is
// still pending, for up to an hour.
func NewSerialsRebuildTask(p SerialsRebuildPayload) (*asynq.Task, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("worker: marshal %s payload: %w", TaskSerialsRebuild, err)
	}
	return asynq.NewTask(TaskSerialsRebuild, raw, asynq.Queue("low"), asynq.Unique(time.Hour)), nil
}

func (w *Worker) handleSerialsRebuild(ctx context.Context, t *asynq.Task) error {
	var p SerialsRebuildPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// retrying a broken payload cannot succeed
		return fmt.Errorf("%s: decode payload: %v: %w", TaskSerialsRebuild, err, asynq.SkipRetry)
	}

	_, err := RebuildSerials(w.app, p.UserID, p.UserEmail)
	return err
}

// RebuildSerials reruns the serial_int backfill over every stock item and
// records the outcome in metrics and the audit log.
func RebuildSerials(app core.App, userID, userEmail string) (stock.Stats, error) {
	if userID == "" {
		userID = audit.SystemUser
	}

	stats, err := stock.UpdateSerials(stock.NewRecordStore(app))
	metrics.ObserveBackfill(stats, err)

	entry := audit.Entry{
		UserID:       userID,
		UserEmail:    userEmail,
		Action:       audit.ActionSerialsRebuild,
		ResourceType: "collection",
		ResourceName: stock.Collection,
		Status:       audit.StatusSuccess,
		Detail: map[string]any{
			"visited":   stats.Visited,
			"saved":     stats.Saved,
			"skipped":   stats.Skipped,
			"defaulted": stats.Defaulted,
		},
	}
	if err != nil {
		entry.Status = audit.StatusFailed
		entry.Detail["errorMessage"] = err.Error()
		audit.Write(app, entry)
		log.Error().Err(err).Int("saved", stats.Saved).Msg("serial_int rebuild failed")
		return stats, err
	}

	audit.Write(app, entry)
	log.Info().
		Int("visited", stats.Visited).
		Int("saved", stats.Saved).
		Int("skipped", stats.Skipped).
		Int("defaulted", stats.Defaulted).
		Msg("serial_int rebuild finished")
	return stats, nil
}
