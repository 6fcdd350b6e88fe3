// Package audit writes operation records to the audit_logs collection.
//
// Clients cannot write audit_logs; every row comes from Write.
package audit

import (
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"
)

const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Actions recorded by the inventory backend.
const (
	ActionSerialsRebuild = "stock.serials.rebuild"
)

// SystemUser is the actor for operations with no authenticated user, such as
// CLI runs.
const SystemUser = "system"

var validStatuses = map[string]bool{
	StatusPending: true,
	StatusSuccess: true,
	StatusFailed:  true,
}

// Entry holds all fields for a single audit record.
type Entry struct {
	// UserID is the record id of the actor, or SystemUser.
	UserID    string
	UserEmail string
	// Action is a dot-namespaced verb, e.g. ActionSerialsRebuild.
	Action       string
	ResourceType string
	ResourceID   string
	ResourceName string
	// Status must be one of StatusPending, StatusSuccess or StatusFailed.
	Status string
	// IP is empty for operations that run in the worker or the CLI.
	IP     string
	Detail map[string]any
}

// Write persists one audit record, bypassing collection rules.
// Errors are logged and swallowed: a failed audit write never fails the
// operation being audited.
func Write(app core.App, entry Entry) {
	if !validStatuses[entry.Status] {
		log.Warn().Str("status", entry.Status).Str("action", entry.Action).Msg("audit: invalid status, skipping")
		return
	}

	col, err := app.FindCollectionByNameOrId("audit_logs")
	if err != nil {
		log.Error().Err(err).Msg("audit: collection not found")
		return
	}

	rec := core.NewRecord(col)
	rec.Set("user_id", entry.UserID)
	rec.Set("user_email", entry.UserEmail)
	rec.Set("action", entry.Action)
	rec.Set("resource_type", entry.ResourceType)
	rec.Set("resource_id", entry.ResourceID)
	rec.Set("resource_name", entry.ResourceName)
	rec.Set("status", entry.Status)
	rec.Set("ip", entry.IP)
	if entry.Detail != nil {
		rec.Set("detail", entry.Detail)
	}

	if err := app.Save(rec); err != nil {
		log.Error().Err(err).Str("action", entry.Action).Msg("audit: save failed")
	}
}
