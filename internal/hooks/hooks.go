// Package hooks registers PocketBase event hooks for inventory business logic.
package hooks

import (
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"

	"github.com/websoft9/inventory/internal/settings"
	"github.com/websoft9/inventory/internal/stock"
)

// Register binds all custom event hooks to app.
func Register(app core.App) {
	registerStockHooks(app)
}

// registerStockHooks keeps serial_int in step with serial on every stock item
// create and update, so records written after the backfill migration sort
// the same way as the backfilled ones. Controlled by stock/serials.syncOnSave.
func registerStockHooks(app core.App) {
	sync := func(e *core.RecordEvent) error {
		if settings.SerialsSyncOnSave(e.App) && stock.SyncRecord(e.Record) {
			log.Debug().
				Str("id", e.Record.Id).
				Str("serial", e.Record.GetString("serial")).
				Int("serial_int", e.Record.GetInt("serial_int")).
				Msg("serial_int synced on save")
		}
		return e.Next()
	}

	app.OnRecordCreate(stock.Collection).BindFunc(sync)
	app.OnRecordUpdate(stock.Collection).BindFunc(sync)
}
