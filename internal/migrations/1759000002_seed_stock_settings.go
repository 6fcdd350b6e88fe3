package migrations

import (
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"

	"github.com/websoft9/inventory/internal/settings"
)

// Seeds the stock/serials settings group. An existing row is kept as is;
// down is a no-op since seed data is never rolled back.
func init() {
	m.Register(func(app core.App) error {
		_, err := app.FindFirstRecordByFilter(
			"app_settings",
			"module = {:module} && key = {:key}",
			dbx.Params{"module": settings.ModuleStock, "key": settings.KeySerials},
		)
		if err == nil {
			return nil
		}

		return settings.SetGroup(app, settings.ModuleStock, settings.KeySerials, settings.DefaultSerials())
	}, func(app core.App) error {
		return nil
	})
}
