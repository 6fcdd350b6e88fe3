package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

// app_settings holds one JSON value per (module, key) group, read and written
// through the settings package.
//
//	module  subsystem owning the row, e.g. "stock"
//	key     group name within the module, e.g. "serials"
//	value   JSON object with every field of the group
func init() {
	m.Register(func(app core.App) error {
		col := core.NewBaseCollection("app_settings")

		col.Fields.Add(&core.TextField{Name: "module", Required: true})
		col.Fields.Add(&core.TextField{Name: "key", Required: true})
		col.Fields.Add(&core.JSONField{Name: "value"})

		rule := "@request.auth.collectionName = '_superusers'"
		col.ListRule = &rule
		col.ViewRule = &rule
		col.CreateRule = nil
		col.UpdateRule = nil
		col.DeleteRule = nil

		col.Indexes = []string{
			"CREATE UNIQUE INDEX idx_app_settings_module_key ON app_settings (module, `key`)",
		}

		return app.Save(col)
	}, func(app core.App) error {
		col, err := app.FindCollectionByNameOrId("app_settings")
		if err != nil {
			return nil // already gone
		}
		return app.Delete(col)
	})
}
