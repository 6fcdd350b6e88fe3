package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

// Adds serial_int, the numeric sort key derived from serial. Existing rows
// start at 0 until the backfill in the next step fills them in.
func init() {
	m.Register(func(app core.App) error {
		col, err := app.FindCollectionByNameOrId("stock_items")
		if err != nil {
			return err
		}

		col.Fields.Add(&core.NumberField{
			Name:    "serial_int",
			OnlyInt: true,
		})
		col.AddIndex("idx_stock_items_serial_int", false, "serial_int", "")

		return app.Save(col)
	}, func(app core.App) error {
		col, err := app.FindCollectionByNameOrId("stock_items")
		if err != nil {
			return nil // already removed
		}

		col.RemoveIndex("idx_stock_items_serial_int")
		col.Fields.RemoveByName("serial_int")
		return app.Save(col)
	})
}
