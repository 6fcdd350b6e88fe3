package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

// stock_items tracks physical inventory units. serial is free text entered by
// users ("100", "045-B", "SN-2024-01") and may be empty for untracked stock.
func init() {
	m.Register(func(app core.App) error {
		col := core.NewBaseCollection("stock_items")

		col.Fields.Add(&core.TextField{Name: "part", Required: true, Max: 100})
		col.Fields.Add(&core.TextField{Name: "serial", Max: 100})
		col.Fields.Add(&core.TextField{Name: "batch", Max: 100})
		col.Fields.Add(&core.NumberField{Name: "quantity", Min: types.Pointer(0.0)})
		col.Fields.Add(&core.SelectField{
			Name:      "status",
			MaxSelect: 1,
			Values: []string{
				"ok", "attention", "damaged", "destroyed",
				"rejected", "lost", "quarantined", "returned",
			},
		})
		col.Fields.Add(&core.TextField{Name: "notes"})
		col.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		col.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})

		rule := "@request.auth.id != ''"
		col.ListRule = &rule
		col.ViewRule = &rule
		col.CreateRule = &rule
		col.UpdateRule = &rule
		superuser := "@request.auth.collectionName = '_superusers'"
		col.DeleteRule = &superuser

		col.AddIndex("idx_stock_items_part", false, "part", "")
		col.AddIndex("idx_stock_items_serial", false, "serial", "")

		return app.Save(col)
	}, func(app core.App) error {
		col, err := app.FindCollectionByNameOrId("stock_items")
		if err != nil {
			return nil // already gone
		}
		return app.Delete(col)
	})
}
