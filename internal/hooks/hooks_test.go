package hooks_test

import (
	"testing"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tests"

	"github.com/websoft9/inventory/internal/hooks"
	_ "github.com/websoft9/inventory/internal/migrations"
	"github.com/websoft9/inventory/internal/settings"
)

func newHookedApp(t *testing.T) *tests.TestApp {
	t.Helper()
	app, err := tests.NewTestApp()
	if err != nil {
		t.Fatal(err)
	}
	hooks.Register(app)
	return app
}

func saveStockItem(t *testing.T, app core.App, rec *core.Record, serial string) {
	t.Helper()
	rec.Set("part", "psu-650w")
	rec.Set("serial", serial)
	if err := app.Save(rec); err != nil {
		t.Fatal(err)
	}
}

func TestStockHooks_SyncOnCreateAndUpdate(t *testing.T) {
	app := newHookedApp(t)
	defer app.Cleanup()

	col, err := app.FindCollectionByNameOrId("stock_items")
	if err != nil {
		t.Fatal(err)
	}

	rec := core.NewRecord(col)
	saveStockItem(t, app, rec, "300-X")
	if got := reload(t, app, rec.Id).GetInt("serial_int"); got != 300 {
		t.Errorf("after create: expected 300, got %d", got)
	}

	saveStockItem(t, app, rec, "B-12")
	if got := reload(t, app, rec.Id).GetInt("serial_int"); got != 0 {
		t.Errorf("after update to non-numeric serial: expected 0, got %d", got)
	}
}

func TestStockHooks_ClearingSerialResetsSerialInt(t *testing.T) {
	app := newHookedApp(t)
	defer app.Cleanup()

	col, err := app.FindCollectionByNameOrId("stock_items")
	if err != nil {
		t.Fatal(err)
	}

	rec := core.NewRecord(col)
	saveStockItem(t, app, rec, "12")
	if got := reload(t, app, rec.Id).GetInt("serial_int"); got != 12 {
		t.Fatalf("after create: expected 12, got %d", got)
	}

	saveStockItem(t, app, rec, "")
	if got := reload(t, app, rec.Id).GetInt("serial_int"); got != 0 {
		t.Errorf("after clearing serial: expected 0, got %d", got)
	}

	// A new item created without a serial gets the default too.
	fresh := core.NewRecord(col)
	fresh.Set("serial_int", 17)
	saveStockItem(t, app, fresh, "")
	if got := reload(t, app, fresh.Id).GetInt("serial_int"); got != 0 {
		t.Errorf("create without serial: expected 0, got %d", got)
	}
}

func TestStockHooks_Disabled(t *testing.T) {
	app := newHookedApp(t)
	defer app.Cleanup()

	if err := settings.SetGroup(app, settings.ModuleStock, settings.KeySerials, map[string]any{"syncOnSave": false}); err != nil {
		t.Fatal(err)
	}

	col, err := app.FindCollectionByNameOrId("stock_items")
	if err != nil {
		t.Fatal(err)
	}
	rec := core.NewRecord(col)
	saveStockItem(t, app, rec, "55")
	if got := reload(t, app, rec.Id).GetInt("serial_int"); got != 0 {
		t.Errorf("sync disabled: expected serial_int 0, got %d", got)
	}
}

func reload(t *testing.T, app core.App, id string) *core.Record {
	t.Helper()
	rec, err := app.FindRecordById("stock_items", id)
	if err != nil {
		t.Fatal(err)
	}
	return rec
}
