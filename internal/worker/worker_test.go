package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tests"

	_ "github.com/websoft9/inventory/internal/migrations"
)

func seedStockItem(t *testing.T, app core.App, serial string) string {
	t.Helper()
	col, err := app.FindCollectionByNameOrId("stock_items")
	if err != nil {
		t.Fatal(err)
	}
	rec := core.NewRecord(col)
	rec.Set("part", "fan-120mm")
	rec.Set("serial", serial)
	if err := app.Save(rec); err != nil {
		t.Fatal(err)
	}
	return rec.Id
}

func TestHandleSerialsRebuild(t *testing.T) {
	app, err := tests.NewTestApp()
	if err != nil {
		t.Fatal(err)
	}
	defer app.Cleanup()

	id := seedStockItem(t, app, "0042/rev-b")

	task, err := NewSerialsRebuildTask(SerialsRebuildPayload{UserID: "u1", UserEmail: "ops@example.com"})
	if err != nil {
		t.Fatal(err)
	}

	w := &Worker{app: app}
	if err := w.handleSerialsRebuild(context.Background(), task); err != nil {
		t.Fatal(err)
	}

	rec, err := app.FindRecordById("stock_items", id)
	if err != nil {
		t.Fatal(err)
	}
	if got := rec.GetInt("serial_int"); got != 42 {
		t.Errorf("expected serial_int 42, got %d", got)
	}

	logs, err := app.FindAllRecords("audit_logs")
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(logs))
	}
	if logs[0].GetString("user_id") != "u1" || logs[0].GetString("status") != "success" {
		t.Errorf("unexpected audit record: user_id=%q status=%q",
			logs[0].GetString("user_id"), logs[0].GetString("status"))
	}
}

func TestHandleSerialsRebuild_BadPayload(t *testing.T) {
	w := &Worker{}
	err := w.handleSerialsRebuild(context.Background(), asynq.NewTask(TaskSerialsRebuild, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("expected SkipRetry, got %v", err)
	}
}

func TestRebuildSerials_DefaultsActorToSystem(t *testing.T) {
	app, err := tests.NewTestApp()
	if err != nil {
		t.Fatal(err)
	}
	defer app.Cleanup()

	seedStockItem(t, app, "SN-2024-01")
	seedStockItem(t, app, "")

	stats, err := RebuildSerials(app, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Visited != 2 || stats.Skipped != 1 || stats.Defaulted != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}

	rec, err := app.FindFirstRecordByFilter("audit_logs", "action = 'stock.serials.rebuild'")
	if err != nil {
		t.Fatal(err)
	}
	if rec.GetString("user_id") != "system" {
		t.Errorf("expected system actor, got %q", rec.GetString("user_id"))
	}
}
