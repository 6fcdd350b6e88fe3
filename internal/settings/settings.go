// Package settings reads and writes grouped configuration values stored in
// the app_settings PocketBase collection.
//
// Each row is one group identified by (module, key), e.g. ("stock",
// "serials"). The value column holds a JSON object with every field of the
// group.
//
// GetGroup always returns a non-nil map: on any error it returns the
// fallback together with the error, so
//
//	v, _ := GetGroup(...)
//
// is safe. Bool never panics on a malformed field.
package settings

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

const (
	ModuleStock = "stock"
	KeySerials  = "serials"
)

// DefaultSerials is the code-level default of the stock/serials group.
func DefaultSerials() map[string]any {
	return map[string]any{
		// keep serial_int in step with serial whenever a stock item is saved
		"syncOnSave": true,
	}
}

// SerialsSyncOnSave reports whether stock item saves should recompute
// serial_int. Falls back to the default when the row is missing.
func SerialsSyncOnSave(app core.App) bool {
	group, _ := GetGroup(app, ModuleStock, KeySerials, DefaultSerials())
	return Bool(group, "syncOnSave", true)
}

// GetGroup loads the settings group identified by (module, key).
func GetGroup(app core.App, module, key string, fallback map[string]any) (map[string]any, error) {
	record, err := app.FindFirstRecordByFilter(
		"app_settings",
		"module = {:module} && key = {:key}",
		dbx.Params{"module": module, "key": key},
	)
	if err != nil {
		return fallback, fmt.Errorf("settings.GetGroup(%s/%s): %w", module, key, err)
	}

	rawValue := record.Get("value")
	if rawValue == nil {
		return fallback, fmt.Errorf("settings.GetGroup(%s/%s): value is nil", module, key)
	}

	// JSON fields come back as types.JSONRaw; anything else is re-marshalled.
	var jsonBytes []byte
	switch v := rawValue.(type) {
	case []byte:
		jsonBytes = v
	case string:
		jsonBytes = []byte(v)
	case json.RawMessage:
		jsonBytes = v
	default:
		jsonBytes, err = json.Marshal(v)
		if err != nil {
			return fallback, fmt.Errorf("settings.GetGroup(%s/%s): marshal raw value: %w", module, key, err)
		}
	}

	var result map[string]any
	if err := json.Unmarshal(jsonBytes, &result); err != nil {
		return fallback, fmt.Errorf("settings.GetGroup(%s/%s): unmarshal: %w", module, key, err)
	}
	if result == nil {
		return fallback, nil
	}
	return result, nil
}

// SetGroup upserts the settings group identified by (module, key).
func SetGroup(app core.App, module, key string, value map[string]any) error {
	record, err := app.FindFirstRecordByFilter(
		"app_settings",
		"module = {:module} && key = {:key}",
		dbx.Params{"module": module, "key": key},
	)
	if err != nil {
		collection, colErr := app.FindCollectionByNameOrId("app_settings")
		if colErr != nil {
			return fmt.Errorf("settings.SetGroup(%s/%s): find collection: %w", module, key, colErr)
		}
		record = core.NewRecord(collection)
		record.Set("module", module)
		record.Set("key", key)
	}

	record.Set("value", value)
	if err := app.Save(record); err != nil {
		return fmt.Errorf("settings.SetGroup(%s/%s): save: %w", module, key, err)
	}
	return nil
}

// Bool reads a boolean field. "true"/"false" strings (as left by manual
// edits) are accepted.
func Bool(group map[string]any, field string, fallback bool) bool {
	v, ok := group[field]
	if !ok || v == nil {
		return fallback
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return fallback
		}
		return parsed
	}
	return fallback
}
