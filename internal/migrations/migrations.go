// Package migrations contains the PocketBase Go migrations for the inventory
// collections.
//
// Every file registers itself from init() and runs in file name order, so a
// step that needs a field must sort after the step that adds it.
// The package must be blank-imported by the binary and by tests:
//
//	_ "github.com/websoft9/inventory/internal/migrations"
package migrations
