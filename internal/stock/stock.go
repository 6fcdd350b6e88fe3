// Package stock holds the serial number backfill for stock items.
//
// UpdateSerials and RevertSerials are the forward and reverse bodies of the
// backfill migration. They only depend on Store, so the migration runner,
// the background worker and the CLI all drive the same code against
// whatever record store they own.
package stock

import (
	"fmt"
	"iter"

	"github.com/rs/zerolog/log"

	"github.com/websoft9/inventory/internal/serial"
)

// Collection is the PocketBase collection that stores stock items.
const Collection = "stock_items"

// Item is the part of a stock item record the backfill reads and writes.
type Item struct {
	ID string
	// Serial is nil when the item has no serial number.
	Serial *string
	// SerialInt is the numeric sort key derived from Serial.
	SerialInt int64
}

// Store gives the backfill access to every stock item.
//
// Items yields each item once, in any order; a non-nil error ends the
// sequence. Save persists the item's current SerialInt synchronously.
type Store interface {
	Items() iter.Seq2[*Item, error]
	Save(item *Item) error
}

// Stats counts what one backfill pass did.
type Stats struct {
	Visited   int
	Skipped   int // no serial
	Parsed    int // leading digits found
	Defaulted int // no usable leading digits, stored Default
	Saved     int
}

// UpdateSerials sets SerialInt from Serial on every item that has a serial
// and saves it. Items without a serial are neither modified nor saved.
//
// A serial that does not start with digits is stored as serial.Default and
// never fails the pass. A store error aborts the pass; it is returned
// wrapped, together with the stats gathered so far.
func UpdateSerials(store Store) (Stats, error) {
	var stats Stats

	for item, err := range store.Items() {
		if err != nil {
			return stats, fmt.Errorf("stock.UpdateSerials: iterate: %w", err)
		}
		stats.Visited++

		if item.Serial == nil {
			stats.Skipped++
			continue
		}

		n, ok := serial.Parse(*item.Serial)
		if ok {
			stats.Parsed++
		} else {
			n = serial.Default
			stats.Defaulted++
		}
		item.SerialInt = n

		if err := store.Save(item); err != nil {
			return stats, fmt.Errorf("stock.UpdateSerials: save %s: %w", item.ID, err)
		}
		stats.Saved++

		log.Debug().
			Str("id", item.ID).
			Str("serial", *item.Serial).
			Int64("serial_int", n).
			Msg("stock item serial_int updated")
	}

	return stats, nil
}

// RevertSerials is the reverse of UpdateSerials. It does nothing: the
// previous serial_int values are not kept anywhere, so they stay as the
// forward pass left them.
func RevertSerials(Store) error {
	return nil
}

// SyncSerialInt recomputes item.SerialInt from item.Serial for an item that
// is about to be saved, and reports whether the value changed.
//
// Unlike UpdateSerials, an item without a serial is reset to serial.Default,
// so clearing a serial also clears its sort key.
func SyncSerialInt(item *Item) bool {
	n := serial.Default
	if item.Serial != nil {
		n = serial.Int(*item.Serial)
	}
	if n == item.SerialInt {
		return false
	}
	item.SerialInt = n
	return true
}
