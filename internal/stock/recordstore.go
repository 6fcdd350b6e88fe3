package stock

import (
	"fmt"
	"iter"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

// pageSize is the number of records Items loads per query.
var pageSize = 200

// RecordStore is the Store backed by the stock_items PocketBase collection.
type RecordStore struct {
	app core.App
	// records yielded with a serial and not saved yet
	loaded map[string]*core.Record
}

// NewRecordStore returns a RecordStore reading and writing through app.
// Pass the transactional app when running inside a migration.
func NewRecordStore(app core.App) *RecordStore {
	return &RecordStore{app: app, loaded: map[string]*core.Record{}}
}

// Items pages through stock_items in id order. Records are fetched one page
// at a time, so saving while iterating does not reorder the walk.
//
// PocketBase text columns cannot be NULL, so an empty serial is treated as
// unset here: the item has a nil Serial and the backfill skips it.
func (s *RecordStore) Items() iter.Seq2[*Item, error] {
	return func(yield func(*Item, error) bool) {
		lastID := ""
		for {
			var page []*core.Record
			err := s.app.RecordQuery(Collection).
				AndWhere(dbx.NewExp("[[id]] > {:last}", dbx.Params{"last": lastID})).
				OrderBy("[[id]] ASC").
				Limit(int64(pageSize)).
				All(&page)
			if err != nil {
				yield(nil, fmt.Errorf("load %s after %q: %w", Collection, lastID, err))
				return
			}

			for _, rec := range page {
				item := itemFromRecord(rec)
				if item.Serial != nil {
					s.loaded[rec.Id] = rec
				}
				if !yield(item, nil) {
					return
				}
			}

			if len(page) < pageSize {
				return
			}
			lastID = page[len(page)-1].Id
		}
	}
}

// Save writes item.SerialInt onto the record Items loaded for it, or onto a
// freshly loaded copy when Items did not yield it.
func (s *RecordStore) Save(item *Item) error {
	rec, ok := s.loaded[item.ID]
	if !ok {
		var err error
		rec, err = s.app.FindRecordById(Collection, item.ID)
		if err != nil {
			return fmt.Errorf("find %s/%s: %w", Collection, item.ID, err)
		}
	}

	rec.Set("serial_int", item.SerialInt)
	if err := s.app.Save(rec); err != nil {
		return err
	}
	delete(s.loaded, item.ID)
	return nil
}

func itemFromRecord(rec *core.Record) *Item {
	item := &Item{
		ID:        rec.Id,
		SerialInt: int64(rec.GetInt("serial_int")),
	}
	if s := rec.GetString("serial"); s != "" {
		item.Serial = &s
	}
	return item
}

// SyncRecord applies SyncSerialInt to a stock_items record in place,
// without saving it. It reports whether serial_int changed.
func SyncRecord(rec *core.Record) bool {
	item := itemFromRecord(rec)
	if !SyncSerialInt(item) {
		return false
	}
	rec.Set("serial_int", item.SerialInt)
	return true
}
