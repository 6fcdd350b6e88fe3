package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/rs/zerolog/log"

	"github.com/websoft9/inventory/internal/metrics"
	"github.com/websoft9/inventory/internal/stock"
)

// Fills serial_int for every existing stock item from the leading digits of
// its serial. Must sort after 1760000001, which adds the field.
//
// Down does not restore the previous values; they were all 0 after the
// previous step anyway.
func init() {
	m.Register(func(app core.App) error {
		stats, err := stock.UpdateSerials(stock.NewRecordStore(app))
		metrics.ObserveBackfill(stats, err)
		if err != nil {
			return err
		}

		log.Info().
			Str("collection", stock.Collection).
			Int("visited", stats.Visited).
			Int("saved", stats.Saved).
			Int("skipped", stats.Skipped).
			Int("defaulted", stats.Defaulted).
			Msg("serial_int backfill applied")
		return nil
	}, func(app core.App) error {
		return stock.RevertSerials(stock.NewRecordStore(app))
	})
}
