// Package sync keeps the local order mirror in step with Clover so the
// availability engine's booked counts stay honest even when a webhook is
// missed or an order is placed at the counter.
package sync

import (
	"context"
	"log"
	"time"

	"github.com/example/parkave-bakery/internal/clock"
	"github.com/example/parkave-bakery/internal/clover"
	"github.com/example/parkave-bakery/internal/orders"
	"github.com/example/parkave-bakery/internal/rules"
	"github.com/google/uuid"
)

// lookback covers advance orders: an order placed two weeks ago can still
// carry a pickup date of today or later.
const lookback = 14 * 24 * time.Hour

// Mirror polls Clover on Interval and upserts any paid order it has not seen
// into the local store.
type Mirror struct {
	Store    orders.Store
	Clover   *clover.Client
	Catalog  *rules.Catalog
	TZ       *clock.Bakery
	Clock    clock.Clock
	Interval time.Duration
}

func (m *Mirror) Run(ctx context.Context) error {
	t := time.NewTicker(m.Interval)
	defer t.Stop()

	// kick immediately
	m.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			m.tick(ctx)
		}
	}
}

func (m *Mirror) tick(ctx context.Context) {
	now := m.Clock.Now()
	fetched, err := m.Clover.ListOrders(ctx, now.Add(-lookback), now.Add(24*time.Hour))
	if err != nil {
		log.Printf("sync: clover order fetch failed: %v", err)
		return
	}

	mirrored := 0
	for _, co := range fetched {
		pickupDate, pickupTime, ok := clover.PickupInfo(co)
		if !ok {
			created := time.UnixMilli(co.CreatedTime).In(m.TZ.Location())
			pickupDate = m.TZ.DateString(created)
			pickupTime = created.Format("15:04")
		}

		o := orders.Order{
			Ref:           uuid.NewString(),
			CloverOrderID: co.ID,
			PickupDate:    pickupDate,
			PickupTime:    pickupTime,
		}
		for _, li := range co.LineItems.Elements {
			if clover.IsPickupMarker(li) {
				continue
			}
			// Counter orders carry product names only; map back to catalog
			// ids where possible so daily-cap accounting sees them.
			itemID := ""
			if rule, ok := m.Catalog.LookupByName(li.Name); ok {
				itemID = rule.ID
			}
			o.Lines = append(o.Lines, orders.Line{
				ItemID:         itemID,
				ItemName:       li.Name,
				Quantity:       li.EffectiveQuantity(),
				UnitPriceCents: li.PriceCents,
			})
		}

		if err := m.Store.UpsertMirrored(ctx, o); err != nil {
			log.Printf("sync: upsert clover order %s failed: %v", co.ID, err)
			continue
		}
		mirrored++
	}
	if mirrored > 0 {
		log.Printf("sync: mirrored %d clover orders", mirrored)
	}
}
