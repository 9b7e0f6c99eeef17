package orders

import (
	"context"
	"fmt"

	"github.com/example/parkave-bakery/internal/db"
)

// Repo is the postgres-backed Store.
//
// Concurrency control at commit time: the availability check and the commit
// are separate operations, so two carts can both pass the advisory check
// against the same last unit of capacity. CommitOrder therefore takes a
// per-slot advisory transaction lock (pg_advisory_xact_lock on the date+time
// key) and re-counts inside the transaction before inserting, turning the
// commit into a single-writer decrement-and-check per slot. The pre-payment
// validation stays advisory.
type Repo struct{ db *db.DB }

func NewRepo(d *db.DB) *Repo { return &Repo{db: d} }

func (r *Repo) UnitsSold(ctx context.Context, date string) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `
SELECT l.item_id, COALESCE(SUM(l.quantity), 0)
FROM order_lines l
JOIN orders o ON o.id = l.order_id
WHERE o.pickup_date = $1 AND o.status <> 'canceled'
GROUP BY l.item_id`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}

func (r *Repo) BookedBySlot(ctx context.Context, date string) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `
SELECT pickup_time, COUNT(*)
FROM orders
WHERE pickup_date = $1 AND status <> 'canceled'
GROUP BY pickup_time`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		out[t] = n
	}
	return out, rows.Err()
}

// CommitOrder inserts an order if, under the slot's transaction lock, the
// slot still has capacity (slotMax) and no line would push an item past its
// daily limit. slotMax is the effective per-slot cap for the pickup date
// (already halved on reduced-capacity dates); dailyLimits maps item id to its
// daily cap.
func (r *Repo) CommitOrder(ctx context.Context, o Order, slotMax int, dailyLimits map[string]int) (int64, error) {
	var id int64
	err := r.db.WithTx(ctx, func(tx db.Tx) error {
		if err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, o.PickupDate+"@"+o.PickupTime); err != nil {
			return err
		}

		var booked int
		if err := tx.QueryRow(ctx, `
SELECT COUNT(*) FROM orders
WHERE pickup_date = $1 AND pickup_time = $2 AND status <> 'canceled'`,
			o.PickupDate, o.PickupTime).Scan(&booked); err != nil {
			return err
		}
		if booked >= slotMax {
			return ErrSlotFull
		}

		for _, line := range o.Lines {
			limit, ok := dailyLimits[line.ItemID]
			if !ok {
				continue
			}
			var sold int
			if err := tx.QueryRow(ctx, `
SELECT COALESCE(SUM(l.quantity), 0)
FROM order_lines l
JOIN orders o ON o.id = l.order_id
WHERE o.pickup_date = $1 AND o.status <> 'canceled' AND l.item_id = $2`,
				o.PickupDate, line.ItemID).Scan(&sold); err != nil {
				return err
			}
			if sold+line.Quantity > limit {
				return fmt.Errorf("%s: %w", line.ItemName, ErrDailyLimitReached)
			}
		}

		if err := tx.QueryRow(ctx, `
INSERT INTO orders(order_ref, pickup_date, pickup_time, customer_name, customer_email, status)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id`,
			o.Ref, o.PickupDate, o.PickupTime, o.CustomerName, o.CustomerEmail, StatusPending).Scan(&id); err != nil {
			return err
		}
		for _, line := range o.Lines {
			if err := tx.Exec(ctx, `
INSERT INTO order_lines(order_id, item_id, item_name, quantity, unit_price_cents)
VALUES ($1,$2,$3,$4,$5)`,
				id, line.ItemID, line.ItemName, line.Quantity, line.UnitPriceCents); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repo) SetStatusByCloverID(ctx context.Context, cloverOrderID, status string) error {
	return r.db.Exec(ctx, `UPDATE orders SET status=$2 WHERE clover_order_id=$1`, cloverOrderID, status)
}

// UpsertMirrored records an order discovered in Clover's history (placed
// through a channel that bypassed this service, or whose webhook was missed).
// Mirrored orders count as paid so booked counts stay honest.
func (r *Repo) UpsertMirrored(ctx context.Context, o Order) error {
	return r.db.WithTx(ctx, func(tx db.Tx) error {
		var id int64
		err := tx.QueryRow(ctx, `SELECT id FROM orders WHERE clover_order_id = $1`, o.CloverOrderID).Scan(&id)
		if err == nil {
			return nil // already mirrored
		}
		if !db.IsNotFound(err) {
			return err
		}

		if err := tx.QueryRow(ctx, `
INSERT INTO orders(order_ref, clover_order_id, pickup_date, pickup_time, customer_name, customer_email, status)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id`,
			o.Ref, o.CloverOrderID, o.PickupDate, o.PickupTime, o.CustomerName, o.CustomerEmail, StatusPaid).Scan(&id); err != nil {
			return err
		}
		for _, line := range o.Lines {
			if err := tx.Exec(ctx, `
INSERT INTO order_lines(order_id, item_id, item_name, quantity, unit_price_cents)
VALUES ($1,$2,$3,$4,$5)`,
				id, line.ItemID, line.ItemName, line.Quantity, line.UnitPriceCents); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repo) ListForDate(ctx context.Context, date string) ([]Order, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, order_ref, COALESCE(clover_order_id, ''), to_char(pickup_date, 'YYYY-MM-DD'), pickup_time,
       customer_name, customer_email, status, created_at
FROM orders
WHERE pickup_date = $1 AND status <> 'canceled'
ORDER BY pickup_time ASC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Ref, &o.CloverOrderID, &o.PickupDate, &o.PickupTime,
			&o.CustomerName, &o.CustomerEmail, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		lines, err := r.linesFor(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Lines = lines
	}
	return out, nil
}

func (r *Repo) linesFor(ctx context.Context, orderID int64) ([]Line, error) {
	rows, err := r.db.Query(ctx, `
SELECT item_id, item_name, quantity, unit_price_cents
FROM order_lines WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ItemID, &l.ItemName, &l.Quantity, &l.UnitPriceCents); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
