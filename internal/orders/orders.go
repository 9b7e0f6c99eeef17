package orders

import (
	"context"
	"errors"
	"time"
)

// Order is one customer order as the bakery sees it: a pickup promise plus
// line items. Dates are civil YYYY-MM-DD strings in the bakery's zone and
// times are HH:MM slot times.
type Order struct {
	ID            int64
	Ref           string
	CloverOrderID string
	PickupDate    string
	PickupTime    string
	CustomerName  string
	CustomerEmail string
	Status        string
	Lines         []Line
	CreatedAt     time.Time
}

type Line struct {
	ItemID         string
	ItemName       string
	Quantity       int
	UnitPriceCents int
}

// Statuses an order moves through. Pending orders hold slot capacity until
// the payment webhook settles them one way or the other.
const (
	StatusPending  = "pending"
	StatusPaid     = "paid"
	StatusCanceled = "canceled"
)

var (
	// ErrSlotFull means the advisory pre-payment check went stale: by commit
	// time the requested slot had no capacity left.
	ErrSlotFull = errors.New("pickup slot is full")
	// ErrDailyLimitReached means an item's daily cap was exhausted between
	// the advisory check and the commit.
	ErrDailyLimitReached = errors.New("daily limit reached")
)

// Store supplies the engine's externally-held state: units already sold per
// item and orders already booked per slot for a pickup date. The engine only
// ever reads these; writes happen here, at commit time, with their own
// capacity re-check.
type Store interface {
	UnitsSold(ctx context.Context, date string) (map[string]int, error)
	BookedBySlot(ctx context.Context, date string) (map[string]int, error)
	CommitOrder(ctx context.Context, o Order, slotMax int, dailyLimits map[string]int) (int64, error)
	SetStatusByCloverID(ctx context.Context, cloverOrderID, status string) error
	UpsertMirrored(ctx context.Context, o Order) error
	ListForDate(ctx context.Context, date string) ([]Order, error)
}
