package preplist

import (
	"time"

	"github.com/example/parkave-bakery/internal/clock"
	"github.com/example/parkave-bakery/internal/clover"
)

// MockOrders fabricates a believable day of orders so the dashboard can be
// demoed without Clover credentials.
func MockOrders(date string, tz *clock.Bakery) []clover.Order {
	day, err := tz.ParseDate(date)
	if err != nil {
		return nil
	}
	at := func(hour, min int) int64 {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, tz.Location()).UnixMilli()
	}
	order := func(id string, createdAt int64, pickupTime string, lines ...clover.LineItem) clover.Order {
		o := clover.Order{
			ID:          id,
			CreatedTime: createdAt,
			Note:        "Pickup: " + date + " at " + pickupTime,
		}
		o.LineItems.Elements = lines
		return o
	}
	qty := func(n int) *int { return &n }

	return []clover.Order{
		order("mock-001", at(6, 30), "08:00",
			clover.LineItem{Name: "Sourdough", Quantity: qty(2)},
			clover.LineItem{Name: "Baguette", Quantity: qty(3)},
			clover.LineItem{Name: "Lemon Bars", Quantity: qty(4)},
		),
		order("mock-002", at(7, 15), "09:00",
			clover.LineItem{Name: "Norwegian Farm", Quantity: qty(1)},
			clover.LineItem{Name: "Ciabatta", Quantity: qty(2)},
			clover.LineItem{Name: "Snickerdoodle", Quantity: qty(6)},
		),
		order("mock-003", at(8, 0), "10:00",
			clover.LineItem{Name: "Blackfoot", Quantity: qty(2)},
			clover.LineItem{Name: "Flourless Brownies", Quantity: qty(3)},
			clover.LineItem{Name: "Brown Butter Chocolate Chip Cookie", Quantity: qty(12)},
		),
		order("mock-004", at(9, 30), "11:30",
			clover.LineItem{Name: "Focaccia", Quantity: qty(2)},
			clover.LineItem{Name: "Salted Caramel Bars", Quantity: qty(6)},
			clover.LineItem{Name: "Molasses Cookie", Quantity: qty(8)},
		),
		order("mock-005", at(10, 45), "14:00",
			clover.LineItem{Name: "Sourdough Rustic Loaf", Quantity: qty(1)},
			clover.LineItem{Name: "Demi Baguette", Quantity: qty(4)},
			clover.LineItem{Name: "Turtle Brownie", Quantity: qty(2)},
		),
	}
}
