package preplist

import (
	"testing"
	"time"

	"github.com/example/parkave-bakery/internal/clock"
	"github.com/example/parkave-bakery/internal/clover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func denver(t *testing.T) *clock.Bakery {
	t.Helper()
	tz, err := clock.New("America/Denver")
	require.NoError(t, err)
	return tz
}

func localTime(t *testing.T, tz *clock.Bakery, date string, hour, min int) time.Time {
	t.Helper()
	d, err := tz.ParseDate(date)
	require.NoError(t, err)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, tz.Location())
}

func markerOrder(id string, created time.Time, date, pickupTime string, lines ...clover.LineItem) clover.Order {
	o := clover.Order{ID: id, CreatedTime: created.UnixMilli()}
	o.LineItems.Elements = append([]clover.LineItem{
		{Name: clover.PickupMarkerName(date, pickupTime)},
	}, lines...)
	return o
}

func qty(n int) *int { return &n }

func TestCategorize(t *testing.T) {
	assert.Equal(t, "bars", categorize("Lemon Bars"))
	assert.Equal(t, "bars", categorize("Turtle Brownie"))
	assert.Equal(t, "cookies", categorize("Snickerdoodle"))
	assert.Equal(t, "cookies", categorize("Brown Butter Chocolate Chip Cookie"))
	assert.Equal(t, "breads", categorize("Sourdough"))
	assert.Equal(t, "breads", categorize("Challah"))
}

func TestBuildAggregatesByCategoryAndSlot(t *testing.T) {
	tz := denver(t)
	const target = "2026-06-05"
	now := localTime(t, tz, target, 6, 0)

	in := []clover.Order{
		markerOrder("o1", localTime(t, tz, "2026-06-03", 9, 0), target, "08:00",
			clover.LineItem{Name: "Sourdough", Quantity: qty(2)},
			clover.LineItem{Name: "Lemon Bars", Quantity: qty(4)},
		),
		markerOrder("o2", localTime(t, tz, "2026-06-04", 15, 0), target, "08:15",
			clover.LineItem{Name: "Sourdough", Quantity: qty(1)},
			clover.LineItem{Name: "Snickerdoodle", Quantity: qty(6)},
		),
		// different pickup date, must be excluded
		markerOrder("o3", localTime(t, tz, "2026-06-04", 9, 0), "2026-06-06", "09:00",
			clover.LineItem{Name: "Challah", Quantity: qty(1)},
		),
	}

	got := Build(in, target, tz, now)

	assert.Equal(t, target, got.Date)
	assert.Equal(t, 2, got.Totals.Orders)
	assert.Equal(t, 13, got.Totals.Items)
	assert.Equal(t, []BakeItem{{Name: "Sourdough", Quantity: 3}}, got.BakeList.Breads)
	assert.Equal(t, []BakeItem{{Name: "Lemon Bars", Quantity: 4}}, got.BakeList.Bars)
	assert.Equal(t, []BakeItem{{Name: "Snickerdoodle", Quantity: 6}}, got.BakeList.Cookies)

	// 08:00 and 08:15 collapse into the same half-hour bucket
	require.Len(t, got.PickupSchedule, 1)
	assert.Equal(t, "08:00", got.PickupSchedule[0].Time)
	assert.Equal(t, "8:00 AM", got.PickupSchedule[0].DisplayTime)
	assert.Equal(t, 2, got.PickupSchedule[0].OrderCount)
	assert.Equal(t, 13, got.PickupSchedule[0].ItemCount)
}

func TestBuildFlagsLateSameDayOrders(t *testing.T) {
	tz := denver(t)
	const target = "2026-06-05"
	now := localTime(t, tz, target, 12, 0)

	in := []clover.Order{
		// placed at 10:30 today for a 14:00 pickup: after the alert hour
		markerOrder("late", localTime(t, tz, target, 10, 30), target, "14:00",
			clover.LineItem{Name: "Baguette", Quantity: qty(2)},
		),
		// placed yesterday, no alert
		markerOrder("early", localTime(t, tz, "2026-06-04", 9, 0), target, "14:00",
			clover.LineItem{Name: "Sourdough", Quantity: qty(1)},
		),
	}

	got := Build(in, target, tz, now)
	assert.Equal(t, 1, got.Alerts.SameDayOrders)
	require.Len(t, got.Alerts.SameDayOrdersList, 1)
	assert.Equal(t, "late", got.Alerts.SameDayOrdersList[0].ID)
	require.Len(t, got.PickupSchedule, 1)
	assert.True(t, got.PickupSchedule[0].HasSameDayAlert)
}

func TestBuildNoAlertsForPastDates(t *testing.T) {
	tz := denver(t)
	// reviewing yesterday: nothing counts as same-day
	now := localTime(t, tz, "2026-06-06", 8, 0)
	in := []clover.Order{
		markerOrder("o1", localTime(t, tz, "2026-06-05", 11, 0), "2026-06-05", "14:00",
			clover.LineItem{Name: "Sourdough", Quantity: qty(1)},
		),
	}
	got := Build(in, "2026-06-05", tz, now)
	assert.Equal(t, 0, got.Alerts.SameDayOrders)
}

func TestBuildFallsBackToCreatedTime(t *testing.T) {
	tz := denver(t)
	created := localTime(t, tz, "2026-06-05", 7, 45)
	o := clover.Order{ID: "bare", CreatedTime: created.UnixMilli()}
	o.LineItems.Elements = []clover.LineItem{{Name: "Epi", Quantity: qty(2)}}

	got := Build([]clover.Order{o}, "2026-06-05", tz, localTime(t, tz, "2026-06-06", 8, 0))
	assert.Equal(t, 1, got.Totals.Orders)
	require.Len(t, got.PickupSchedule, 1)
	assert.Equal(t, "07:30", got.PickupSchedule[0].Time)
}

func TestHalfHourBucket(t *testing.T) {
	assert.Equal(t, "09:00", halfHourBucket("09:00"))
	assert.Equal(t, "09:00", halfHourBucket("09:29"))
	assert.Equal(t, "09:30", halfHourBucket("09:30"))
	assert.Equal(t, "09:30", halfHourBucket("09:59"))
	assert.Equal(t, "garbage", halfHourBucket("garbage"))
}

func TestFormatTime12(t *testing.T) {
	assert.Equal(t, "7:00 AM", formatTime12("07:00"))
	assert.Equal(t, "12:15 PM", formatTime12("12:15"))
	assert.Equal(t, "12:00 AM", formatTime12("00:00"))
	assert.Equal(t, "5:30 PM", formatTime12("17:30"))
	assert.Equal(t, "N/A", formatTime12("bad"))
}

func TestMockOrdersTargetGivenDate(t *testing.T) {
	tz := denver(t)
	const target = "2026-06-05"
	got := Build(MockOrders(target, tz), target, tz, localTime(t, tz, "2026-06-06", 6, 0))
	assert.Greater(t, got.Totals.Orders, 0)
	assert.Greater(t, got.Totals.Items, 0)
	assert.NotEmpty(t, got.BakeList.Breads)
}
