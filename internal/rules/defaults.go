package rules

import "time"

// Default rule tables for Park Avenue Bakery, mirrored from the printed menu.
// Specialty breads bake on fixed weekdays and close for orders at 5pm the day
// before; everyday items take same-day orders until 10am unless noted.

const (
	specialtyCutoffHour = 17
	sameDayCutoffHour   = 10
)

func specialtyBread(id, name string, priceCents, dailyLimit int, days ...time.Weekday) ItemRule {
	return ItemRule{
		ID:               id,
		Name:             name,
		Category:         Breads,
		Kind:             Specialty,
		AvailableDays:    days,
		CutoffDaysBefore: 1,
		CutoffHour:       specialtyCutoffHour,
		DailyLimit:       dailyLimit,
		PriceCents:       priceCents,
	}
}

func everydayBread(id, name string, priceCents, dailyLimit int) ItemRule {
	return ItemRule{
		ID:                id,
		Name:              name,
		Category:          Breads,
		Kind:              Everyday,
		SameDayAllowed:    true,
		SameDayCutoffHour: sameDayCutoffHour,
		DailyLimit:        dailyLimit,
		PriceCents:        priceCents,
	}
}

func bar(id, name string, priceCents int) ItemRule {
	return ItemRule{
		ID:             id,
		Name:           name,
		Category:       Bars,
		Kind:           Everyday,
		SameDayAllowed: true,
		DailyLimit:     12,
		PriceCents:     priceCents,
	}
}

func cookie(id, name string, priceCents int) ItemRule {
	return ItemRule{
		ID:             id,
		Name:           name,
		Category:       Cookies,
		Kind:           Everyday,
		SameDayAllowed: true,
		DailyLimit:     24,
		PriceCents:     priceCents,
	}
}

// DefaultItems lists specialty breads first so menu listings keep them ahead
// of everyday items without extra sorting.
func DefaultItems() []ItemRule {
	items := []ItemRule{
		specialtyBread("bread-16", "Norwegian Farm", 900, 8, time.Monday),
		specialtyBread("sourdough-rye", "Sourdough Rye", 850, 8, time.Tuesday),
		specialtyBread("bread-17", "Old World Italian", 850, 8, time.Wednesday, time.Friday),
		specialtyBread("bread-4", "Blackfoot", 900, 8, time.Wednesday),
		specialtyBread("bread-13", "Golden Raisin Pecan", 950, 8, time.Thursday),
		specialtyBread("challah", "Challah", 900, 8, time.Friday),
		specialtyBread("bread-7", "Cranberry Wild Rice", 950, 8, time.Friday),
		specialtyBread("bread-20", "Rustic Multigrain", 900, 8, time.Saturday),

		everydayBread("bread-21", "Sourdough", 800, 10),
		everydayBread("bread-22", "Sourdough Rustic Loaf", 850, 10),
		everydayBread("bread-2", "Baguette", 450, 15),
		everydayBread("bread-8", "Demi Baguette", 300, 20),
		everydayBread("bread-10", "Ficelli", 400, 15),
		everydayBread("bread-9", "Epi", 450, 12),
		everydayBread("bread-5", "Boules", 750, 10),
		everydayBread("bread-6", "Ciabatta", 550, 12),
		everydayBread("bread-15", "Mini Ciabatta", 250, 24),
		everydayBread("bread-12", "French Pan Loaf", 700, 8),
		everydayBread("bread-11", "Focaccia", 650, 8),
		everydayBread("bread-1", "7 Grain Pan Loaf", 750, 8),
		everydayBread("bread-14", "Jocko", 800, 8),
		everydayBread("bread-18", "Pizza Dough", 500, 10),
		everydayBread("bread-19", "Potato Rolls", 600, 8),
	}

	// Big Sky needs a long overnight proof, so no same-day orders.
	bigSky := everydayBread("bread-3", "Big Sky Country Loaf", 850, 6)
	bigSky.SameDayAllowed = false
	bigSky.SameDayCutoffHour = 0
	bigSky.MinLeadTimeDays = 1
	items = append(items, bigSky)

	// Staff test item, orderable until 11pm. Not shown on the public menu.
	testItem := everydayBread("test-1", "Test Item", 100, 999)
	testItem.SameDayCutoffHour = 23
	items = append(items, testItem)

	items = append(items,
		bar("bar-1", "Flourless Brownies", 400),
		bar("bar-2", "Lemon Bars", 400),
		bar("bar-3", "Chocolate Chip Peanut Butter Bar", 425),
		bar("bar-4", "Pumpkin Bars", 400),
		bar("bar-5", "Raspberry Crumble Bars", 425),
		bar("bar-6", "Revel Bars", 400),
		bar("bar-7", "Salted Caramel Bars", 450),
		bar("bar-8", "Samoa Bars", 450),
		bar("bar-9", "Truffle Brownies", 450),
		bar("bar-10", "Turtle Brownie", 450),

		cookie("cookie-1", "Brown Butter Chocolate Chip Cookie", 350),
		cookie("cookie-2", "Carrot Coconut Cookie", 325),
		cookie("cookie-3", "Coconut Oatmeal Cookie", 325),
		cookie("cookie-4", "Flourless Peanut Butter Chocolate Chip", 350),
		cookie("cookie-5", "Molasses Cookie", 300),
		cookie("cookie-6", "Monster Cookie", 350),
		cookie("cookie-7", "Peanut Butter Cookie", 300),
		cookie("cookie-8", "Snickerdoodle", 300),
	)

	// Hand-decorated, so lower daily limit, 24h notice, and a per-order cap.
	sugar := cookie("cookie-9", "Sugar Cookies - Assorted", 375)
	sugar.DailyLimit = 18
	sugar.SameDayAllowed = false
	sugar.MinLeadTimeDays = 1
	sugar.MaxPerOrder = 18
	items = append(items, sugar)

	return items
}

// DefaultCalendar carries the 2026 holiday closures and the half-capacity
// recovery days that follow the big ones.
func DefaultCalendar() *Calendar {
	return NewCalendar(
		[]string{
			// Thanksgiving week
			"2026-11-24", "2026-11-25", "2026-11-26",
			// Christmas
			"2026-12-24", "2026-12-25",
			// New Year
			"2026-12-31", "2027-01-01",
			// Easter
			"2026-04-05",
			// Mother's Day weekend
			"2026-05-09", "2026-05-10",
		},
		[]string{
			"2026-11-27", // day after Thanksgiving
			"2026-12-26", // day after Christmas
			"2027-01-02", // day after New Year
		},
	)
}

// DefaultSlotTable is the counter's pickup grid. Lunch rush runs a tighter
// cap, Saturday mornings tighter still, Sunday closes early.
func DefaultSlotTable() SlotTable {
	return SlotTable{
		Weekday: []SlotDef{
			{Time: "07:00", MaxOrders: 4},
			{Time: "07:30", MaxOrders: 4},
			{Time: "08:00", MaxOrders: 5},
			{Time: "08:30", MaxOrders: 5},
			{Time: "09:00", MaxOrders: 5},
			{Time: "09:30", MaxOrders: 5},
			{Time: "10:00", MaxOrders: 5},
			{Time: "10:30", MaxOrders: 5},
			{Time: "11:00", MaxOrders: 3},
			{Time: "11:30", MaxOrders: 3},
			{Time: "12:00", MaxOrders: 3},
			{Time: "12:30", MaxOrders: 3},
			{Time: "13:00", MaxOrders: 4},
			{Time: "13:30", MaxOrders: 4},
			{Time: "14:00", MaxOrders: 5},
			{Time: "14:30", MaxOrders: 5},
			{Time: "15:00", MaxOrders: 5},
			{Time: "15:30", MaxOrders: 5},
			{Time: "16:00", MaxOrders: 4},
			{Time: "16:30", MaxOrders: 4},
			{Time: "17:00", MaxOrders: 3},
			{Time: "17:30", MaxOrders: 3},
		},
		Saturday: []SlotDef{
			{Time: "07:00", MaxOrders: 3},
			{Time: "07:30", MaxOrders: 3},
			{Time: "08:00", MaxOrders: 3},
			{Time: "08:30", MaxOrders: 3},
			{Time: "09:00", MaxOrders: 3},
			{Time: "09:30", MaxOrders: 4},
			{Time: "10:00", MaxOrders: 4},
			{Time: "10:30", MaxOrders: 4},
			{Time: "11:00", MaxOrders: 3},
			{Time: "11:30", MaxOrders: 3},
			{Time: "12:00", MaxOrders: 3},
			{Time: "12:30", MaxOrders: 3},
			{Time: "13:00", MaxOrders: 4},
			{Time: "13:30", MaxOrders: 4},
			{Time: "14:00", MaxOrders: 5},
			{Time: "14:30", MaxOrders: 5},
			{Time: "15:00", MaxOrders: 5},
			{Time: "15:30", MaxOrders: 5},
			{Time: "16:00", MaxOrders: 4},
			{Time: "16:30", MaxOrders: 4},
			{Time: "17:00", MaxOrders: 3},
			{Time: "17:30", MaxOrders: 3},
		},
		Sunday: []SlotDef{
			{Time: "08:00", MaxOrders: 3},
			{Time: "08:30", MaxOrders: 3},
			{Time: "09:00", MaxOrders: 3},
			{Time: "09:30", MaxOrders: 3},
			{Time: "10:00", MaxOrders: 4},
			{Time: "10:30", MaxOrders: 4},
			{Time: "11:00", MaxOrders: 3},
			{Time: "11:30", MaxOrders: 3},
			{Time: "12:00", MaxOrders: 3},
			{Time: "12:30", MaxOrders: 3},
			{Time: "13:00", MaxOrders: 4},
			{Time: "13:30", MaxOrders: 4},
		},
	}
}
