// Package preplist turns a day's order history into the morning bake list:
// per-category quantities, a pickup schedule in 30-minute buckets, and alerts
// for same-day orders that landed after the cutoff.
package preplist

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/example/parkave-bakery/internal/clock"
	"github.com/example/parkave-bakery/internal/clover"
)

type BakeItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type BakeList struct {
	Breads  []BakeItem `json:"breads"`
	Bars    []BakeItem `json:"bars"`
	Cookies []BakeItem `json:"cookies"`
}

type ScheduleSlot struct {
	Time            string `json:"time"`
	DisplayTime     string `json:"displayTime"`
	OrderCount      int    `json:"orderCount"`
	ItemCount       int    `json:"itemCount"`
	HasSameDayAlert bool   `json:"hasSameDayAlert"`
}

type SameDayOrder struct {
	ID    string `json:"id"`
	Time  string `json:"time"`
	Items int    `json:"items"`
}

type Totals struct {
	Orders  int `json:"orders"`
	Items   int `json:"items"`
	Breads  int `json:"breads"`
	Bars    int `json:"bars"`
	Cookies int `json:"cookies"`
}

type Alerts struct {
	SameDayOrders     int            `json:"sameDayOrders"`
	SameDayOrdersList []SameDayOrder `json:"sameDayOrdersList"`
}

type Summary struct {
	Date           string         `json:"date"`
	BakeList       BakeList       `json:"bakeList"`
	PickupSchedule []ScheduleSlot `json:"pickupSchedule"`
	Totals         Totals         `json:"totals"`
	Alerts         Alerts         `json:"alerts"`
}

// Keyword tables for bucketing free-text Clover product names. Bars are
// checked first because their names are the most specific.
var (
	barKeywords = []string{
		"bar", "brownie", "brownies", "lemon bar", "caramel", "samoa",
		"revel", "turtle", "truffle", "pumpkin bar", "raspberry crumble",
	}
	cookieKeywords = []string{
		"cookie", "snickerdoodle", "molasses", "monster", "peanut butter cookie",
		"sugar cookie", "chocolate chip cookie", "oatmeal cookie", "carrot coconut",
	}
)

func categorize(name string) string {
	lower := strings.ToLower(name)
	for _, kw := range barKeywords {
		if strings.Contains(lower, kw) {
			return "bars"
		}
	}
	for _, kw := range cookieKeywords {
		if strings.Contains(lower, kw) {
			return "cookies"
		}
	}
	// everything else out of this oven is bread
	return "breads"
}

// sameDayAlertHour flags same-day orders placed at or after this local hour.
const sameDayAlertHour = 10

// Build aggregates Clover orders into the prep summary for targetDate,
// keeping only orders whose pickup metadata names that date. now supplies the
// same-day comparison point.
func Build(ordersIn []clover.Order, targetDate string, tz *clock.Bakery, now time.Time) Summary {
	counts := map[string]map[string]int{"breads": {}, "bars": {}, "cookies": {}}
	schedule := map[string]*ScheduleSlot{}
	var sameDay []SameDayOrder
	totalItems := 0
	orderCount := 0

	isToday := targetDate == tz.DateString(now)

	for _, o := range ordersIn {
		pickupDate, pickupTime, ok := clover.PickupInfo(o)
		if !ok {
			// No metadata at all: fall back to the order's creation instant
			// rendered in the bakery's zone.
			created := time.UnixMilli(o.CreatedTime).In(tz.Location())
			pickupDate = tz.DateString(created)
			pickupTime = created.Format("15:04")
		}
		if pickupDate != targetDate {
			continue
		}
		orderCount++

		if isToday {
			created := time.UnixMilli(o.CreatedTime).In(tz.Location())
			if tz.DateString(created) == targetDate && created.Hour() >= sameDayAlertHour {
				real := 0
				for _, li := range o.LineItems.Elements {
					if !clover.IsPickupMarker(li) {
						real++
					}
				}
				sameDay = append(sameDay, SameDayOrder{
					ID:    o.ID,
					Time:  formatTime12(pickupTime),
					Items: real,
				})
			}
		}

		bucket := halfHourBucket(pickupTime)
		slot, ok := schedule[bucket]
		if !ok {
			slot = &ScheduleSlot{Time: bucket}
			schedule[bucket] = slot
		}
		slot.OrderCount++

		for _, li := range o.LineItems.Elements {
			if clover.IsPickupMarker(li) {
				continue
			}
			name := li.Name
			if name == "" {
				name = "Unknown Item"
			}
			qty := li.EffectiveQuantity()
			counts[categorize(name)][name] += qty
			totalItems += qty
			slot.ItemCount += qty
		}
	}

	list := BakeList{
		Breads:  sortedBakeItems(counts["breads"]),
		Bars:    sortedBakeItems(counts["bars"]),
		Cookies: sortedBakeItems(counts["cookies"]),
	}

	slots := make([]ScheduleSlot, 0, len(schedule))
	for _, s := range schedule {
		s.DisplayTime = formatTime12(s.Time)
		for _, sd := range sameDay {
			if sd.Time == s.DisplayTime {
				s.HasSameDayAlert = true
				break
			}
		}
		slots = append(slots, *s)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Time < slots[j].Time })

	if sameDay == nil {
		sameDay = []SameDayOrder{}
	}

	return Summary{
		Date:           targetDate,
		BakeList:       list,
		PickupSchedule: slots,
		Totals: Totals{
			Orders:  orderCount,
			Items:   totalItems,
			Breads:  sumQuantities(list.Breads),
			Bars:    sumQuantities(list.Bars),
			Cookies: sumQuantities(list.Cookies),
		},
		Alerts: Alerts{SameDayOrders: len(sameDay), SameDayOrdersList: sameDay},
	}
}

func sortedBakeItems(m map[string]int) []BakeItem {
	out := make([]BakeItem, 0, len(m))
	for name, qty := range m {
		out = append(out, BakeItem{Name: name, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sumQuantities(items []BakeItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func halfHourBucket(timeHHMM string) string {
	parts := strings.SplitN(timeHHMM, ":", 2)
	if len(parts) != 2 {
		return timeHHMM
	}
	min, err := strconv.Atoi(parts[1])
	if err != nil {
		return timeHHMM
	}
	if min < 30 {
		return parts[0] + ":00"
	}
	return parts[0] + ":30"
}

func formatTime12(timeHHMM string) string {
	parts := strings.SplitN(timeHHMM, ":", 2)
	if len(parts) != 2 {
		return "N/A"
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return "N/A"
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%s %s", h, parts[1], ampm)
}
