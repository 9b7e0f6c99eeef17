package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/parkave-bakery/internal/clock"
)

const reasonBlackout = "Online ordering unavailable on this date"

// Availability is the outcome of a single item/date check. Reason is set only
// when the item is unavailable and is customer-facing copy.
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func unavailable(format string, args ...any) Availability {
	return Availability{Reason: fmt.Sprintf(format, args...)}
}

// Engine evaluates ordering guardrails against immutable rule tables. It is
// stateless between calls: the reference time, pickup date and booked counts
// all arrive as arguments, so concurrent use needs no locking and tests can
// pin any clock reading they like.
type Engine struct {
	catalog *Catalog
	cal     *Calendar
	slots   SlotTable
	tz      *clock.Bakery
}

func NewEngine(catalog *Catalog, cal *Calendar, slots SlotTable, tz *clock.Bakery) *Engine {
	return &Engine{catalog: catalog, cal: cal, slots: slots, tz: tz}
}

func (e *Engine) Catalog() *Catalog { return e.catalog }

// Evaluate decides whether one item can be ordered for pickup on pickupDate,
// judged at the reference instant now. Unknown ids are an ordinary
// "unavailable" outcome, not an error: this function backs the advisory menu
// listing as well as cart validation.
func (e *Engine) Evaluate(itemID string, pickupDate, now time.Time) Availability {
	item, ok := e.catalog.Lookup(itemID)
	if !ok {
		return unavailable("Item not found")
	}
	if e.cal.IsBlackout(e.tz.DateString(pickupDate)) {
		return unavailable(reasonBlackout)
	}
	switch item.Kind {
	case Specialty:
		return e.evaluateSpecialty(item, pickupDate, now)
	default:
		return e.evaluateEveryday(item, pickupDate, now)
	}
}

func (e *Engine) evaluateSpecialty(item ItemRule, pickupDate, now time.Time) Availability {
	pickupDay := e.tz.Weekday(pickupDate)
	onSchedule := false
	for _, d := range item.AvailableDays {
		if d == pickupDay {
			onSchedule = true
			break
		}
	}
	if !onSchedule {
		return unavailable("%s is only available on %s",
			item.Name, strings.Join(sortedDayNames(item.AvailableDays), " & "))
	}

	// Cutoff instant: CutoffDaysBefore days ahead of pickup, at CutoffHour
	// local. The cutoff hour itself is the first unavailable minute.
	cutoff := e.tz.At(e.tz.AddDays(pickupDate, -item.CutoffDaysBefore), item.CutoffHour)
	if !now.Before(cutoff) {
		return unavailable("Order cutoff for %s has passed (%s the day before)",
			item.Name, hour12(item.CutoffHour))
	}
	return Availability{Available: true}
}

func (e *Engine) evaluateEveryday(item ItemRule, pickupDate, now time.Time) Availability {
	if e.tz.DateString(pickupDate) != e.tz.DateString(now) {
		// Future-date orders for everyday items have no advance ceiling.
		return Availability{Available: true}
	}
	if !item.SameDayAllowed {
		lead := item.MinLeadTimeDays
		if lead == 0 {
			lead = 1
		}
		return unavailable("%s requires at least %d day advance notice", item.Name, lead)
	}
	if item.SameDayCutoffHour > 0 && now.In(e.tz.Location()).Hour() >= item.SameDayCutoffHour {
		return unavailable("Same-day orders for %s must be placed before %s",
			item.Name, hour12(item.SameDayCutoffHour))
	}
	return Availability{Available: true}
}

// MenuItem is one orderable entry in the availability listing.
type MenuItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category,omitempty"`
	DailyLimit int    `json:"dailyLimit"`
	PriceCents int    `json:"priceCents"`
}

// Menu groups available items the way the storefront renders them.
type Menu struct {
	Breads  []MenuItem `json:"breads"`
	Bars    []MenuItem `json:"bars"`
	Cookies []MenuItem `json:"cookies"`
}

// ListAvailable runs Evaluate over the whole catalog and keeps what passes.
// Within breads, specialty items precede everyday items; bread entries are
// tagged with their schedule kind for storefront badging.
func (e *Engine) ListAvailable(pickupDate, now time.Time) Menu {
	menu := Menu{
		Breads:  []MenuItem{},
		Bars:    []MenuItem{},
		Cookies: []MenuItem{},
	}
	appendItem := func(list []MenuItem, item ItemRule, tag string) []MenuItem {
		return append(list, MenuItem{
			ID:         item.ID,
			Name:       item.Name,
			Category:   tag,
			DailyLimit: item.DailyLimit,
			PriceCents: item.PriceCents,
		})
	}

	// Two passes keep specialty items ahead of everyday items regardless of
	// catalog definition order.
	for _, pass := range []ScheduleKind{Specialty, Everyday} {
		for _, item := range e.catalog.Items() {
			if item.Kind != pass {
				continue
			}
			if !e.Evaluate(item.ID, pickupDate, now).Available {
				continue
			}
			switch item.Category {
			case Breads:
				tag := "everyday-bread"
				if item.Kind == Specialty {
					tag = "specialty-bread"
				}
				menu.Breads = appendItem(menu.Breads, item, tag)
			case Bars:
				menu.Bars = appendItem(menu.Bars, item, "")
			case Cookies:
				menu.Cookies = appendItem(menu.Cookies, item, "")
			}
		}
	}
	return menu
}

// hour12 renders a 24h clock hour as terse customer copy: "5pm", "10am".
func hour12(hour int) string {
	suffix := "am"
	h := hour
	switch {
	case hour == 0:
		h = 12
	case hour == 12:
		suffix = "pm"
	case hour > 12:
		h = hour - 12
		suffix = "pm"
	}
	return fmt.Sprintf("%d%s", h, suffix)
}
