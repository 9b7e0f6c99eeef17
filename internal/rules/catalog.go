package rules

import (
	"fmt"
	"sort"
	"time"
)

// ScheduleKind says whether an item bakes on specific weekdays with an
// advance-order cutoff, or every day.
type ScheduleKind string

const (
	Specialty ScheduleKind = "specialty"
	Everyday  ScheduleKind = "everyday"
)

// Category buckets used by the menu API and the prep dashboard.
type Category string

const (
	Breads  Category = "breads"
	Bars    Category = "bars"
	Cookies Category = "cookies"
)

// ItemRule is the ordering guardrail for one sellable product.
//
// For Specialty items AvailableDays, CutoffDaysBefore and CutoffHour apply.
// For Everyday items SameDayAllowed, SameDayCutoffHour and MinLeadTimeDays
// apply; SameDayCutoffHour of 0 means same-day ordering has no hour cutoff.
// MaxPerOrder of 0 means no per-order cap beyond DailyLimit.
type ItemRule struct {
	ID       string
	Name     string
	Category Category
	Kind     ScheduleKind

	AvailableDays    []time.Weekday
	CutoffDaysBefore int
	CutoffHour       int

	SameDayAllowed    bool
	SameDayCutoffHour int
	MinLeadTimeDays   int

	DailyLimit  int
	MaxPerOrder int

	// PriceCents is the only price the checkout flow will ever use;
	// client-submitted prices are ignored.
	PriceCents int
}

// Catalog is the authoritative item-rule table, loaded once at startup and
// immutable afterwards. Iteration order is definition order, which keeps
// specialty breads ahead of everyday breads in menu listings.
type Catalog struct {
	byID  map[string]ItemRule
	order []string
}

func NewCatalog(items []ItemRule) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]ItemRule, len(items))}
	for _, it := range items {
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate item id %q", it.ID)
		}
		c.byID[it.ID] = it
		c.order = append(c.order, it.ID)
	}
	if err := c.verify(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) Lookup(id string) (ItemRule, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// LookupByName finds a rule by display name. Clover line items from counter
// orders carry product names, not catalog ids.
func (c *Catalog) LookupByName(name string) (ItemRule, bool) {
	for _, id := range c.order {
		if c.byID[id].Name == name {
			return c.byID[id], true
		}
	}
	return ItemRule{}, false
}

// Items returns rules in definition order.
func (c *Catalog) Items() []ItemRule {
	out := make([]ItemRule, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

func (c *Catalog) Len() int { return len(c.order) }

// verify is the startup assertion over the rule tables. A bad entry here is a
// programming error and must fail the process at load time, never mid-request.
func (c *Catalog) verify() error {
	for _, id := range c.order {
		it := c.byID[id]
		if it.Name == "" {
			return fmt.Errorf("catalog: item %q has no name", id)
		}
		if it.DailyLimit < 1 {
			return fmt.Errorf("catalog: item %q dailyLimit must be >= 1 (got %d)", id, it.DailyLimit)
		}
		if it.MaxPerOrder < 0 {
			return fmt.Errorf("catalog: item %q maxPerOrder cannot be negative", id)
		}
		if it.MaxPerOrder > it.DailyLimit {
			return fmt.Errorf("catalog: item %q maxPerOrder %d exceeds dailyLimit %d", id, it.MaxPerOrder, it.DailyLimit)
		}
		if it.PriceCents <= 0 {
			return fmt.Errorf("catalog: item %q has no price", id)
		}
		switch it.Category {
		case Breads, Bars, Cookies:
		default:
			return fmt.Errorf("catalog: item %q has unknown category %q", id, it.Category)
		}
		switch it.Kind {
		case Specialty:
			if len(it.AvailableDays) == 0 {
				return fmt.Errorf("catalog: specialty item %q has no available days", id)
			}
			for _, d := range it.AvailableDays {
				if d < time.Sunday || d > time.Saturday {
					return fmt.Errorf("catalog: specialty item %q has invalid weekday %d", id, d)
				}
			}
			if it.CutoffDaysBefore < 0 {
				return fmt.Errorf("catalog: specialty item %q cutoffDaysBefore cannot be negative", id)
			}
			if it.CutoffHour < 0 || it.CutoffHour > 23 {
				return fmt.Errorf("catalog: specialty item %q cutoffHour %d out of range", id, it.CutoffHour)
			}
		case Everyday:
			if it.SameDayCutoffHour < 0 || it.SameDayCutoffHour > 23 {
				return fmt.Errorf("catalog: everyday item %q sameDayCutoffHour %d out of range", id, it.SameDayCutoffHour)
			}
		default:
			return fmt.Errorf("catalog: item %q has unknown schedule kind %q", id, it.Kind)
		}
	}
	return nil
}

// sortedDayNames renders AvailableDays ascending, for customer-facing copy.
func sortedDayNames(days []time.Weekday) []string {
	sorted := append([]time.Weekday(nil), days...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	names := make([]string, len(sorted))
	for i, d := range sorted {
		names[i] = d.String()
	}
	return names
}
