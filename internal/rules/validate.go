package rules

import (
	"fmt"
	"time"
)

// CartLine is one proposed order line.
type CartLine struct {
	ID       string
	Quantity int
}

// ValidationResult aggregates every violation in a cart so the customer sees
// the full list in one pass.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateOrder checks a whole cart for a pickup date/time. A blackout date
// fails immediately with a single error; otherwise every line is run through
// the availability evaluator and both quantity caps, and nothing
// short-circuits: a line can contribute an availability error, a daily-limit
// error and a per-order error all at once.
//
// Daily-limit accounting against units already sold lives in the order store
// at commit time; here the requested quantity alone is checked against the
// caps, which is the advisory pre-payment pass.
func (e *Engine) ValidateOrder(lines []CartLine, pickupDate time.Time, pickupTime string, now time.Time) ValidationResult {
	errs := []string{}

	if e.cal.IsBlackout(e.tz.DateString(pickupDate)) {
		errs = append(errs, "Online ordering is not available on this date. Please call the bakery.")
		return ValidationResult{Errors: errs}
	}

	for _, line := range lines {
		if avail := e.Evaluate(line.ID, pickupDate, now); !avail.Available {
			errs = append(errs, avail.Reason)
		}

		item, ok := e.catalog.Lookup(line.ID)
		if !ok {
			continue // already reported as not found
		}
		if line.Quantity > item.DailyLimit {
			errs = append(errs, fmt.Sprintf(
				"Maximum %d %s can be ordered online. For larger orders, please call the bakery.",
				item.DailyLimit, item.Name))
		}
		if item.MaxPerOrder > 0 && line.Quantity > item.MaxPerOrder {
			errs = append(errs, fmt.Sprintf(
				"Maximum %d %s per order. For larger orders, please use our custom order form.",
				item.MaxPerOrder, item.Name))
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
