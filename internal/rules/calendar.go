package rules

// Calendar holds the dates on which online ordering is suspended outright and
// the dates on which every pickup slot runs at half capacity. Dates are civil
// YYYY-MM-DD strings in the bakery's zone. A blackout outranks every other
// availability rule.
type Calendar struct {
	blackout map[string]struct{}
	reduced  map[string]struct{}
}

func NewCalendar(blackoutDates, reducedCapacityDates []string) *Calendar {
	c := &Calendar{
		blackout: make(map[string]struct{}, len(blackoutDates)),
		reduced:  make(map[string]struct{}, len(reducedCapacityDates)),
	}
	for _, d := range blackoutDates {
		c.blackout[d] = struct{}{}
	}
	for _, d := range reducedCapacityDates {
		c.reduced[d] = struct{}{}
	}
	return c
}

func (c *Calendar) IsBlackout(date string) bool {
	_, ok := c.blackout[date]
	return ok
}

func (c *Calendar) IsReducedCapacity(date string) bool {
	_, ok := c.reduced[date]
	return ok
}
