package rules

import "time"

// SlotDef is one fixed pickup window: a local HH:MM and the most orders the
// counter can hand out in it.
type SlotDef struct {
	Time      string
	MaxOrders int
}

// SlotTable holds the per-weekday-class slot lists. Slot times are looked up,
// never computed.
type SlotTable struct {
	Weekday  []SlotDef
	Saturday []SlotDef
	Sunday   []SlotDef
}

func (t SlotTable) forWeekday(d time.Weekday) []SlotDef {
	switch d {
	case time.Sunday:
		return t.Sunday
	case time.Saturday:
		return t.Saturday
	default:
		return t.Weekday
	}
}

// OpenSlot reports remaining capacity for one pickup window.
type OpenSlot struct {
	Time           string `json:"time"`
	RemainingSlots int    `json:"remainingSlots"`
	MaxOrders      int    `json:"maxOrders"`
}

// SlotAvailability is the open-slots answer for one pickup date.
type SlotAvailability struct {
	Available bool       `json:"available"`
	Slots     []OpenSlot `json:"slots"`
	Reason    string     `json:"reason,omitempty"`
}

// SlotMax returns the effective capacity of the pickup window at timeHHMM on
// pickupDate, after any reduced-capacity halving. The second return is false
// when no such window exists on that weekday.
func (e *Engine) SlotMax(pickupDate time.Time, timeHHMM string) (int, bool) {
	halved := e.cal.IsReducedCapacity(e.tz.DateString(pickupDate))
	for _, def := range e.slots.forWeekday(e.tz.Weekday(pickupDate)) {
		if def.Time != timeHHMM {
			continue
		}
		if halved {
			return def.MaxOrders / 2, true
		}
		return def.MaxOrders, true
	}
	return 0, false
}

// OpenSlots computes remaining pickup capacity for pickupDate. bookedByTime is
// the caller-supplied count of orders already promised per slot time; this
// function does no I/O and holds no state, it is capacity arithmetic over the
// counts it is handed. Reduced-capacity dates halve every slot's cap, rounded
// down. A weekday class with no slots configured yields zero open slots, not
// an error.
func (e *Engine) OpenSlots(pickupDate time.Time, bookedByTime map[string]int, now time.Time) SlotAvailability {
	if e.cal.IsBlackout(e.tz.DateString(pickupDate)) {
		return SlotAvailability{Slots: []OpenSlot{}, Reason: reasonBlackout}
	}

	defs := e.slots.forWeekday(e.tz.Weekday(pickupDate))
	halved := e.cal.IsReducedCapacity(e.tz.DateString(pickupDate))

	open := []OpenSlot{}
	for _, def := range defs {
		max := def.MaxOrders
		if halved {
			max = def.MaxOrders / 2
		}
		remaining := max - bookedByTime[def.Time]
		if remaining <= 0 {
			continue
		}
		open = append(open, OpenSlot{Time: def.Time, RemainingSlots: remaining, MaxOrders: max})
	}
	return SlotAvailability{Available: len(open) > 0, Slots: open}
}
