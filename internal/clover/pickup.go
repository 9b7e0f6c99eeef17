package clover

import (
	"fmt"
	"regexp"
	"strings"
)

// Pickup metadata rides inside Clover orders two ways: a hidden zero-price
// line item named "[PICKUP: YYYY-MM-DD @ HH:MM]" (current), or the order note
// "Pickup: YYYY-MM-DD at HH:MM" (legacy).
var (
	pickupItemRe = regexp.MustCompile(`(?i)\[PICKUP:\s*(\d{4}-\d{2}-\d{2})\s*@\s*(\d{1,2}:\d{2})\]`)
	pickupNoteRe = regexp.MustCompile(`(?i)Pickup:\s*(\d{4}-\d{2}-\d{2})\s*at\s*(\d{1,2}:\d{2})`)
)

// PickupInfo extracts the pickup date and HH:MM time from an order, checking
// the hidden line item first and the note second.
func PickupInfo(o Order) (date, timeHHMM string, ok bool) {
	for _, li := range o.LineItems.Elements {
		if m := pickupItemRe.FindStringSubmatch(li.Name); m != nil {
			return m[1], padTime(m[2]), true
		}
	}
	if m := pickupNoteRe.FindStringSubmatch(o.Note); m != nil {
		return m[1], padTime(m[2]), true
	}
	return "", "", false
}

// IsPickupMarker reports whether a line item is the hidden pickup metadata
// entry rather than a real product.
func IsPickupMarker(li LineItem) bool {
	return strings.HasPrefix(li.Name, "[PICKUP:")
}

// PickupMarkerName renders the hidden line item for a new checkout.
func PickupMarkerName(date, timeHHMM string) string {
	return fmt.Sprintf("[PICKUP: %s @ %s]", date, timeHHMM)
}

func padTime(t string) string {
	parts := strings.SplitN(t, ":", 2)
	if len(parts[0]) == 1 {
		return "0" + parts[0] + ":" + parts[1]
	}
	return t
}
