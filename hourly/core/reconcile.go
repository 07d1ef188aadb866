package core

import (
	"time"

	"smarthourly.com/smarthourly/utils"
)

// OutstandingSlots returns the slots from allSlots that have no recorded
// entry yet, preserving allSlots order.
func OutstandingSlots(allSlots, recordedSlots []string) []string {
	recorded := make(map[string]struct{}, len(recordedSlots))
	for _, s := range recordedSlots {
		recorded[s] = struct{}{}
	}
	return utils.Filter(allSlots, func(s string) bool {
		_, done := recorded[s]
		return !done
	})
}

// ActiveNow keeps only the slots whose window contains now, start inclusive
// and end exclusive. An empty result means nothing is currently actionable
// for the selected shift instance; it is not an error.
func ActiveNow(slots []string, now time.Time, referenceDate time.Time) []string {
	return utils.Filter(slots, func(s string) bool {
		start, end, err := SlotWindow(s, referenceDate)
		if err != nil {
			return false
		}
		return !now.Before(start) && now.Before(end)
	})
}
