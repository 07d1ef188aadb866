package core

import (
	"fmt"
	"time"

	"smarthourly.com/smarthourly/utils"
)

// Shift boundaries in minutes from midnight. The three shifts partition the
// operating day: A [07:00,15:30), B [15:30,00:00 next day), C [00:00,07:00).
// All boundaries are end-exclusive, so the instant 00:00:00 belongs to C.
const (
	ShiftAStart = 7 * 60
	ShiftAEnd   = 15*60 + 30
	ShiftBStart = 15*60 + 30
	ShiftBEnd   = 24 * 60
	ShiftCStart = 0
	ShiftCEnd   = 7 * 60

	slotStep = 60 * time.Minute
)

// ShiftWindow is the absolute time span of one shift instance on a date.
type ShiftWindow struct {
	Shift string
	Date  time.Time
	Start time.Time
	End   time.Time
}

// WindowForShift resolves a (shift, date) pair into absolute start/end
// instants. The date is the calendar day the shift instance starts on, so
// shift B's end lands on the following day.
func WindowForShift(shift string, date time.Time) (ShiftWindow, error) {
	base := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	var startMin, endMin int
	switch shift {
	case "A":
		startMin, endMin = ShiftAStart, ShiftAEnd
	case "B":
		startMin, endMin = ShiftBStart, ShiftBEnd
	case "C":
		startMin, endMin = ShiftCStart, ShiftCEnd
	default:
		return ShiftWindow{}, &InvalidShiftError{Shift: shift}
	}

	return ShiftWindow{
		Shift: shift,
		Date:  base,
		Start: base.Add(time.Duration(startMin) * time.Minute),
		End:   base.Add(time.Duration(endMin) * time.Minute),
	}, nil
}

// SlotsForShift builds the canonical ordered slot labels for a shift
// instance. Slots step forward in fixed 60-minute increments from the shift
// start; the final increment is clipped to the shift boundary, so shift A
// ends with "15:00-15:30".
func SlotsForShift(shift string, date time.Time) ([]string, error) {
	w, err := WindowForShift(shift, date)
	if err != nil {
		return nil, err
	}

	var slots []string
	current := w.Start
	for {
		next := current.Add(slotStep)
		if next.After(w.End) {
			next = w.End
		}
		slots = append(slots, fmt.Sprintf("%s-%s", current.Format("15:04"), next.Format("15:04")))
		if next.Equal(w.End) {
			break
		}
		current = next
	}
	return slots, nil
}

// CurrentShiftAndDate classifies a wall-clock instant into its owning shift
// and the calendar date that shift instance belongs to. Instances that cross
// midnight belong to the date they start on; since C starts at 00:00 and B
// ends at 00:00 exclusive, every instant's shift date is simply the instant's
// own calendar date. Used to pre-select defaults in the UI only; slot
// computation always takes an explicit (shift, date) pair.
func CurrentShiftAndDate(now time.Time) (time.Time, string) {
	minuteOfDay := now.Hour()*60 + now.Minute()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case minuteOfDay < ShiftCEnd:
		return date, "C"
	case minuteOfDay < ShiftAEnd:
		return date, "A"
	default:
		return date, "B"
	}
}

// SlotWindow parses a slot label back into absolute instants anchored to
// referenceDate. An end time numerically before the start rolls to the next
// calendar day, which covers shift B's closing "23:00-00:00" slot.
func SlotWindow(slot string, referenceDate time.Time) (time.Time, time.Time, error) {
	var sh, sm, eh, em int
	if _, err := fmt.Sscanf(slot, "%d:%d-%d:%d", &sh, &sm, &eh, &em); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed slot %q: %w", slot, err)
	}

	base := time.Date(referenceDate.Year(), referenceDate.Month(), referenceDate.Day(), 0, 0, 0, 0, referenceDate.Location())
	start := base.Add(time.Duration(sh)*time.Hour + time.Duration(sm)*time.Minute)
	end := base.Add(time.Duration(eh)*time.Hour + time.Duration(em)*time.Minute)
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return start, end, nil
}

// PlantNow is the wall clock used for shift classification and active-slot
// filtering.
func PlantNow() time.Time {
	return time.Now().In(utils.PlantTZ)
}
