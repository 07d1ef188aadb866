package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthourly.com/smarthourly/utils"
)

func TestSlotsForShiftExamples(t *testing.T) {
	date := utils.MustParseDate("2024-01-01")

	tests := []struct {
		shift string
		want  []string
	}{
		{
			shift: "A",
			want: []string{
				"07:00-08:00", "08:00-09:00", "09:00-10:00", "10:00-11:00",
				"11:00-12:00", "12:00-13:00", "13:00-14:00", "14:00-15:00",
				"15:00-15:30",
			},
		},
		{
			shift: "B",
			want: []string{
				"15:30-16:30", "16:30-17:30", "17:30-18:30", "18:30-19:30",
				"19:30-20:30", "20:30-21:30", "21:30-22:30", "22:30-23:30",
				"23:30-00:00",
			},
		},
		{
			shift: "C",
			want: []string{
				"00:00-01:00", "01:00-02:00", "02:00-03:00", "03:00-04:00",
				"04:00-05:00", "05:00-06:00", "06:00-07:00",
			},
		},
	}

	for _, tt := range tests {
		t.Run("Shift "+tt.shift, func(t *testing.T) {
			got, err := SlotsForShift(tt.shift, date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlotsForShiftInvalid(t *testing.T) {
	_, err := SlotsForShift("D", utils.MustParseDate("2024-01-01"))
	var ise *InvalidShiftError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, "D", ise.Shift)
}

// Slots must tile the shift window exactly: contiguous, ordered, no gaps or
// overlaps, every slot 60 minutes except a shorter final one.
func TestSlotsTileShiftWindow(t *testing.T) {
	dates := []string{"2024-01-01", "2024-02-29", "2024-12-31", "2025-06-15"}

	for _, dateStr := range dates {
		date := utils.MustParseDate(dateStr)
		for _, shift := range []string{"A", "B", "C"} {
			t.Run(shift+" "+dateStr, func(t *testing.T) {
				w, err := WindowForShift(shift, date)
				require.NoError(t, err)

				slots, err := SlotsForShift(shift, date)
				require.NoError(t, err)
				require.NotEmpty(t, slots)

				cursor := w.Start
				for i, slot := range slots {
					start, end, err := SlotWindow(slot, date)
					require.NoError(t, err, "slot %s", slot)

					assert.True(t, start.Equal(cursor), "slot %s should start where the previous ended", slot)
					dur := end.Sub(start)
					if i < len(slots)-1 {
						assert.Equal(t, time.Hour, dur, "non-final slot %s must be 60 minutes", slot)
					} else {
						assert.LessOrEqual(t, dur, time.Hour, "final slot %s must be at most 60 minutes", slot)
						assert.Positive(t, dur)
					}
					cursor = end
				}
				assert.True(t, cursor.Equal(w.End), "last slot must end at the shift boundary")
			})
		}
	}
}

func TestCurrentShiftAndDate(t *testing.T) {
	day := func(h, m int) time.Time {
		return time.Date(2024, 3, 15, h, m, 0, 0, utils.PlantTZ)
	}

	tests := []struct {
		name  string
		now   time.Time
		shift string
	}{
		{"midnight belongs to C", day(0, 0), "C"},
		{"early morning", day(3, 30), "C"},
		{"last minute of C", day(6, 59), "C"},
		{"A starts at 07:00", day(7, 0), "A"},
		{"mid A", day(11, 15), "A"},
		{"last minute of A", day(15, 29), "A"},
		{"B starts at 15:30", day(15, 30), "B"},
		{"late evening", day(23, 59), "B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, shift := CurrentShiftAndDate(tt.now)
			assert.Equal(t, tt.shift, shift)
			assert.Equal(t, "2024-03-15", date.Format(utils.DateLayout))
		})
	}
}

func TestSlotWindowMidnightRoll(t *testing.T) {
	date := utils.MustParseDate("2024-01-01")

	start, end, err := SlotWindow("23:30-00:00", date)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01 23:30", start.Format("2006-01-02 15:04"))
	assert.Equal(t, "2024-01-02 00:00", end.Format("2006-01-02 15:04"))

	_, _, err = SlotWindow("not-a-slot", date)
	assert.Error(t, err)
}
