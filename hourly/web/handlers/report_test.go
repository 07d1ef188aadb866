package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthourly.com/smarthourly/hourly/model"
)

func approvedEntry(line, slot string, ok, nok, downtime int) model.ProductionEntry {
	return model.ProductionEntry{
		Date:           "2024-01-01",
		Shift:          "A",
		Line:           line,
		TimeSlot:       slot,
		CustomerName:   "Acme Energy",
		MOType:         model.MOTypeFresh,
		MONumber:       "MO-1001",
		OkQty:          ok,
		NokQty:         nok,
		Downtime:       downtime,
		OperatorStatus: model.OperatorSubmitted,
		ApproverStatus: model.ApproverApproved,
	}
}

func TestSummarize(t *testing.T) {
	entries := []model.ProductionEntry{
		approvedEntry("Line-01", "07:00-08:00", 100, 5, 10),
		approvedEntry("Line-01", "08:00-09:00", 80, 20, 30),
		approvedEntry("Line-02", "07:00-08:00", 95, 0, 0),
	}

	totals, slots, lines := summarize(entries)

	assert.Equal(t, 275, totals.TotalOK)
	assert.Equal(t, 25, totals.TotalNOK)
	assert.Equal(t, 300, totals.TotalProduced)
	assert.InDelta(t, 91.67, totals.OkPct, 0.01)

	require.Len(t, slots, 2)
	assert.Equal(t, slotProduction{TimeSlot: "07:00-08:00", Total: 200}, slots[0])
	assert.Equal(t, slotProduction{TimeSlot: "08:00-09:00", Total: 100}, slots[1])

	require.Len(t, lines, 2)
	assert.Equal(t, lineDowntime{Line: "Line-01", Minutes: 40}, lines[0], "most downtime first")
	assert.Equal(t, lineDowntime{Line: "Line-02", Minutes: 0}, lines[1])
}

func TestSummarizeEmpty(t *testing.T) {
	totals, slots, lines := summarize(nil)
	assert.Zero(t, totals.TotalProduced)
	assert.Zero(t, totals.OkPct)
	assert.Empty(t, slots)
	assert.Empty(t, lines)
}

func TestBuildEntriesWorkbook(t *testing.T) {
	entries := []model.ProductionEntry{
		approvedEntry("Line-01", "07:00-08:00", 100, 5, 10),
		approvedEntry("Line-02", "08:00-09:00", 80, 20, 0),
	}

	book, err := buildEntriesWorkbook("Report", entries)
	require.NoError(t, err)
	defer book.Close()

	assert.Equal(t, []string{"Report"}, book.GetSheetList())

	header, err := book.GetCellValue("Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", header)

	line, err := book.GetCellValue("Report", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Line-01", line)

	okQty, err := book.GetCellValue("Report", "J3")
	require.NoError(t, err)
	assert.Equal(t, "80", okQty)
}
