package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smarthourly.com/smarthourly/core"
	"smarthourly.com/smarthourly/hourly/model"
	"smarthourly.com/smarthourly/utils"
	web "smarthourly.com/smarthourly/web/common"
)

type ReportEndpoint struct {
	dm *core.DatabaseManager
}

func RegisterReport(r *gin.RouterGroup, dm *core.DatabaseManager) {
	ep := &ReportEndpoint{dm: dm}
	r.POST("/report/search", ep.Search)
	r.GET("/report/export", ep.Export)
}

// ReportSearchParams filters the approved-entries report. Dates are
// inclusive on both ends.
type ReportSearchParams struct {
	StartDate *web.DateOnly `json:"startDate" binding:"required"`
	EndDate   *web.DateOnly `json:"endDate" binding:"required"`
	Line      string        `json:"line"`
	Shift     string        `json:"shift"`
}

type reportFilter struct {
	StartDate string
	EndDate   string
	Line      string
	Shift     string
}

func (p ReportSearchParams) filter() reportFilter {
	f := reportFilter{Line: p.Line, Shift: p.Shift}
	if p.StartDate != nil && !p.StartDate.IsZero() {
		f.StartDate = p.StartDate.Format(utils.DateLayout)
	}
	if p.EndDate != nil && !p.EndDate.IsZero() {
		f.EndDate = p.EndDate.Format(utils.DateLayout)
	}
	return f
}

func reportFromQuery(c *gin.Context) reportFilter {
	return reportFilter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Line:      c.Query("line"),
		Shift:     c.Query("shift"),
	}
}

func loadApproved(db *gorm.DB, f reportFilter) ([]model.ProductionEntry, error) {
	q := db.Where("approver_status = ?", model.ApproverApproved).
		Order("date DESC").
		Order("time_slot ASC")

	if f.StartDate != "" {
		q = q.Where("date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("date <= ?", f.EndDate)
	}
	if f.Line != "" {
		q = q.Where("line = ?", f.Line)
	}
	if f.Shift != "" {
		q = q.Where("shift = ?", f.Shift)
	}

	var entries []model.ProductionEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

type reportTotals struct {
	TotalOK       int     `json:"totalOk"`
	TotalNOK      int     `json:"totalNok"`
	TotalProduced int     `json:"totalProduced"`
	OkPct         float64 `json:"okPct"`
}

type slotProduction struct {
	TimeSlot string `json:"timeSlot"`
	Total    int    `json:"total"`
}

type lineDowntime struct {
	Line    string `json:"line"`
	Minutes int    `json:"minutes"`
}

type reportResponse struct {
	Entries        []model.ProductionEntry `json:"entries"`
	Totals         reportTotals            `json:"totals"`
	SlotProduction []slotProduction        `json:"slotProduction"`
	LineDowntime   []lineDowntime          `json:"lineDowntime"`
}

func summarize(entries []model.ProductionEntry) (reportTotals, []slotProduction, []lineDowntime) {
	totals := reportTotals{
		TotalOK:  utils.SumBy(entries, func(e model.ProductionEntry) int { return e.OkQty }),
		TotalNOK: utils.SumBy(entries, func(e model.ProductionEntry) int { return e.NokQty }),
	}
	totals.TotalProduced = totals.TotalOK + totals.TotalNOK
	if totals.TotalProduced > 0 {
		totals.OkPct = float64(totals.TotalOK) / float64(totals.TotalProduced) * 100
	}

	bySlot := utils.GroupBy(entries, func(e model.ProductionEntry) string { return e.TimeSlot })
	slots := make([]slotProduction, 0, len(bySlot))
	for slot, group := range bySlot {
		slots = append(slots, slotProduction{
			TimeSlot: slot,
			Total:    utils.SumBy(group, func(e model.ProductionEntry) int { return e.OkQty + e.NokQty }),
		})
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].TimeSlot < slots[j].TimeSlot })

	byLine := utils.GroupBy(entries, func(e model.ProductionEntry) string { return e.Line })
	lines := make([]lineDowntime, 0, len(byLine))
	for line, group := range byLine {
		lines = append(lines, lineDowntime{
			Line:    line,
			Minutes: utils.SumBy(group, func(e model.ProductionEntry) int { return e.Downtime }),
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Minutes > lines[j].Minutes })

	return totals, slots, lines
}

// Search returns approved entries for a date range plus aggregate totals,
// per-slot production and per-line downtime rollups.
func (ep *ReportEndpoint) Search(c *gin.Context) {
	var params ReportSearchParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}
	f := params.filter()

	var entries []model.ProductionEntry
	if err := ep.dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var err error
		entries, err = loadApproved(db, f)
		return err
	}); err != nil {
		web.RespondError(c, err)
		return
	}

	totals, slots, lines := summarize(entries)
	c.JSON(http.StatusOK, web.NewSuccessResponse(reportResponse{
		Entries:        entries,
		Totals:         totals,
		SlotProduction: slots,
		LineDowntime:   lines,
	}))
}

// Export streams the filtered approved entries as an XLSX workbook.
func (ep *ReportEndpoint) Export(c *gin.Context) {
	f := reportFromQuery(c)

	var entries []model.ProductionEntry
	if err := ep.dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var err error
		entries, err = loadApproved(db, f)
		return err
	}); err != nil {
		web.RespondError(c, err)
		return
	}

	book, err := buildEntriesWorkbook("Report", entries)
	if err != nil {
		web.RespondError(c, err)
		return
	}
	defer book.Close()

	filename := fmt.Sprintf("SmartHourly_Report_%s.xlsx", time.Now().In(utils.PlantTZ).Format(utils.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := book.Write(c.Writer); err != nil {
		web.RespondError(c, err)
	}
}
