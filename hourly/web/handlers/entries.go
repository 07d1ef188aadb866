package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smarthourly.com/smarthourly/core"
	hourly "smarthourly.com/smarthourly/hourly/core"
	"smarthourly.com/smarthourly/hourly/model"
	"smarthourly.com/smarthourly/utils"
	web "smarthourly.com/smarthourly/web/common"
)

type EntryEndpoint struct {
	dm *core.DatabaseManager
}

func RegisterEntries(r *gin.RouterGroup, dm *core.DatabaseManager) {
	ep := &EntryEndpoint{dm: dm}
	r.GET("/slots", ep.OutstandingSlots)
	r.POST("/entries", ep.Submit)
	r.POST("/entries/skip", ep.Skip)
}

type slotsResponse struct {
	Date     string   `json:"date"`
	Shift    string   `json:"shift"`
	Line     string   `json:"line"`
	AllSlots []string `json:"allSlots"`
	Open     []string `json:"open"`
}

// OutstandingSlots returns the slots an operator can still fill for a
// (date, shift, line). With activeOnly=true the list narrows to the slot(s)
// containing the current plant time; an empty list then means nothing is
// actionable right now, which is a normal state, not an error.
func (ep *EntryEndpoint) OutstandingSlots(c *gin.Context) {
	dateStr := c.Query("date")
	shift := c.Query("shift")
	line := c.Query("line")
	if dateStr == "" || shift == "" || line == "" {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("date, shift and line are required"))
		return
	}

	date, err := utils.ParseDate(dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("invalid date format, expected yyyy-MM-dd"))
		return
	}

	allSlots, err := hourly.SlotsForShift(shift, date)
	if err != nil {
		web.RespondError(c, err)
		return
	}

	var recorded []string
	if err := ep.dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		return db.Model(&model.ProductionEntry{}).
			Where("date = ? AND shift = ? AND line = ?", dateStr, shift, line).
			Pluck("time_slot", &recorded).Error
	}); err != nil {
		web.RespondError(c, err)
		return
	}

	open := hourly.OutstandingSlots(allSlots, recorded)
	if c.Query("activeOnly") == "true" {
		open = hourly.ActiveNow(open, hourly.PlantNow(), date)
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(slotsResponse{
		Date:     dateStr,
		Shift:    shift,
		Line:     line,
		AllSlots: allSlots,
		Open:     open,
	}))
}

// Submit persists an operator's production figures for one slot.
func (ep *EntryEndpoint) Submit(c *gin.Context) {
	var draft hourly.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	var entry *model.ProductionEntry
	if err := ep.dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var err error
		entry, err = hourly.Submit(db, draft)
		return err
	}); err != nil {
		web.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(entry))
}

type skipRequest struct {
	hourly.Draft
	Reason string `json:"reason" binding:"required"`
}

// Skip records a slot the operator could not run.
func (ep *EntryEndpoint) Skip(c *gin.Context) {
	var req skipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	var entry *model.ProductionEntry
	if err := ep.dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var err error
		entry, err = hourly.Skip(db, req.Draft, req.Reason)
		return err
	}); err != nil {
		web.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(entry))
}
