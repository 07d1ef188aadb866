package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smarthourly.com/smarthourly/core"
	hourly "smarthourly.com/smarthourly/hourly/core"
	"smarthourly.com/smarthourly/hourly/model"
	web "smarthourly.com/smarthourly/web/common"
	"smarthourly.com/smarthourly/web/middlewares"
)

type ReviewEndpoint struct {
	dm *core.DatabaseManager
}

func RegisterReview(r *gin.RouterGroup, dm *core.DatabaseManager) {
	ep := &ReviewEndpoint{dm: dm}
	r.GET("/review/pending", ep.Pending)
	r.GET("/review/pending/export", ep.ExportPending)
	r.POST("/review/:id/approve", ep.Approve)
	r.POST("/review/:id/reject", ep.Reject)
	r.PUT("/review/:id", ep.Edit)
	r.POST("/review/bulk/approve", ep.BulkApprove)
	r.POST("/review/bulk/reject", ep.BulkReject)
}

func (ep *ReviewEndpoint) pendingFromQuery(c *gin.Context) (hourly.PendingFilter, bool) {
	f := hourly.PendingFilter{
		Date:  c.Query("date"),
		Line:  c.Query("line"),
		Shift: c.Query("shift"),
	}
	if f.Date == "" {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("date is required"))
		return f, false
	}
	return f, true
}

// Pending lists the review queue for a date, optionally narrowed by line
// and shift, ordered by time slot.
func (ep *ReviewEndpoint) Pending(c *gin.Context) {
	f, ok := ep.pendingFromQuery(c)
	if !ok {
		return
	}

	var entries []model.ProductionEntry
	if err := ep.dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var err error
		entries, err = hourly.PendingEntries(db, f)
		return err
	}); err != nil {
		web.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSearchResponse(entries, int64(len(entries))))
}

// ExportPending streams the current review queue as an XLSX workbook.
func (ep *ReviewEndpoint) ExportPending(c *gin.Context) {
	f, ok := ep.pendingFromQuery(c)
	if !ok {
		return
	}

	var entries []model.ProductionEntry
	if err := ep.dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var err error
		entries, err = hourly.PendingEntries(db, f)
		return err
	}); err != nil {
		web.RespondError(c, err)
		return
	}

	book, err := buildEntriesWorkbook("Pending Entries", entries)
	if err != nil {
		web.RespondError(c, err)
		return
	}
	defer book.Close()

	filename := fmt.Sprintf("SmartHourly_Pending_%s.xlsx", f.Date)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := book.Write(c.Writer); err != nil {
		web.RespondError(c, err)
	}
}

func entryID(c *gin.Context) (int32, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid id"))
		return 0, false
	}
	return int32(id), true
}

// Approve resolves one pending entry, stamping the approver's profile name.
func (ep *ReviewEndpoint) Approve(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}

	if err := ep.dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		name, err := hourly.DisplayName(db, c.GetString(middlewares.ContextUserID))
		if err != nil {
			return err
		}
		return hourly.Approve(db, id, name)
	}); err != nil {
		web.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{}))
}

type rejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Reject resolves one pending entry with a mandatory note.
func (ep *ReviewEndpoint) Reject(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	if err := ep.dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		return hourly.Reject(db, id, req.Reason)
	}); err != nil {
		web.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{}))
}

// Edit applies an in-place correction before approval.
func (ep *ReviewEndpoint) Edit(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}

	var fields hourly.EditFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	if err := ep.dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		return hourly.Edit(db, id, fields)
	}); err != nil {
		web.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{}))
}

type bulkApproveRequest struct {
	IDs []int32 `json:"ids" binding:"required,min=1"`
}

type bulkRejectRequest struct {
	IDs    []int32 `json:"ids" binding:"required,min=1"`
	Reason string  `json:"reason" binding:"required"`
}

// BulkApprove approves every still-pending entry in the set. The response
// reports requested vs applied so entries resolved by a racing supervisor
// are visible to the caller.
func (ep *ReviewEndpoint) BulkApprove(c *gin.Context) {
	var req bulkApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	var result hourly.BulkResult
	if err := ep.dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		name, err := hourly.DisplayName(db, c.GetString(middlewares.ContextUserID))
		if err != nil {
			return err
		}
		result, err = hourly.BulkApprove(db, req.IDs, name)
		return err
	}); err != nil {
		web.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(result))
}

// BulkReject rejects every still-pending entry in the set with one shared
// note, reporting requested vs applied counts.
func (ep *ReviewEndpoint) BulkReject(c *gin.Context) {
	var req bulkRejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	var result hourly.BulkResult
	if err := ep.dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var err error
		result, err = hourly.BulkReject(db, req.IDs, req.Reason)
		return err
	}); err != nil {
		web.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(result))
}
