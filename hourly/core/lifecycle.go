package core

import (
	"strings"

	"gorm.io/gorm"
	"smarthourly.com/smarthourly/hourly/model"
)

// DowntimeOptions is the fixed set of downtime minutes an operator can
// report.
var DowntimeOptions = []int{0, 5, 10, 15, 20, 30, 45, 60}

// SkippedDetail is recorded as the downtime detail of a skipped slot.
const SkippedDetail = "Skipped"

// Draft is the operator's unsaved form state for one slot. It only exists in
// the UI; storage sees an entry for the first time on submit or skip.
type Draft struct {
	Date     string `json:"date" binding:"required"`
	Shift    string `json:"shift" binding:"required"`
	Line     string `json:"line" binding:"required"`
	TimeSlot string `json:"time_slot" binding:"required"`

	CustomerName   string `json:"customer_name"`
	MOType         string `json:"mo_type"`
	MONumber       string `json:"mo_number"`
	MeterFrom      string `json:"meter_from"`
	MeterTo        string `json:"meter_to"`
	OkQty          int    `json:"ok_qty"`
	NokQty         int    `json:"nok_qty"`
	Downtime       int    `json:"downtime"`
	DowntimeDetail string `json:"downtime_detail"`
	ATL            string `json:"atl"`
	Remarks        string `json:"remarks"`
}

func validDowntime(minutes int) bool {
	for _, opt := range DowntimeOptions {
		if minutes == opt {
			return true
		}
	}
	return false
}

// ValidateSubmit checks a draft against the submit requirements and returns
// a ValidationError naming the first unmet one.
func ValidateSubmit(d Draft) error {
	if d.Shift != "A" && d.Shift != "B" && d.Shift != "C" {
		return &InvalidShiftError{Shift: d.Shift}
	}
	if strings.TrimSpace(d.CustomerName) == "" {
		return &ValidationError{Field: "customer_name", Reason: "Customer Name is required"}
	}
	if d.MOType != model.MOTypeFresh && d.MOType != model.MOTypeRework {
		return &ValidationError{Field: "mo_type", Reason: "Please select MO Type"}
	}
	if strings.TrimSpace(d.MONumber) == "" {
		return &ValidationError{Field: "mo_number", Reason: "MO Number is required"}
	}
	if d.OkQty < 0 {
		return &ValidationError{Field: "ok_qty", Reason: "OK quantity cannot be negative"}
	}
	if d.NokQty < 0 {
		return &ValidationError{Field: "nok_qty", Reason: "NOK quantity cannot be negative"}
	}
	if !validDowntime(d.Downtime) {
		return &ValidationError{Field: "downtime", Reason: "Downtime must be one of the listed minute options"}
	}
	if d.Downtime > 0 && strings.TrimSpace(d.DowntimeDetail) == "" {
		return &ValidationError{Field: "downtime_detail", Reason: "Enter downtime reason"}
	}
	return nil
}

// Submit validates a draft and persists it with operator_status=submitted
// and approver_status=pending. Nothing is written when validation fails. A
// second write for the same (date, shift, line, time_slot) fails with
// DuplicateSlotError.
func Submit(db *gorm.DB, d Draft) (*model.ProductionEntry, error) {
	if err := ValidateSubmit(d); err != nil {
		return nil, err
	}

	detail := d.DowntimeDetail
	if d.Downtime == 0 {
		detail = "No downtime"
	}

	entry := &model.ProductionEntry{
		Date:           d.Date,
		Shift:          d.Shift,
		Line:           d.Line,
		TimeSlot:       d.TimeSlot,
		CustomerName:   strings.TrimSpace(d.CustomerName),
		MOType:         d.MOType,
		MONumber:       strings.TrimSpace(d.MONumber),
		MeterFrom:      d.MeterFrom,
		MeterTo:        d.MeterTo,
		OkQty:          d.OkQty,
		NokQty:         d.NokQty,
		Downtime:       d.Downtime,
		DowntimeDetail: detail,
		ATL:            d.ATL,
		Remarks:        d.Remarks,
		OperatorStatus: model.OperatorSubmitted,
		ApproverStatus: model.ApproverPending,
		SkipReason:     nil,
	}

	if err := db.Create(entry).Error; err != nil {
		return nil, translateWriteError(err, d.TimeSlot)
	}
	return entry, nil
}

// Skip persists a slot the operator could not run. Quantities and downtime
// are forced to zero and the skip reason becomes part of the audit trail.
func Skip(db *gorm.DB, d Draft, reason string) (*model.ProductionEntry, error) {
	if d.Shift != "A" && d.Shift != "B" && d.Shift != "C" {
		return nil, &InvalidShiftError{Shift: d.Shift}
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, &ValidationError{Field: "skip_reason", Reason: "Skip reason is required"}
	}

	entry := &model.ProductionEntry{
		Date:           d.Date,
		Shift:          d.Shift,
		Line:           d.Line,
		TimeSlot:       d.TimeSlot,
		CustomerName:   strings.TrimSpace(d.CustomerName),
		MOType:         d.MOType,
		MONumber:       strings.TrimSpace(d.MONumber),
		MeterFrom:      d.MeterFrom,
		MeterTo:        d.MeterTo,
		OkQty:          0,
		NokQty:         0,
		Downtime:       0,
		DowntimeDetail: SkippedDetail,
		ATL:            d.ATL,
		Remarks:        d.Remarks,
		OperatorStatus: model.OperatorSkipped,
		ApproverStatus: model.ApproverPending,
		SkipReason:     &reason,
	}

	if err := db.Create(entry).Error; err != nil {
		return nil, translateWriteError(err, d.TimeSlot)
	}
	return entry, nil
}

// Approve resolves a pending entry. The update is guarded on
// approver_status=pending so a second approve, or an approve racing a
// reject, affects zero rows and fails with ErrNotPending instead of
// double-applying.
func Approve(db *gorm.DB, id int32, approverName string) error {
	if strings.TrimSpace(approverName) == "" {
		approverName = "Supervisor"
	}

	res := db.Model(&model.ProductionEntry{}).
		Where("id = ? AND approver_status = ?", id, model.ApproverPending).
		Updates(map[string]interface{}{
			"approver_status": model.ApproverApproved,
			"approved":        true,
			"rejected":        false,
			"approved_by":     approverName,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}

// Reject resolves a pending entry with a mandatory note. Guarded the same
// way as Approve.
func Reject(db *gorm.DB, id int32, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return &ValidationError{Field: "rejection_note", Reason: "Rejection reason is required"}
	}

	res := db.Model(&model.ProductionEntry{}).
		Where("id = ? AND approver_status = ?", id, model.ApproverPending).
		Updates(map[string]interface{}{
			"approver_status": model.ApproverRejected,
			"approved":        false,
			"rejected":        true,
			"rejection_note":  reason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}

// EditFields is the supervisor-correctable subset of an entry. Nil fields
// are left untouched. Editing never changes approver_status by itself; the
// supervisor typically approves right after.
type EditFields struct {
	CustomerName   *string `json:"customer_name,omitempty"`
	MONumber       *string `json:"mo_number,omitempty"`
	MOType         *string `json:"mo_type,omitempty"`
	OkQty          *int    `json:"ok_qty,omitempty"`
	NokQty         *int    `json:"nok_qty,omitempty"`
	Downtime       *int    `json:"downtime,omitempty"`
	DowntimeDetail *string `json:"downtime_detail,omitempty"`
	ATL            *string `json:"atl,omitempty"`
	Remarks        *string `json:"remarks,omitempty"`
}

func (f EditFields) changes() map[string]interface{} {
	m := map[string]interface{}{}
	if f.CustomerName != nil {
		m["customer_name"] = strings.TrimSpace(*f.CustomerName)
	}
	if f.MONumber != nil {
		m["mo_number"] = strings.TrimSpace(*f.MONumber)
	}
	if f.MOType != nil {
		m["mo_type"] = *f.MOType
	}
	if f.OkQty != nil {
		m["ok_qty"] = *f.OkQty
	}
	if f.NokQty != nil {
		m["nok_qty"] = *f.NokQty
	}
	if f.Downtime != nil {
		m["downtime"] = *f.Downtime
	}
	if f.DowntimeDetail != nil {
		m["downtime_detail"] = *f.DowntimeDetail
	}
	if f.ATL != nil {
		m["atl"] = *f.ATL
	}
	if f.Remarks != nil {
		m["remarks"] = *f.Remarks
	}
	return m
}

// Edit applies a supervisor correction to a still-pending entry.
func Edit(db *gorm.DB, id int32, fields EditFields) error {
	if fields.MOType != nil && *fields.MOType != model.MOTypeFresh && *fields.MOType != model.MOTypeRework {
		return &ValidationError{Field: "mo_type", Reason: "MO Type must be Fresh or Rework"}
	}
	if fields.OkQty != nil && *fields.OkQty < 0 {
		return &ValidationError{Field: "ok_qty", Reason: "OK quantity cannot be negative"}
	}
	if fields.NokQty != nil && *fields.NokQty < 0 {
		return &ValidationError{Field: "nok_qty", Reason: "NOK quantity cannot be negative"}
	}
	if fields.Downtime != nil && !validDowntime(*fields.Downtime) {
		return &ValidationError{Field: "downtime", Reason: "Downtime must be one of the listed minute options"}
	}

	changes := fields.changes()
	if len(changes) == 0 {
		return nil
	}

	var count int64
	if err := db.Model(&model.ProductionEntry{}).
		Where("id = ? AND approver_status = ?", id, model.ApproverPending).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotPending
	}

	return db.Model(&model.ProductionEntry{}).
		Where("id = ? AND approver_status = ?", id, model.ApproverPending).
		Updates(changes).Error
}
