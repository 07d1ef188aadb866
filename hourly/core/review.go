package core

import (
	"strings"

	"gorm.io/gorm"
	"smarthourly.com/smarthourly/hourly/model"
)

// PendingFilter narrows the supervisor's review queue. Date is mandatory;
// empty Line/Shift mean "all".
type PendingFilter struct {
	Date  string
	Line  string
	Shift string
}

// PendingEntries lists submitted entries still awaiting review, ordered by
// time slot. Skipped entries carry approver_status=pending too but are not
// part of the review queue; the queue only shows real production figures.
func PendingEntries(db *gorm.DB, f PendingFilter) ([]model.ProductionEntry, error) {
	q := db.Where("date = ? AND approver_status = ? AND operator_status = ?",
		f.Date, model.ApproverPending, model.OperatorSubmitted).
		Order("time_slot")

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

// BulkResult reports how a bulk transition landed. The policy is
// best-effort: one guarded UPDATE over the id set, filtered by pending, so
// entries a racing supervisor already resolved are skipped rather than
// double-applied. Applied < Requested tells the caller to refresh the queue.
type BulkResult struct {
	Requested int `json:"requested"`
	Applied   int `json:"applied"`
	Skipped   int `json:"skipped"`
}

func bulkUpdate(db *gorm.DB, ids []int32, changes map[string]interface{}) (BulkResult, error) {
	result := BulkResult{Requested: len(ids)}
	if len(ids) == 0 {
		return result, nil
	}

	res := db.Model(&model.ProductionEntry{}).
		Where("id IN ? AND approver_status = ?", ids, model.ApproverPending).
		Updates(changes)
	if res.Error != nil {
		return result, res.Error
	}

	result.Applied = int(res.RowsAffected)
	result.Skipped = result.Requested - result.Applied
	return result, nil
}

// BulkApprove approves every still-pending entry in the id set.
func BulkApprove(db *gorm.DB, ids []int32, approverName string) (BulkResult, error) {
	if strings.TrimSpace(approverName) == "" {
		approverName = "Supervisor"
	}
	return bulkUpdate(db, ids, map[string]interface{}{
		"approver_status": model.ApproverApproved,
		"approved":        true,
		"rejected":        false,
		"approved_by":     approverName,
	})
}

// BulkReject rejects every still-pending entry in the id set with a shared
// note.
func BulkReject(db *gorm.DB, ids []int32, reason string) (BulkResult, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return BulkResult{Requested: len(ids)}, &ValidationError{Field: "rejection_note", Reason: "Rejection reason is required"}
	}
	return bulkUpdate(db, ids, map[string]interface{}{
		"approver_status": model.ApproverRejected,
		"approved":        false,
		"rejected":        true,
		"rejection_note":  reason,
	})
}
