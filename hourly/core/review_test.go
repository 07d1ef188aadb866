package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smarthourly.com/smarthourly/hourly/model"
	"smarthourly.com/smarthourly/utils"
)

func submitN(t *testing.T, db *gorm.DB, n int) []int32 {
	t.Helper()
	slots, err := SlotsForShift("A", utils.MustParseDate("2024-01-01"))
	require.NoError(t, err)
	require.LessOrEqual(t, n, len(slots))

	ids := make([]int32, 0, n)
	for i := 0; i < n; i++ {
		d := validDraft()
		d.TimeSlot = slots[i]
		d.MONumber = fmt.Sprintf("MO-%04d", 1000+i)
		entry, err := Submit(db, d)
		require.NoError(t, err)
		ids = append(ids, entry.ID)
	}
	return ids
}

func TestPendingEntries(t *testing.T) {
	db := openTestDB(t)
	ids := submitN(t, db, 3)

	// a skipped slot shares the pending approver status but stays out of
	// the review queue
	d := validDraft()
	d.TimeSlot = "14:00-15:00"
	_, err := Skip(db, d, "No material")
	require.NoError(t, err)

	// entries on another line and date should not appear
	other := validDraft()
	other.Line = "Line-02"
	_, err = Submit(db, other)
	require.NoError(t, err)

	t.Run("filters and orders by time slot", func(t *testing.T) {
		entries, err := PendingEntries(db, PendingFilter{Date: "2024-01-01", Line: "Line-01", Shift: "A"})
		require.NoError(t, err)
		require.Len(t, entries, 3)

		for i := 1; i < len(entries); i++ {
			assert.Less(t, entries[i-1].TimeSlot, entries[i].TimeSlot)
		}
		for _, e := range entries {
			assert.Equal(t, model.OperatorSubmitted, e.OperatorStatus)
			assert.Equal(t, model.ApproverPending, e.ApproverStatus)
		}
	})

	t.Run("date only widens to all lines", func(t *testing.T) {
		entries, err := PendingEntries(db, PendingFilter{Date: "2024-01-01"})
		require.NoError(t, err)
		assert.Len(t, entries, 4)
	})

	t.Run("resolved entries drop out", func(t *testing.T) {
		require.NoError(t, Approve(db, ids[0], "R. Sharma"))

		entries, err := PendingEntries(db, PendingFilter{Date: "2024-01-01", Line: "Line-01"})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}

func TestBulkApprove(t *testing.T) {
	db := openTestDB(t)
	ids := submitN(t, db, 4)

	result, err := BulkApprove(db, ids, "R. Sharma")
	require.NoError(t, err)
	assert.Equal(t, BulkResult{Requested: 4, Applied: 4, Skipped: 0}, result)

	var approved []model.ProductionEntry
	require.NoError(t, db.Where("id IN ?", ids).Find(&approved).Error)
	for _, e := range approved {
		assert.Equal(t, model.ApproverApproved, e.ApproverStatus)
		assert.True(t, e.Approved)
		assert.False(t, e.Rejected)
		assert.Equal(t, "R. Sharma", e.ApprovedBy)
	}
}

func TestBulkReject(t *testing.T) {
	db := openTestDB(t)
	ids := submitN(t, db, 3)

	t.Run("requires a reason", func(t *testing.T) {
		_, err := BulkReject(db, ids, " ")
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	result, err := BulkReject(db, ids, "machine fault")
	require.NoError(t, err)
	assert.Equal(t, BulkResult{Requested: 3, Applied: 3, Skipped: 0}, result)

	var rejected []model.ProductionEntry
	require.NoError(t, db.Where("id IN ?", ids).Find(&rejected).Error)
	for _, e := range rejected {
		assert.Equal(t, model.ApproverRejected, e.ApproverStatus)
		assert.False(t, e.Approved)
		assert.True(t, e.Rejected)
		assert.Equal(t, "machine fault", e.RejectionNote)
	}
}

// Best-effort policy: ids already resolved by someone else are skipped and
// reported, never double-applied.
func TestBulkSkipsAlreadyResolved(t *testing.T) {
	db := openTestDB(t)
	ids := submitN(t, db, 3)

	require.NoError(t, Reject(db, ids[1], "racing supervisor"))

	result, err := BulkApprove(db, ids, "R. Sharma")
	require.NoError(t, err)
	assert.Equal(t, BulkResult{Requested: 3, Applied: 2, Skipped: 1}, result)

	var middle model.ProductionEntry
	require.NoError(t, db.First(&middle, ids[1]).Error)
	assert.Equal(t, model.ApproverRejected, middle.ApproverStatus, "resolved entry must keep its outcome")
}

func TestBulkEmptySet(t *testing.T) {
	db := openTestDB(t)

	result, err := BulkApprove(db, nil, "R. Sharma")
	require.NoError(t, err)
	assert.Equal(t, BulkResult{}, result)
}

func TestRoleOf(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Create(&model.UserRole{ID: "8f14e45f-ceea-4e7b-9c5d-d590b6b0c001", Role: model.RoleSupervisor}).Error)

	role, err := RoleOf(db, "8f14e45f-ceea-4e7b-9c5d-d590b6b0c001")
	require.NoError(t, err)
	assert.Equal(t, model.RoleSupervisor, role)

	t.Run("unknown users default to operator", func(t *testing.T) {
		role, err := RoleOf(db, "00000000-0000-0000-0000-000000000000")
		require.NoError(t, err)
		assert.Equal(t, model.RoleOperator, role)
	})
}

func TestSupervisorRoster(t *testing.T) {
	db := openTestDB(t)

	users := []struct {
		id, role, name string
	}{
		{"8f14e45f-ceea-4e7b-9c5d-d590b6b0c001", model.RoleSupervisor, "B. Verma"},
		{"8f14e45f-ceea-4e7b-9c5d-d590b6b0c002", model.RoleSupervisor, "A. Patel"},
		{"8f14e45f-ceea-4e7b-9c5d-d590b6b0c003", model.RoleOperator, "C. Iyer"},
	}
	for _, u := range users {
		require.NoError(t, db.Create(&model.UserRole{ID: u.id, Role: u.role}).Error)
		require.NoError(t, db.Create(&model.Profile{ID: u.id, Name: u.name}).Error)
	}

	names, err := SupervisorRoster(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"A. Patel", "B. Verma"}, names, "sorted supervisors only")
}
