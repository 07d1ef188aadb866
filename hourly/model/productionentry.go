package model

import "time"

// Operator statuses.
const (
	OperatorSubmitted = "submitted"
	OperatorSkipped   = "skipped"
)

// Approver statuses.
const (
	ApproverPending  = "pending"
	ApproverApproved = "approved"
	ApproverRejected = "rejected"
)

// MO types.
const (
	MOTypeFresh  = "Fresh"
	MOTypeRework = "Rework"
)

// ProductionEntry is one recorded (date, shift, line, time_slot) unit of
// work. The composite key is unique: at most one entry per slot per line per
// shift per day, enforced by the database. Entries are created by an operator
// submit or skip, transitioned by a supervisor, and never deleted.
type ProductionEntry struct {
	ID int32 `gorm:"primaryKey;column:id" json:"id"`

	Date     string `gorm:"column:date;type:varchar(10);not null;uniqueIndex:uq_slot" json:"date"`
	Shift    string `gorm:"column:shift;type:varchar(1);not null;uniqueIndex:uq_slot" json:"shift"`
	Line     string `gorm:"column:line;type:varchar(20);not null;uniqueIndex:uq_slot" json:"line"`
	TimeSlot string `gorm:"column:time_slot;type:varchar(11);not null;uniqueIndex:uq_slot" json:"time_slot"`

	CustomerName   string `gorm:"column:customer_name;type:varchar(200)" json:"customer_name"`
	MOType         string `gorm:"column:mo_type;type:varchar(10)" json:"mo_type"`
	MONumber       string `gorm:"column:mo_number;type:varchar(100)" json:"mo_number"`
	MeterFrom      string `gorm:"column:meter_from;type:varchar(50)" json:"meter_from"`
	MeterTo        string `gorm:"column:meter_to;type:varchar(50)" json:"meter_to"`
	OkQty          int    `gorm:"column:ok_qty;not null;default:0" json:"ok_qty"`
	NokQty         int    `gorm:"column:nok_qty;not null;default:0" json:"nok_qty"`
	Downtime       int    `gorm:"column:downtime;not null;default:0" json:"downtime"`
	DowntimeDetail string `gorm:"column:downtime_detail;type:varchar(500)" json:"downtime_detail"`
	ATL            string `gorm:"column:atl;type:varchar(100)" json:"atl"`
	Remarks        string `gorm:"column:remarks;type:varchar(500)" json:"remarks"`

	OperatorStatus string  `gorm:"column:operator_status;type:varchar(20);not null" json:"operator_status"`
	ApproverStatus string  `gorm:"column:approver_status;type:varchar(20);not null" json:"approver_status"`
	Approved       bool    `gorm:"column:approved;not null;default:false" json:"approved"`
	Rejected       bool    `gorm:"column:rejected;not null;default:false" json:"rejected"`
	SkipReason     *string `gorm:"column:skip_reason;type:varchar(500)" json:"skip_reason"`
	RejectionNote  string  `gorm:"column:rejection_note;type:varchar(500)" json:"rejection_note"`
	ApprovedBy     string  `gorm:"column:approved_by;type:varchar(100)" json:"approved_by"`

	CreatedAt time.Time `gorm:"<-:create" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ProductionEntry) TableName() string {
	return "production_entries"
}
