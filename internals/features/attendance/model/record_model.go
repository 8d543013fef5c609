package model

import (
	"time"

	"github.com/google/uuid"
)

// Attendance status literals.
const (
	StatusPresent = "P"
	StatusAbsent  = "A"
)

// AttendanceRecordModel is one mark per (drill, cadet). Uniqueness is
// enforced by uq_attendance_records_drill_cadet; upserts replace status,
// marker and timestamp atomically. Rows are never soft-deleted, they go away
// only when their drill or session does.
type AttendanceRecordModel struct {
	RecordID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:record_id" json:"record_id"`

	DrillID      uuid.UUID `gorm:"type:uuid;not null;column:drill_id" json:"drill_id"`
	RegimentalNo string    `gorm:"type:varchar(64);not null;column:regimental_no" json:"regimental_no"`
	Status       string    `gorm:"type:varchar(1);not null;column:status" json:"status"`

	MarkedBy uuid.UUID `gorm:"type:uuid;not null;column:marked_by_user_id" json:"marked_by_user_id"`
	MarkedAt time.Time `gorm:"column:marked_at" json:"marked_at"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }
