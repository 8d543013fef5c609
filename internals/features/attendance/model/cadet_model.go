package model

import (
	"time"

	"github.com/google/uuid"
)

// Identity-service entities, read-only here. Only the columns this module
// scopes and displays by are mapped.

type UserModel struct {
	UserID    uuid.UUID  `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	Role      string     `gorm:"column:role" json:"role"`
	CollegeID *uuid.UUID `gorm:"type:uuid;column:college_id" json:"college_id,omitempty"`
}

func (UserModel) TableName() string { return "users" }

type CadetProfileModel struct {
	RegimentalNo string     `gorm:"type:varchar(64);primaryKey;column:regimental_no" json:"regimental_no"`
	UserID       uuid.UUID  `gorm:"type:uuid;column:user_id" json:"user_id"`
	CollegeID    uuid.UUID  `gorm:"type:uuid;column:college_id" json:"college_id"`
	FullName     string     `gorm:"column:full_name" json:"full_name"`
	RankID       *uuid.UUID `gorm:"type:uuid;column:rank_id" json:"rank_id,omitempty"`
}

func (CadetProfileModel) TableName() string { return "cadet_profiles" }

/* ===============================
   Scan rows for joined queries
=================================*/

// UserScope is what the scope resolver needs to place a user in a tenant.
type UserScope struct {
	UserID    uuid.UUID  `gorm:"column:user_id"`
	Role      string     `gorm:"column:role"`
	CollegeID *uuid.UUID `gorm:"column:college_id"`
}

// RosterEntry is one active cadet of a college, ordered by name for views.
type RosterEntry struct {
	RegimentalNo string  `gorm:"column:regimental_no"`
	FullName     string  `gorm:"column:full_name"`
	RankName     *string `gorm:"column:rank_name"`
}

// DrillWithRecord is a drill left-joined with a single cadet's record; the
// record columns are nil when the cadet is genuinely unmarked.
type DrillWithRecord struct {
	DrillID   uuid.UUID `gorm:"column:drill_id"`
	DrillName string    `gorm:"column:drill_name"`
	DrillDate string    `gorm:"column:drill_date"` // "YYYY-MM-DD"
	DrillTime string    `gorm:"column:drill_time"` // "HH:MM:SS"
	Status    *string   `gorm:"column:status"`
}

// LeaveHistoryRow is a leave application joined with its session, drill and
// reviewer display fields for the cadet self-service payload.
type LeaveHistoryRow struct {
	LeaveID        uuid.UUID  `gorm:"column:leave_id"`
	SessionID      uuid.UUID  `gorm:"column:session_id"`
	DrillID        uuid.UUID  `gorm:"column:drill_id"`
	SessionName    *string    `gorm:"column:session_name"`
	DrillName      *string    `gorm:"column:drill_name"`
	DrillDate      *string    `gorm:"column:drill_date"`
	DrillTime      *string    `gorm:"column:drill_time"`
	Reason         string     `gorm:"column:reason"`
	AttachmentURL  *string    `gorm:"column:attachment_url"`
	Status         string     `gorm:"column:status"`
	ReviewedBy     *uuid.UUID `gorm:"column:reviewed_by_user_id"`
	ReviewedByName *string    `gorm:"column:reviewed_by_name"`
	ReviewedAt     *time.Time `gorm:"column:reviewed_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
}
