package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Leave application states. Review is a one-way transition out of pending.
const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

type LeaveApplicationModel struct {
	LeaveID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:leave_id" json:"leave_id"`

	RegimentalNo string    `gorm:"type:varchar(64);not null;column:regimental_no" json:"regimental_no"`
	SessionID    uuid.UUID `gorm:"type:uuid;not null;column:session_id" json:"session_id"`
	DrillID      uuid.UUID `gorm:"type:uuid;not null;column:drill_id" json:"drill_id"`
	Reason       string    `gorm:"type:text;not null;column:reason" json:"reason"`

	AttachmentURL *string `gorm:"type:text;column:attachment_url" json:"attachment_url,omitempty"`
	// {file_name, content_type, size_bytes} captured at upload time
	AttachmentMeta datatypes.JSON `gorm:"type:jsonb;column:attachment_meta" json:"attachment_meta,omitempty"`

	Status     string     `gorm:"type:varchar(16);not null;default:pending;column:status" json:"status"`
	ReviewedBy *uuid.UUID `gorm:"type:uuid;column:reviewed_by_user_id" json:"reviewed_by_user_id,omitempty"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LeaveApplicationModel) TableName() string { return "leave_applications" }
