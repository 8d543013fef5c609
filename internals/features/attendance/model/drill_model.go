package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceDrillModel struct {
	DrillID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:drill_id" json:"drill_id"`

	SessionID uuid.UUID `gorm:"type:uuid;not null;column:session_id" json:"session_id"`
	DrillName string    `gorm:"type:varchar(255);not null;column:drill_name" json:"drill_name"`

	// date and time-of-day are separate columns; DrillTime is "HH:MM:SS"
	DrillDate time.Time `gorm:"type:date;not null;column:drill_date" json:"drill_date"`
	DrillTime string    `gorm:"type:time;not null;column:drill_time" json:"drill_time"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (AttendanceDrillModel) TableName() string { return "attendance_drills" }
