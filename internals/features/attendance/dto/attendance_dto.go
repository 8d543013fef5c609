// file: internals/features/attendance/dto/attendance_dto.go
package dto

import (
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nccnexus_backend/internals/features/attendance/model"
)

/* ========================================================
   1) Requests
   ======================================================== */

type CreateSessionRequest struct {
	SessionName string `json:"session_name" validate:"required,min=3,max=255"`
}

func (r *CreateSessionRequest) Normalize() {
	r.SessionName = strings.TrimSpace(r.SessionName)
}

type CreateDrillRequest struct {
	SessionID uuid.UUID `json:"session_id" validate:"required"`
	// optional; defaults to the canonical "Drill N" name
	DrillName string `json:"drill_name" validate:"omitempty,max=255"`
	DrillDate string `json:"drill_date" validate:"required"`
	DrillTime string `json:"drill_time" validate:"required"`
}

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)
)

func (r *CreateDrillRequest) Normalize() {
	r.DrillName = strings.TrimSpace(r.DrillName)
	r.DrillDate = strings.TrimSpace(r.DrillDate)
	r.DrillTime = strings.TrimSpace(r.DrillTime)
	// store time-of-day with seconds
	if timeRe.MatchString(r.DrillTime) && len(r.DrillTime) == 5 {
		r.DrillTime += ":00"
	}
}

// ValidateShape checks the date and time wire formats after Normalize.
func (r *CreateDrillRequest) ValidateShape() error {
	if !dateRe.MatchString(r.DrillDate) {
		return fiber.NewError(fiber.StatusBadRequest, "drill_date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", r.DrillDate); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "drill_date is not a valid calendar date")
	}
	if !timeRe.MatchString(r.DrillTime) {
		return fiber.NewError(fiber.StatusBadRequest, "drill_time must be HH:MM or HH:MM:SS")
	}
	layout := "15:04:05"
	if len(r.DrillTime) == 5 {
		layout = "15:04"
	}
	if _, err := time.Parse(layout, r.DrillTime); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "drill_time is not a valid time of day")
	}
	return nil
}

type RecordUpdate struct {
	DrillID      uuid.UUID `json:"drill_id" validate:"required"`
	RegimentalNo string    `json:"regimental_no" validate:"required,max=64"`
	Status       string    `json:"status" validate:"required,oneof=P A"`
}

type PatchRecordsRequest struct {
	Updates []RecordUpdate `json:"updates" validate:"required,min=1,dive"`
}

func (r *PatchRecordsRequest) Normalize() {
	for i := range r.Updates {
		r.Updates[i].RegimentalNo = strings.TrimSpace(r.Updates[i].RegimentalNo)
		r.Updates[i].Status = strings.TrimSpace(r.Updates[i].Status)
	}
}

type SubmitLeaveRequest struct {
	RegimentalNo string    `json:"regimental_no" validate:"required,max=64"`
	SessionID    uuid.UUID `json:"session_id" validate:"required"`
	DrillID      uuid.UUID `json:"drill_id" validate:"required"`
	Reason       string    `json:"reason" validate:"required,min=5,max=2000"`
}

func (r *SubmitLeaveRequest) Normalize() {
	r.RegimentalNo = strings.TrimSpace(r.RegimentalNo)
	r.Reason = strings.TrimSpace(r.Reason)
}

type ReviewLeaveRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

/* ========================================================
   2) Responses
   ======================================================== */

type SessionResponse struct {
	SessionID   uuid.UUID `json:"session_id"`
	SessionName string    `json:"session_name"`
	CollegeID   uuid.UUID `json:"college_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromSessionModel(m model.AttendanceSessionModel) SessionResponse {
	return SessionResponse{
		SessionID:   m.SessionID,
		SessionName: m.SessionName,
		CollegeID:   m.CollegeID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type DrillResponse struct {
	DrillID   uuid.UUID `json:"drill_id"`
	SessionID uuid.UUID `json:"session_id"`
	DrillName string    `json:"drill_name"`
	DrillDate string    `json:"drill_date"`
	DrillTime string    `json:"drill_time"`
	CreatedAt time.Time `json:"created_at"`
	// how many records the seeding step inserted
	RecordsCreated int `json:"attendance_records_created"`
}

func FromDrillModel(m model.AttendanceDrillModel, seeded int) DrillResponse {
	return DrillResponse{
		DrillID:        m.DrillID,
		SessionID:      m.SessionID,
		DrillName:      m.DrillName,
		DrillDate:      m.DrillDate.Format("2006-01-02"),
		DrillTime:      m.DrillTime,
		CreatedAt:      m.CreatedAt,
		RecordsCreated: seeded,
	}
}

// DrillLite is a drill column of the session-detail table.
type DrillLite struct {
	DrillID   uuid.UUID `json:"drill_id"`
	DrillName string    `json:"drill_name"`
	DrillDate string    `json:"drill_date"`
	DrillTime string    `json:"drill_time"`
}

type CadetSummary struct {
	Attended int     `json:"attended"`
	Total    int     `json:"total"`
	Percent  float64 `json:"percent"`
}

type CadetRow struct {
	RegimentalNo string       `json:"regimental_no"`
	Name         string       `json:"name"`
	Rank         *string      `json:"rank"`
	Attendance   []string     `json:"attendance"` // aligned to Drills ordering
	Summary      CadetSummary `json:"summary"`
}

type SessionDetailResponse struct {
	SessionID   uuid.UUID   `json:"session_id"`
	SessionName string      `json:"session_name"`
	Drills      []DrillLite `json:"drills"`
	Cadets      []CadetRow  `json:"cadets"`
}

/* ---- cadet self-service view ---- */

type CadetDrillEntry struct {
	DrillID uuid.UUID `json:"drill_id"`
	Name    string    `json:"name"`
	Date    string    `json:"date"`
	Time    string    `json:"time"`
	Status  *string   `json:"status"` // nil = genuinely unmarked
}

type CadetSessionView struct {
	SessionID   uuid.UUID         `json:"session_id"`
	SessionName string            `json:"session_name"`
	Status      string            `json:"status"` // completed | current | upcoming
	Drills      []CadetDrillEntry `json:"drills"`
}

type CadetStats struct {
	Total   int     `json:"total"`
	Present int     `json:"present"`
	Absent  int     `json:"absent"`
	Percent float64 `json:"percent"`
}

type LeaveHistoryView struct {
	LeaveID        uuid.UUID  `json:"leave_id"`
	SessionID      uuid.UUID  `json:"session_id"`
	DrillID        uuid.UUID  `json:"drill_id"`
	SessionName    *string    `json:"session_name"`
	DrillName      *string    `json:"drill_name"`
	DrillDate      *string    `json:"drill_date"`
	DrillTime      *string    `json:"drill_time"`
	Reason         string     `json:"reason"`
	AttachmentURL  *string    `json:"attachment_url"`
	Status         string     `json:"status"`
	ReviewedBy     *uuid.UUID `json:"reviewed_by_user_id"`
	ReviewedByName *string    `json:"reviewed_by_name"`
	ReviewedAt     *time.Time `json:"reviewed_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

type MyAttendanceResponse struct {
	RegimentalNo      string             `json:"regimental_no"`
	Stats             CadetStats         `json:"stats"`
	Sessions          []CadetSessionView `json:"sessions"`
	LeaveApplications []LeaveHistoryView `json:"leave_applications"`
}

type LeaveResponse struct {
	LeaveID       uuid.UUID  `json:"leave_id"`
	RegimentalNo  string     `json:"regimental_no"`
	SessionID     uuid.UUID  `json:"session_id"`
	DrillID       uuid.UUID  `json:"drill_id"`
	Reason        string     `json:"reason"`
	AttachmentURL *string    `json:"attachment_url"`
	Status        string     `json:"status"`
	ReviewedBy    *uuid.UUID `json:"reviewed_by_user_id,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func FromLeaveModel(m model.LeaveApplicationModel) LeaveResponse {
	return LeaveResponse{
		LeaveID:       m.LeaveID,
		RegimentalNo:  m.RegimentalNo,
		SessionID:     m.SessionID,
		DrillID:       m.DrillID,
		Reason:        m.Reason,
		AttachmentURL: m.AttachmentURL,
		Status:        m.Status,
		ReviewedBy:    m.ReviewedBy,
		ReviewedAt:    m.ReviewedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
