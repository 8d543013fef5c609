// file: internals/features/attendance/service/store.go
package service

import (
	"context"

	"github.com/google/uuid"

	"nccnexus_backend/internals/features/attendance/model"
)

// Store is the persistence surface the attendance service works against.
// Lookups that scope by college only ever see live (not soft-deleted) rows.
// Not-found conditions surface as gorm.ErrRecordNotFound.
type Store interface {
	// identity (read-only tables owned by the identity service)
	GetUserScope(ctx context.Context, userID uuid.UUID) (model.UserScope, error)
	GetCadetProfileByUser(ctx context.Context, userID uuid.UUID) (model.CadetProfileModel, error)
	ListRoster(ctx context.Context, collegeID uuid.UUID) ([]model.RosterEntry, error)
	CountCadetsInCollege(ctx context.Context, regimentalNos []string, collegeID uuid.UUID) (int64, error)

	// sessions
	CreateSession(ctx context.Context, s *model.AttendanceSessionModel) error
	FindSessionInCollege(ctx context.Context, sessionID, collegeID uuid.UUID) (model.AttendanceSessionModel, error)
	ListSessions(ctx context.Context, collegeID uuid.UUID) ([]model.AttendanceSessionModel, error)
	SoftDeleteSession(ctx context.Context, sessionID uuid.UUID) error

	// drills
	ListDrills(ctx context.Context, sessionID uuid.UUID) ([]model.AttendanceDrillModel, error)
	ListDrillNames(ctx context.Context, sessionID uuid.UUID) ([]string, error)
	FindDrillInSession(ctx context.Context, drillID, sessionID uuid.UUID) (model.AttendanceDrillModel, error)
	CreateDrillWithSeed(ctx context.Context, d *model.AttendanceDrillModel, collegeID, markedBy uuid.UUID) (int64, error)
	SoftDeleteDrill(ctx context.Context, drillID uuid.UUID) error
	CountDrillsInCollege(ctx context.Context, drillIDs []uuid.UUID, collegeID uuid.UUID) (int64, error)

	// records
	ListRecordsForSession(ctx context.Context, sessionID uuid.UUID) ([]model.AttendanceRecordModel, error)
	UpsertRecords(ctx context.Context, records []model.AttendanceRecordModel) error
	ListDrillsWithRecords(ctx context.Context, sessionID uuid.UUID, regimentalNo string) ([]model.DrillWithRecord, error)

	// leave applications
	CreateLeave(ctx context.Context, l *model.LeaveApplicationModel) error
	FindLeaveInCollege(ctx context.Context, leaveID, collegeID uuid.UUID) (model.LeaveApplicationModel, error)
	HasOpenLeave(ctx context.Context, regimentalNo string, drillID uuid.UUID) (bool, error)
	UpdateLeaveReview(ctx context.Context, l *model.LeaveApplicationModel) error
	ListLeaveHistory(ctx context.Context, regimentalNo string) ([]model.LeaveHistoryRow, error)
}
