// file: internals/features/attendance/repository/attendance_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nccnexus_backend/internals/features/attendance/model"
)

// UniqueViolation unwraps a Postgres unique-constraint error and reports the
// violated constraint name, so callers can translate specific collisions
// into domain conflicts.
func UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName, true
	}
	return "", false
}

type AttendanceRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

/* =========================
   Identity (read-only)
========================= */

func (r *AttendanceRepository) GetUserScope(ctx context.Context, userID uuid.UUID) (model.UserScope, error) {
	var scope model.UserScope
	err := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Select("user_id", "role", "college_id").
		Where("user_id = ?", userID).
		Take(&scope).Error
	return scope, err
}

func (r *AttendanceRepository) GetCadetProfileByUser(ctx context.Context, userID uuid.UUID) (model.CadetProfileModel, error) {
	var profile model.CadetProfileModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&profile).Error
	return profile, err
}

func (r *AttendanceRepository) ListRoster(ctx context.Context, collegeID uuid.UUID) ([]model.RosterEntry, error) {
	var roster []model.RosterEntry
	err := r.db.WithContext(ctx).Raw(`
		SELECT cp.regimental_no, cp.full_name, cr.rank_name
		FROM cadet_profiles cp
		JOIN users u ON u.user_id = cp.user_id
		LEFT JOIN cadet_ranks cr ON cr.rank_id = cp.rank_id
		WHERE cp.college_id = ? AND u.role = 'CADET'
		ORDER BY cp.full_name ASC
	`, collegeID).Scan(&roster).Error
	return roster, err
}

func (r *AttendanceRepository) CountCadetsInCollege(ctx context.Context, regimentalNos []string, collegeID uuid.UUID) (int64, error) {
	if len(regimentalNos) == 0 {
		return 0, nil
	}
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.CadetProfileModel{}).
		Where("regimental_no IN ? AND college_id = ?", regimentalNos, collegeID).
		Count(&n).Error
	return n, err
}

/* =========================
   Sessions
========================= */

func (r *AttendanceRepository) CreateSession(ctx context.Context, s *model.AttendanceSessionModel) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *AttendanceRepository) FindSessionInCollege(ctx context.Context, sessionID, collegeID uuid.UUID) (model.AttendanceSessionModel, error) {
	var session model.AttendanceSessionModel
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND college_id = ?", sessionID, collegeID).
		Take(&session).Error
	return session, err
}

func (r *AttendanceRepository) ListSessions(ctx context.Context, collegeID uuid.UUID) ([]model.AttendanceSessionModel, error) {
	var sessions []model.AttendanceSessionModel
	err := r.db.WithContext(ctx).
		Where("college_id = ?", collegeID).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *AttendanceRepository) SoftDeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&model.AttendanceSessionModel{}).Error
}

/* =========================
   Drills
========================= */

func (r *AttendanceRepository) ListDrills(ctx context.Context, sessionID uuid.UUID) ([]model.AttendanceDrillModel, error) {
	var drills []model.AttendanceDrillModel
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("drill_date ASC, drill_time ASC").
		Find(&drills).Error
	return drills, err
}

func (r *AttendanceRepository) ListDrillNames(ctx context.Context, sessionID uuid.UUID) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&model.AttendanceDrillModel{}).
		Where("session_id = ?", sessionID).
		Pluck("drill_name", &names).Error
	return names, err
}

func (r *AttendanceRepository) FindDrillInSession(ctx context.Context, drillID, sessionID uuid.UUID) (model.AttendanceDrillModel, error) {
	var drill model.AttendanceDrillModel
	err := r.db.WithContext(ctx).
		Where("drill_id = ? AND session_id = ?", drillID, sessionID).
		Take(&drill).Error
	return drill, err
}

// CreateDrillWithSeed inserts the drill and, inside the same transaction,
// seeds one default-present record per active cadet of the college. The
// ON CONFLICT guard keeps a concurrent patch from breaking the insert.
// Returns how many records the seed step created.
func (r *AttendanceRepository) CreateDrillWithSeed(ctx context.Context, d *model.AttendanceDrillModel, collegeID, markedBy uuid.UUID) (int64, error) {
	var seeded int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(d).Error; err != nil {
			return err
		}
		res := tx.Exec(`
			INSERT INTO attendance_records (drill_id, regimental_no, status, marked_by_user_id, marked_at)
			SELECT ?, cp.regimental_no, 'P', ?, NOW()
			FROM cadet_profiles cp
			JOIN users u ON u.user_id = cp.user_id
			WHERE cp.college_id = ? AND u.role = 'CADET'
			ON CONFLICT (drill_id, regimental_no) DO NOTHING
		`, d.DrillID, markedBy, collegeID)
		if res.Error != nil {
			return res.Error
		}
		seeded = res.RowsAffected
		return nil
	})
	return seeded, err
}

func (r *AttendanceRepository) SoftDeleteDrill(ctx context.Context, drillID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("drill_id = ?", drillID).
		Delete(&model.AttendanceDrillModel{}).Error
}

func (r *AttendanceRepository) CountDrillsInCollege(ctx context.Context, drillIDs []uuid.UUID, collegeID uuid.UUID) (int64, error) {
	if len(drillIDs) == 0 {
		return 0, nil
	}
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.AttendanceDrillModel{}).
		Joins("JOIN attendance_sessions s ON s.session_id = attendance_drills.session_id").
		Where("attendance_drills.drill_id IN ? AND s.college_id = ? AND s.deleted_at IS NULL", drillIDs, collegeID).
		Count(&n).Error
	return n, err
}

/* =========================
   Records
========================= */

func (r *AttendanceRepository) ListRecordsForSession(ctx context.Context, sessionID uuid.UUID) ([]model.AttendanceRecordModel, error) {
	var records []model.AttendanceRecordModel
	err := r.db.WithContext(ctx).
		Model(&model.AttendanceRecordModel{}).
		Joins("JOIN attendance_drills d ON d.drill_id = attendance_records.drill_id").
		Where("d.session_id = ? AND d.deleted_at IS NULL", sessionID).
		Find(&records).Error
	return records, err
}

// UpsertRecords writes marks last-write-wins on (drill_id, regimental_no).
func (r *AttendanceRepository) UpsertRecords(ctx context.Context, records []model.AttendanceRecordModel) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "drill_id"}, {Name: "regimental_no"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "marked_by_user_id", "marked_at",
			}),
		}).
		Create(&records).Error
}

func (r *AttendanceRepository) ListDrillsWithRecords(ctx context.Context, sessionID uuid.UUID, regimentalNo string) ([]model.DrillWithRecord, error) {
	var rows []model.DrillWithRecord
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			d.drill_id,
			d.drill_name,
			d.drill_date::text AS drill_date,
			d.drill_time::text AS drill_time,
			ar.status
		FROM attendance_drills d
		LEFT JOIN attendance_records ar
			ON ar.drill_id = d.drill_id AND ar.regimental_no = ?
		WHERE d.session_id = ? AND d.deleted_at IS NULL
		ORDER BY d.drill_date ASC, d.drill_time ASC
	`, regimentalNo, sessionID).Scan(&rows).Error
	return rows, err
}

/* =========================
   Leave applications
========================= */

func (r *AttendanceRepository) CreateLeave(ctx context.Context, l *model.LeaveApplicationModel) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *AttendanceRepository) FindLeaveInCollege(ctx context.Context, leaveID, collegeID uuid.UUID) (model.LeaveApplicationModel, error) {
	var leave model.LeaveApplicationModel
	err := r.db.WithContext(ctx).
		Joins("JOIN attendance_sessions s ON s.session_id = leave_applications.session_id").
		Where("leave_applications.leave_id = ? AND s.college_id = ? AND s.deleted_at IS NULL", leaveID, collegeID).
		Take(&leave).Error
	return leave, err
}

func (r *AttendanceRepository) HasOpenLeave(ctx context.Context, regimentalNo string, drillID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.LeaveApplicationModel{}).
		Where("regimental_no = ? AND drill_id = ? AND status = ?", regimentalNo, drillID, model.LeaveStatusPending).
		Count(&n).Error
	return n > 0, err
}

func (r *AttendanceRepository) UpdateLeaveReview(ctx context.Context, l *model.LeaveApplicationModel) error {
	return r.db.WithContext(ctx).
		Model(&model.LeaveApplicationModel{}).
		Where("leave_id = ?", l.LeaveID).
		Updates(map[string]interface{}{
			"status":              l.Status,
			"reviewed_by_user_id": l.ReviewedBy,
			"reviewed_at":         l.ReviewedAt,
		}).Error
}

// ListLeaveHistory joins the display fields for the cadet's payload. The
// reviewer name comes from the reviewer's cadet profile; an officer reviewer
// has no profile and shows as null there.
func (r *AttendanceRepository) ListLeaveHistory(ctx context.Context, regimentalNo string) ([]model.LeaveHistoryRow, error) {
	var rows []model.LeaveHistoryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			l.leave_id,
			l.session_id,
			l.drill_id,
			s.session_name,
			d.drill_name,
			d.drill_date::text AS drill_date,
			d.drill_time::text AS drill_time,
			l.reason,
			l.attachment_url,
			l.status,
			l.reviewed_by_user_id,
			rcp.full_name AS reviewed_by_name,
			l.reviewed_at,
			l.created_at
		FROM leave_applications l
		LEFT JOIN attendance_sessions s ON s.session_id = l.session_id
		LEFT JOIN attendance_drills d ON d.drill_id = l.drill_id
		LEFT JOIN users ru ON ru.user_id = l.reviewed_by_user_id
		LEFT JOIN cadet_profiles rcp ON rcp.user_id = ru.user_id
		WHERE l.regimental_no = ?
		ORDER BY l.created_at DESC
	`, regimentalNo).Scan(&rows).Error
	return rows, err
}
