// file: internals/features/attendance/service/attendance_service.go
package service

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nccnexus_backend/internals/constants"
	"nccnexus_backend/internals/features/attendance/dto"
	"nccnexus_backend/internals/features/attendance/model"
	"nccnexus_backend/internals/features/attendance/repository"
	helperAuth "nccnexus_backend/internals/helpers/auth"
	"nccnexus_backend/internals/helpers/logger"
	helperOSS "nccnexus_backend/internals/helpers/oss"
)

// leaveAttachmentDir is the blob-store folder for leave attachments.
const leaveAttachmentDir = "attendance-leaves"

type AttendanceService struct {
	store Store
	blobs helperOSS.BlobService
	log   logger.Logger
}

func New(store Store, blobs helperOSS.BlobService, log logger.Logger) *AttendanceService {
	return &AttendanceService{store: store, blobs: blobs, log: log}
}

/* ========================================================
   Scope resolution and guards
   ======================================================== */

// resolveScope loads the caller's tenant placement. Every operation goes
// through here so a dangling token or an unlinked account fails the same way
// everywhere.
func (s *AttendanceService) resolveScope(ctx context.Context, p helperAuth.Principal) (model.UserScope, error) {
	scope, err := s.store.GetUserScope(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.UserScope{}, fiber.NewError(fiber.StatusUnauthorized, "User not found.")
		}
		return model.UserScope{}, err
	}
	// an account with no tenant placement is treated as no identity at all
	if scope.CollegeID == nil {
		return model.UserScope{}, fiber.NewError(fiber.StatusUnauthorized, constants.ErrNotLinkedCollege)
	}
	return scope, nil
}

func requireUnitLeader(p helperAuth.Principal) error {
	if !p.IsUnitLeader() {
		return fiber.NewError(fiber.StatusForbidden, constants.ErrUnitLeaderOnly)
	}
	return nil
}

func requireOfficerOrLeader(p helperAuth.Principal) error {
	if !p.IsOfficer() && !p.IsUnitLeader() {
		return fiber.NewError(fiber.StatusForbidden, constants.ErrOfficerOrLeader)
	}
	return nil
}

/* ========================================================
   Sessions
   ======================================================== */

func (s *AttendanceService) CreateSession(ctx context.Context, p helperAuth.Principal, req dto.CreateSessionRequest) (dto.SessionResponse, error) {
	if err := requireUnitLeader(p); err != nil {
		return dto.SessionResponse{}, err
	}
	scope, err := s.resolveScope(ctx, p)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	session := model.AttendanceSessionModel{
		CollegeID:   *scope.CollegeID,
		SessionName: req.SessionName,
		CreatedBy:   p.UserID,
	}
	if err := s.store.CreateSession(ctx, &session); err != nil {
		if name, ok := repository.UniqueViolation(err); ok && name == "uq_attendance_sessions_college_name_active" {
			return dto.SessionResponse{}, fiber.NewError(fiber.StatusConflict, "Session name already exists in this college.")
		}
		return dto.SessionResponse{}, err
	}
	return dto.FromSessionModel(session), nil
}

func (s *AttendanceService) ListSessions(ctx context.Context, p helperAuth.Principal) ([]dto.SessionResponse, error) {
	if err := requireOfficerOrLeader(p); err != nil {
		return nil, err
	}
	scope, err := s.resolveScope(ctx, p)
	if err != nil {
		return nil, err
	}

	sessions, err := s.store.ListSessions(ctx, *scope.CollegeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionResponse, 0, len(sessions))
	for _, m := range sessions {
		out = append(out, dto.FromSessionModel(m))
	}
	return out, nil
}

func (s *AttendanceService) DeleteSession(ctx context.Context, p helperAuth.Principal, sessionID uuid.UUID) error {
	if err := requireUnitLeader(p); err != nil {
		return err
	}
	scope, err := s.resolveScope(ctx, p)
	if err != nil {
		return err
	}

	if _, err := s.store.FindSessionInCollege(ctx, sessionID, *scope.CollegeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Session not found.")
		}
		return err
	}
	return s.store.SoftDeleteSession(ctx, sessionID)
}

/* ========================================================
   Drills
   ======================================================== */

func (s *AttendanceService) CreateDrill(ctx context.Context, p helperAuth.Principal, req dto.CreateDrillRequest) (dto.DrillResponse, error) {
	if err := requireUnitLeader(p); err != nil {
		return dto.DrillResponse{}, err
	}
	scope, err := s.resolveScope(ctx, p)
	if err != nil {
		return dto.DrillResponse{}, err
	}

	if _, err := s.store.FindSessionInCollege(ctx, req.SessionID, *scope.CollegeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DrillResponse{}, fiber.NewError(fiber.StatusNotFound, "Session not found.")
		}
		return dto.DrillResponse{}, err
	}

	existing, err := s.store.ListDrillNames(ctx, req.SessionID)
	if err != nil {
		return dto.DrillResponse{}, err
	}
	drillName, err := resolveDrillName(req.DrillName, int64(len(existing)), existing)
	if err != nil {
		return dto.DrillResponse{}, err
	}

	drillDate, err := time.Parse("2006-01-02", req.DrillDate)
	if err != nil {
		return dto.DrillResponse{}, fiber.NewError(fiber.StatusBadRequest, "drill_date is not a valid calendar date")
	}

	drill := model.AttendanceDrillModel{
		SessionID: req.SessionID,
		DrillName: drillName,
		DrillDate: drillDate,
		DrillTime: req.DrillTime,
	}
	seeded, err := s.store.CreateDrillWithSeed(ctx, &drill, *scope.CollegeID, p.UserID)
	if err != nil {
		if name, ok := repository.UniqueViolation(err); ok && name == "uq_attendance_drills_session_name_active" {
			return dto.DrillResponse{}, fiber.NewError(fiber.StatusConflict, "Drill name already exists in this session.")
		}
		return dto.DrillResponse{}, err
	}

	s.log.Infof("drill_created drill_id=%s session_id=%s college_id=%s seeded_records=%d marked_by_user_id=%s",
		drill.DrillID, req.SessionID, *scope.CollegeID, seeded, p.UserID)
	s.log.Debugf("seed_verify drill_id=%s seeded_count=%d", drill.DrillID, seeded)

	return dto.FromDrillModel(drill, int(seeded)), nil
}

func (s *AttendanceService) DeleteDrill(ctx context.Context, p helperAuth.Principal, drillID uuid.UUID) error {
	if err := requireUnitLeader(p); err != nil {
		return err
	}
	scope, err := s.resolveScope(ctx, p)
	if err != nil {
		return err
	}

	n, err := s.store.CountDrillsInCollege(ctx, []uuid.UUID{drillID}, *scope.CollegeID)
	if err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Drill not found.")
	}
	return s.store.SoftDeleteDrill(ctx, drillID)
}

/* ========================================================
   Records
   ======================================================== */

func (s *AttendanceService) PatchRecords(ctx context.Context, p helperAuth.Principal, req dto.PatchRecordsRequest) error {
	if err := requireUnitLeader(p); err != nil {
		return err
	}
	scope, err := s.resolveScope(ctx, p)
	if err != nil {
		return err
	}

	drillIDs := make([]uuid.UUID, 0, len(req.Updates))
	seenDrill := make(map[uuid.UUID]struct{}, len(req.Updates))
	regNos := make([]string, 0, len(req.Updates))
	seenReg := make(map[string]struct{}, len(req.Updates))
	for _, u := range req.Updates {
		if _, ok := seenDrill[u.DrillID]; !ok {
			seenDrill[u.DrillID] = struct{}{}
			drillIDs = append(drillIDs, u.DrillID)
		}
		if _, ok := seenReg[u.RegimentalNo]; !ok {
			seenReg[u.RegimentalNo] = struct{}{}
			regNos = append(regNos, u.RegimentalNo)
		}
	}

	// every referenced drill and cadet must live in the caller's college
	drillCount, err := s.store.CountDrillsInCollege(ctx, drillIDs, *scope.CollegeID)
	if err != nil {
		return err
	}
	if drillCount != int64(len(drillIDs)) {
		return fiber.NewError(fiber.StatusForbidden, "One or more drills are outside your college scope.")
	}
	cadetCount, err := s.store.CountCadetsInCollege(ctx, regNos, *scope.CollegeID)
	if err != nil {
		return err
	}
	if cadetCount != int64(len(regNos)) {
		return fiber.NewError(fiber.StatusForbidden, "One or more cadets are outside your college scope.")
	}

	now := time.Now()
	records := make([]model.AttendanceRecordModel, 0, len(req.Updates))
	for _, u := range req.Updates {
		records = append(records, model.AttendanceRecordModel{
			DrillID:      u.DrillID,
			RegimentalNo: u.RegimentalNo,
			Status:       u.Status,
			MarkedBy:     p.UserID,
			MarkedAt:     now,
		})
	}
	return s.store.UpsertRecords(ctx, records)
}

/* ========================================================
   Views and export
   ======================================================== */

func (s *AttendanceService) SessionDetail(ctx context.Context, p helperAuth.Principal, sessionID uuid.UUID) (dto.SessionDetailResponse, error) {
	if err := requireOfficerOrLeader(p); err != nil {
		return dto.SessionDetailResponse{}, err
	}
	scope, err := s.resolveScope(ctx, p)
	if err != nil {
		return dto.SessionDetailResponse{}, err
	}

	session, err := s.store.FindSessionInCollege(ctx, sessionID, *scope.CollegeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SessionDetailResponse{}, fiber.NewError(fiber.StatusNotFound, "Session not found.")
		}
		return dto.SessionDetailResponse{}, err
	}

	drills, err := s.store.ListDrills(ctx, sessionID)
	if err != nil {
		return dto.SessionDetailResponse{}, err
	}
	roster, err := s.store.ListRoster(ctx, *scope.CollegeID)
	if err != nil {
		return dto.SessionDetailResponse{}, err
	}
	records, err := s.store.ListRecordsForSession(ctx, sessionID)
	if err != nil {
		return dto.SessionDetailResponse{}, err
	}

	return buildSessionDetail(session, drills, roster, records), nil
}

// ExportSessionCSV renders the session matrix as CSV and returns it with the
// download file name derived from the session name.
func (s *AttendanceService) ExportSessionCSV(ctx context.Context, p helperAuth.Principal, sessionID uuid.UUID) (string, string, error) {
	detail, err := s.SessionDetail(ctx, p, sessionID)
	if err != nil {
		return "", "", err
	}
	filename := "attendance_" + SanitizeFileName(detail.SessionName) + ".csv"
	return RenderSessionCSV(detail), filename, nil
}

func (s *AttendanceService) MyAttendance(ctx context.Context, p helperAuth.Principal, regimentalNo string) (dto.MyAttendanceResponse, error) {
	if !p.IsPlainCadet() {
		return dto.MyAttendanceResponse{}, fiber.NewError(fiber.StatusForbidden, constants.ErrCadetOnly)
	}
	if p.RegimentalNo != regimentalNo {
		return dto.MyAttendanceResponse{}, fiber.NewError(fiber.StatusForbidden, "You can access only your own attendance.")
	}

	cadet, err := s.store.GetCadetProfileByUser(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MyAttendanceResponse{}, fiber.NewError(fiber.StatusNotFound, "Cadet profile not found.")
		}
		return dto.MyAttendanceResponse{}, err
	}
	if cadet.RegimentalNo != regimentalNo {
		return dto.MyAttendanceResponse{}, fiber.NewError(fiber.StatusForbidden, "You can access only your own attendance.")
	}

	s.log.Debugf("my_attendance regimental_no=%s college_id=%s", regimentalNo, cadet.CollegeID)

	sessions, err := s.store.ListSessions(ctx, cadet.CollegeID)
	if err != nil {
		return dto.MyAttendanceResponse{}, err
	}

	now := time.Now()
	total, present := 0, 0
	views := make([]dto.CadetSessionView, 0, len(sessions))
	for _, session := range sessions {
		rows, err := s.store.ListDrillsWithRecords(ctx, session.SessionID, regimentalNo)
		if err != nil {
			return dto.MyAttendanceResponse{}, err
		}
		views = append(views, buildCadetSessionView(session, rows, now, &total, &present))
	}

	history, err := s.store.ListLeaveHistory(ctx, regimentalNo)
	if err != nil {
		return dto.MyAttendanceResponse{}, err
	}

	return dto.MyAttendanceResponse{
		RegimentalNo: regimentalNo,
		Stats: dto.CadetStats{
			Total:   total,
			Present: present,
			Absent:  total - present,
			Percent: percentOf(present, total),
		},
		Sessions:          views,
		LeaveApplications: toLeaveHistoryViews(history),
	}, nil
}

/* ========================================================
   Leave workflow
   ======================================================== */

type attachmentMeta struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

func (s *AttendanceService) SubmitLeave(ctx context.Context, p helperAuth.Principal, req dto.SubmitLeaveRequest, file *multipart.FileHeader) (dto.LeaveResponse, error) {
	if !p.IsPlainCadet() {
		return dto.LeaveResponse{}, fiber.NewError(fiber.StatusForbidden, constants.ErrCadetOnly)
	}
	if p.RegimentalNo != req.RegimentalNo {
		return dto.LeaveResponse{}, fiber.NewError(fiber.StatusForbidden, "You can submit leave only for your own regimental number.")
	}

	cadet, err := s.store.GetCadetProfileByUser(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LeaveResponse{}, fiber.NewError(fiber.StatusNotFound, "Cadet profile not found.")
		}
		return dto.LeaveResponse{}, err
	}

	// the (session, drill, college) triple must hang together
	if _, err := s.store.FindSessionInCollege(ctx, req.SessionID, cadet.CollegeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LeaveResponse{}, fiber.NewError(fiber.StatusBadRequest, "Session/Drill mismatch or out of scope.")
		}
		return dto.LeaveResponse{}, err
	}
	if _, err := s.store.FindDrillInSession(ctx, req.DrillID, req.SessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LeaveResponse{}, fiber.NewError(fiber.StatusBadRequest, "Session/Drill mismatch or out of scope.")
		}
		return dto.LeaveResponse{}, err
	}

	open, err := s.store.HasOpenLeave(ctx, req.RegimentalNo, req.DrillID)
	if err != nil {
		return dto.LeaveResponse{}, err
	}
	if open {
		return dto.LeaveResponse{}, fiber.NewError(fiber.StatusConflict, "A leave application for this drill is already open.")
	}

	leave := model.LeaveApplicationModel{
		RegimentalNo: req.RegimentalNo,
		SessionID:    req.SessionID,
		DrillID:      req.DrillID,
		Reason:       req.Reason,
		Status:       model.LeaveStatusPending,
	}

	if file != nil {
		if s.blobs == nil {
			return dto.LeaveResponse{}, fiber.NewError(fiber.StatusBadGateway, "Attachment storage is not configured")
		}
		url, contentType, err := s.blobs.UploadRawToDir(ctx, leaveAttachmentDir, file)
		if err != nil {
			return dto.LeaveResponse{}, err
		}
		leave.AttachmentURL = &url
		meta, err := sonic.Marshal(attachmentMeta{
			FileName:    file.Filename,
			ContentType: contentType,
			SizeBytes:   file.Size,
		})
		if err == nil {
			leave.AttachmentMeta = meta
		}
	}

	if err := s.store.CreateLeave(ctx, &leave); err != nil {
		return dto.LeaveResponse{}, err
	}
	s.log.Infof("leave_submitted leave_id=%s regimental_no=%s drill_id=%s", leave.LeaveID, leave.RegimentalNo, leave.DrillID)
	return dto.FromLeaveModel(leave), nil
}

func (s *AttendanceService) ReviewLeave(ctx context.Context, p helperAuth.Principal, leaveID uuid.UUID, status string) (dto.LeaveResponse, error) {
	if err := requireOfficerOrLeader(p); err != nil {
		return dto.LeaveResponse{}, err
	}
	scope, err := s.resolveScope(ctx, p)
	if err != nil {
		return dto.LeaveResponse{}, err
	}

	leave, err := s.store.FindLeaveInCollege(ctx, leaveID, *scope.CollegeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LeaveResponse{}, fiber.NewError(fiber.StatusNotFound, "Leave application not found.")
		}
		return dto.LeaveResponse{}, err
	}
	if leave.Status != model.LeaveStatusPending {
		return dto.LeaveResponse{}, fiber.NewError(fiber.StatusConflict, "Leave application already reviewed.")
	}

	now := time.Now()
	leave.Status = status
	leave.ReviewedBy = &p.UserID
	leave.ReviewedAt = &now
	if err := s.store.UpdateLeaveReview(ctx, &leave); err != nil {
		return dto.LeaveResponse{}, err
	}
	s.log.Infof("leave_reviewed leave_id=%s status=%s reviewer=%s", leave.LeaveID, leave.Status, p.UserID)
	return dto.FromLeaveModel(leave), nil
}
