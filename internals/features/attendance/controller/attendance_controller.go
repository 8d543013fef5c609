// file: internals/features/attendance/controller/attendance_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nccnexus_backend/internals/features/attendance/dto"
	"nccnexus_backend/internals/features/attendance/service"
	helper "nccnexus_backend/internals/helpers"
	helperAuth "nccnexus_backend/internals/helpers/auth"
)

type AttendanceController struct {
	svc      *service.AttendanceService
	validate *validator.Validate
}

func NewAttendanceController(svc *service.AttendanceService) *AttendanceController {
	return &AttendanceController{svc: svc, validate: validator.New()}
}

func parseUUIDParam(c *fiber.Ctx, name, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+what+" id")
	}
	return id, nil
}

/* =========================
   Sessions
========================= */

// POST /sessions
func (ctl *AttendanceController) CreateSession(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	data, err := ctl.svc.CreateSession(c.Context(), p, req)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Session created.", data)
}

// GET /sessions
func (ctl *AttendanceController) GetSessions(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	data, err := ctl.svc.ListSessions(c.Context(), p)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "", data)
}

// GET /session/:id
func (ctl *AttendanceController) GetSessionDetail(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	sessionID, err := parseUUIDParam(c, "id", "session")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	data, err := ctl.svc.SessionDetail(c.Context(), p, sessionID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", data)
}

// DELETE /sessions/:id
func (ctl *AttendanceController) DeleteSession(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	sessionID, err := parseUUIDParam(c, "id", "session")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := ctl.svc.DeleteSession(c.Context(), p, sessionID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Session deleted.")
}

/* =========================
   Drills
========================= */

// POST /drills
func (ctl *AttendanceController) CreateDrill(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.CreateDrillRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := req.ValidateShape(); err != nil {
		return helper.JsonFromError(c, err)
	}

	data, err := ctl.svc.CreateDrill(c.Context(), p, req)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Drill created.", data)
}

// DELETE /drills/:id
func (ctl *AttendanceController) DeleteDrill(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	drillID, err := parseUUIDParam(c, "id", "drill")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := ctl.svc.DeleteDrill(c.Context(), p, drillID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Drill deleted.")
}

/* =========================
   Records
========================= */

// PATCH /records
func (ctl *AttendanceController) PatchRecords(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.PatchRecordsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctl.svc.PatchRecords(c.Context(), p, req); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Attendance records updated.", nil)
}

/* =========================
   Export
========================= */

// GET /export/:sessionId
func (ctl *AttendanceController) ExportSession(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	sessionID, err := parseUUIDParam(c, "sessionId", "session")
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	csv, filename, err := ctl.svc.ExportSessionCSV(c.Context(), p, sessionID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).SendString(csv)
}

/* =========================
   Cadet self-service
========================= */

// GET /my/:regimental_no
func (ctl *AttendanceController) GetMyAttendance(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	regNo := c.Params("regimental_no")
	if regNo == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Regimental number is required")
	}

	data, err := ctl.svc.MyAttendance(c.Context(), p, regNo)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", data)
}
