// file: internals/features/attendance/controller/leave_controller.go
package controller

import (
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nccnexus_backend/internals/features/attendance/dto"
	"nccnexus_backend/internals/features/attendance/service"
	helper "nccnexus_backend/internals/helpers"
	helperAuth "nccnexus_backend/internals/helpers/auth"
	helperOSS "nccnexus_backend/internals/helpers/oss"
)

type LeaveController struct {
	svc      *service.AttendanceService
	validate *validator.Validate
}

func NewLeaveController(svc *service.AttendanceService) *LeaveController {
	return &LeaveController{svc: svc, validate: validator.New()}
}

// parseLeaveRequest accepts JSON or, when an attachment rides along,
// multipart/form-data with the same field names.
func parseLeaveRequest(c *fiber.Ctx) (dto.SubmitLeaveRequest, *multipart.FileHeader, error) {
	var req dto.SubmitLeaveRequest

	if !helperOSS.IsMultipart(c) {
		if err := c.BodyParser(&req); err != nil {
			return req, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		return req, nil, nil
	}

	sessionID, err := uuid.Parse(strings.TrimSpace(c.FormValue("session_id")))
	if err != nil {
		return req, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}
	drillID, err := uuid.Parse(strings.TrimSpace(c.FormValue("drill_id")))
	if err != nil {
		return req, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid drill id")
	}

	req.SessionID = sessionID
	req.DrillID = drillID
	req.RegimentalNo = c.FormValue("regimental_no")
	req.Reason = c.FormValue("reason")

	fh, err := c.FormFile("attachment")
	if err != nil {
		fh = nil // attachment is optional
	}
	return req, fh, nil
}

// POST /leave
func (ctl *LeaveController) SubmitLeave(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	req, fh, err := parseLeaveRequest(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	req.Normalize()
	if err := ctl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	data, err := ctl.svc.SubmitLeave(c.Context(), p, req, fh)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Leave application submitted.", data)
}

// PATCH /leave/:id
func (ctl *LeaveController) ReviewLeave(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	leaveID, err := parseUUIDParam(c, "id", "leave")
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.ReviewLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if err := ctl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	data, err := ctl.svc.ReviewLeave(c.Context(), p, leaveID, req.Status)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Leave application reviewed.", data)
}
