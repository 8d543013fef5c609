// file: internals/features/attendance/route/attendance_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nccnexus_backend/internals/features/attendance/controller"
	"nccnexus_backend/internals/features/attendance/repository"
	"nccnexus_backend/internals/features/attendance/service"
	"nccnexus_backend/internals/helpers/logger"
	helperOSS "nccnexus_backend/internals/helpers/oss"
)

// AttendanceRoutes wires the attendance feature under r. Role checks live in
// the service layer, so the routes only assume an authenticated caller.
func AttendanceRoutes(r fiber.Router, db *gorm.DB, blobs helperOSS.BlobService, log logger.Logger) {
	svc := service.New(repository.New(db), blobs, log)
	attendanceCtl := controller.NewAttendanceController(svc)
	leaveCtl := controller.NewLeaveController(svc)

	grp := r.Group("/attendance")

	// unit leader
	grp.Post("/sessions", attendanceCtl.CreateSession)
	grp.Delete("/sessions/:id", attendanceCtl.DeleteSession)
	grp.Post("/drills", attendanceCtl.CreateDrill)
	grp.Delete("/drills/:id", attendanceCtl.DeleteDrill)
	grp.Patch("/records", attendanceCtl.PatchRecords)

	// officer or unit leader
	grp.Get("/sessions", attendanceCtl.GetSessions)
	grp.Get("/session/:id", attendanceCtl.GetSessionDetail)
	grp.Get("/export/:sessionId", attendanceCtl.ExportSession)
	grp.Patch("/leave/:id", leaveCtl.ReviewLeave)

	// cadet
	grp.Get("/my/:regimental_no", attendanceCtl.GetMyAttendance)
	grp.Post("/leave", leaveCtl.SubmitLeave)
}
