// file: internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "nccnexus_backend/internals/features/attendance/route"
	"nccnexus_backend/internals/helpers/logger"
	helperOSS "nccnexus_backend/internals/helpers/oss"
	authMw "nccnexus_backend/internals/middlewares/auth"
)

// SetupRoutes mounts every feature under the authenticated /api group.
func SetupRoutes(app *fiber.App, db *gorm.DB, blobs helperOSS.BlobService, log logger.Logger) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", authMw.AuthMiddleware())
	attendanceRoute.AttendanceRoutes(api, db, blobs, log)
}
