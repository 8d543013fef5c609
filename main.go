// file: main.go
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"nccnexus_backend/internals/configs"
	database "nccnexus_backend/internals/databases"
	helper "nccnexus_backend/internals/helpers"
	"nccnexus_backend/internals/helpers/logger"
	helperOSS "nccnexus_backend/internals/helpers/oss"
	"nccnexus_backend/internals/middlewares"
	"nccnexus_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	database.ConnectDB()
	database.TunePool()

	appLog := logger.FromEnv()

	var blobs helperOSS.BlobService
	if ossBlobs, err := helperOSS.NewOSSBlobServiceFromEnv(""); err != nil {
		appLog.Errorf("oss disabled: %v", err)
	} else {
		blobs = ossBlobs
	}

	app := fiber.New(fiber.Config{
		AppName:     "nccnexus-attendance",
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.JsonFromError(c, err)
		},
	})

	middlewares.SetupMiddlewares(app)
	route.SetupRoutes(app, database.DB, blobs, appLog)

	go func() {
		port := configs.GetEnv("PORT", "3000")
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
