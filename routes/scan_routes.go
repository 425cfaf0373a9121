package routes

import (
	"fiber-tracking/config"
	"fiber-tracking/controllers"
	"fiber-tracking/middleware"
	"fiber-tracking/notifier"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupScanRoutes(app *fiber.App, db *gorm.DB, n notifier.Notifier) {
	scanController := controllers.NewScanController(db, n)
	api := app.Group(config.MAIN_ROUTES+"/scan", middleware.DeviceIdentity(db))

	api.Post("/", scanController.Scan)
	api.Get("/:product_code/next", scanController.NextStep)
}
