package routes

import (
	"fiber-tracking/config"
	"fiber-tracking/controllers"
	"fiber-tracking/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupDeviceRoutes(app *fiber.App, db *gorm.DB) {
	deviceController := controllers.NewDeviceController(db)
	api := app.Group(config.MAIN_ROUTES+"/devices", middleware.DeviceIdentity(db))

	api.Post("/register", deviceController.Register)
	api.Get("/me", deviceController.Me)
	api.Get("/", deviceController.List)
}
