package routes

import (
	"fiber-tracking/config"
	"fiber-tracking/controllers"
	"fiber-tracking/middleware"
	"fiber-tracking/notifier"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupLotRoutes(app *fiber.App, db *gorm.DB, n notifier.Notifier) {
	lotController := controllers.NewLotController(db, n)
	api := app.Group(config.MAIN_ROUTES+"/lots", middleware.DeviceIdentity(db))

	api.Post("/", lotController.CreateLot)
	api.Get("/", lotController.ListLots)
	api.Get("/:product_code", lotController.GetLot)
	api.Post("/:product_code/setup", lotController.SetupLot)
}
