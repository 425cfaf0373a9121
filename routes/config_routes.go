package routes

import (
	"fiber-tracking/config"
	"fiber-tracking/controllers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupWorkflowConfigRoutes(app *fiber.App, db *gorm.DB) {
	configController := controllers.NewWorkflowConfigController(db)
	api := app.Group(config.MAIN_ROUTES + "/configurations/workflow")

	api.Get("/", configController.GetAll)
	api.Put("/:step", configController.Update)
}
