package routes

import (
	"fiber-tracking/config"
	"fiber-tracking/controllers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupReportRoutes(app *fiber.App, db *gorm.DB) {
	reportController := controllers.NewReportController(db)
	dashboardController := controllers.NewDashboardController(db)
	api := app.Group(config.MAIN_ROUTES)

	api.Get("/reports/scan-history/export", reportController.ExportScanHistory)
	api.Get("/dashboard/summary", dashboardController.Summary)
}
