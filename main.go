package main

import (
	"fmt"
	"log"

	"fiber-tracking/config"
	"fiber-tracking/controllers/idgen"
	"fiber-tracking/database"
	"fiber-tracking/migration"
	"fiber-tracking/notifier"
	"fiber-tracking/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {

	config.LoadConfig()

	app := fiber.New()
	app.Use(logger.New())

	database.EnsureDatabaseExists(config.DBName)

	db, err := database.OpenDatabaseConnection(config.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.SeedWorkflowConfigs(db)

	// Scan events fan out over Redis when configured; otherwise the
	// publish is a no-op.
	var events notifier.Notifier = notifier.Noop{}
	if config.RedisAddr != "" {
		redisNotifier, err := notifier.NewRedisNotifier(config.RedisAddr, config.RedisChannel)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer redisNotifier.Close()
		events = redisNotifier
	}

	config.SetupCORS(app)

	routes.SetupScanRoutes(app, db, events)
	routes.SetupLotRoutes(app, db, events)
	routes.SetupDeviceRoutes(app, db)
	routes.SetupWorkflowConfigRoutes(app, db)
	routes.SetupReportRoutes(app, db)

	port := config.APP_PORT
	fmt.Println("🚀 Server running on port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}

}
