package migration

import (
	"fiber-tracking/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ProductionCode{},
		&models.WorkflowConfig{},
		&models.ScanDevice{},
		&models.ScanHistory{},
	)
}
