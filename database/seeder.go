package database

import (
	"log"

	"fiber-tracking/models"
	"fiber-tracking/services"

	"gorm.io/gorm"
)

// SeedWorkflowConfigs creates the three pipeline edge configs on first
// boot. Defaults are zero minutes, active; the gate is a no-op until
// someone configures a real dwell time.
func SeedWorkflowConfigs(db *gorm.DB) {
	for _, step := range services.EdgeNames {
		var existing models.WorkflowConfig
		if err := db.Where("step_name = ?", step).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				cfg := models.WorkflowConfig{
					StepName:       step,
					MinimumMinutes: 0,
					IsActive:       true,
				}
				if err := db.Create(&cfg).Error; err != nil {
					log.Fatalf("Failed to seed workflow config %s: %v", step, err)
				}
			} else {
				log.Fatalf("Unexpected DB error: %v", err)
			}
		}
	}
}
