package repositories

import (
	"errors"

	"fiber-tracking/models"
	"fiber-tracking/services"

	"gorm.io/gorm"
)

type WorkflowConfigRepository struct {
	db *gorm.DB
}

func NewWorkflowConfigRepository(db *gorm.DB) *WorkflowConfigRepository {
	return &WorkflowConfigRepository{db: db}
}

// GetByStep returns the config row for an edge, or nil when none
// exists. The timing gate treats nil as allow.
func (r *WorkflowConfigRepository) GetByStep(stepName string) (*models.WorkflowConfig, error) {
	var cfg models.WorkflowConfig
	if err := r.db.Where("step_name = ?", stepName).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// Lookup adapts the repository to the timing gate's ConfigLookup.
func (r *WorkflowConfigRepository) Lookup() services.ConfigLookup {
	return r.GetByStep
}

func (r *WorkflowConfigRepository) GetAll() ([]models.WorkflowConfig, error) {
	var configs []models.WorkflowConfig
	if err := r.db.Order("id ASC").Find(&configs).Error; err != nil {
		return nil, services.NewInternalError("workflow config list failed", err)
	}
	return configs, nil
}

// Update changes dwell-time settings for one edge.
func (r *WorkflowConfigRepository) Update(stepName string, minimumMinutes int, isActive bool) (*models.WorkflowConfig, error) {
	var cfg models.WorkflowConfig
	if err := r.db.Where("step_name = ?", stepName).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.NewNotFoundError("workflow step %s not found", stepName)
		}
		return nil, services.NewInternalError("workflow config lookup failed", err)
	}

	cfg.MinimumMinutes = minimumMinutes
	cfg.IsActive = isActive
	if err := r.db.Save(&cfg).Error; err != nil {
		return nil, services.NewInternalError("workflow config update failed", err)
	}
	return &cfg, nil
}
