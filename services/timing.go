package services

import (
	"time"

	"fiber-tracking/models"
)

// Workflow edge names as stored in workflow_configs.
const (
	EdgeDeliveryToReceive       = "delivery_to_receive"
	EdgeReceiveToAssembling     = "receive_to_assembling"
	EdgeAssemblingToWarehousing = "assembling_to_warehousing"
)

// EdgeNames lists the three configurable pipeline edges.
var EdgeNames = []string{
	EdgeDeliveryToReceive,
	EdgeReceiveToAssembling,
	EdgeAssemblingToWarehousing,
}

// TimingResult is the outcome of a dwell-time check. RemainingSeconds
// is second-granular for countdown display only; the allow decision
// itself is minute-granular.
type TimingResult struct {
	Allowed          bool   `json:"allowed"`
	RemainingSeconds int    `json:"remaining_seconds"`
	MinimumMinutes   int    `json:"minimum_minutes"`
	Message          string `json:"message"`
}

// ConfigLookup fetches the workflow config for an edge name. A nil
// config means no row exists for that edge.
type ConfigLookup func(stepName string) (*models.WorkflowConfig, error)

// EdgeForStep maps a target step to the config edge gating it.
// Delivery has no gate.
func EdgeForStep(step string) string {
	switch step {
	case StepReceive:
		return EdgeDeliveryToReceive
	case StepAssembling:
		return EdgeReceiveToAssembling
	case StepWarehousing:
		return EdgeAssemblingToWarehousing
	}
	return ""
}

// dependencyTime returns the previous-stage timestamp the target step
// depends on.
func dependencyTime(unit *models.ProductionCode, step string) *time.Time {
	switch step {
	case StepReceive:
		return unit.DeliveryAt
	case StepAssembling:
		return unit.ReceiveAt
	case StepWarehousing:
		return unit.AssemblingAt
	}
	return nil
}

// ValidateTiming checks whether the unit may advance to the target
// step at the given instant. Absence of an active config always
// allows: configuration gaps must never block production.
func ValidateTiming(lookup ConfigLookup, unit *models.ProductionCode, step string, now time.Time) (TimingResult, error) {
	if step == StepDelivery {
		return TimingResult{Allowed: true, Message: "no gate for delivery"}, nil
	}

	edge := EdgeForStep(step)
	if edge == "" {
		return TimingResult{}, NewValidationError("unknown workflow step %q", step)
	}

	dep := dependencyTime(unit, step)
	if dep == nil {
		return TimingResult{
			Allowed: false,
			Message: "previous stage incomplete",
		}, nil
	}

	cfg, err := lookup(edge)
	if err != nil {
		return TimingResult{}, NewInternalError("workflow config lookup failed", err)
	}
	if cfg == nil || !cfg.IsActive || cfg.MinimumMinutes <= 0 {
		return TimingResult{Allowed: true, Message: "no active dwell time configured"}, nil
	}

	elapsed := int(now.Sub(*dep).Minutes())
	if elapsed >= cfg.MinimumMinutes {
		return TimingResult{
			Allowed:        true,
			MinimumMinutes: cfg.MinimumMinutes,
			Message:        "minimum dwell time elapsed",
		}, nil
	}

	return TimingResult{
		Allowed:          false,
		RemainingSeconds: (cfg.MinimumMinutes - elapsed) * 60,
		MinimumMinutes:   cfg.MinimumMinutes,
		Message:          "minimum dwell time not elapsed",
	}, nil
}
