package services

import "fiber-tracking/models"

// Pipeline steps in order. There is no branching and no skipping: a
// unit always advances delivery -> receive -> assembling -> warehousing.
const (
	StepDelivery    = "delivery"
	StepReceive     = "receive"
	StepAssembling  = "assembling"
	StepWarehousing = "warehousing"
	StepNone        = "none"
)

// Workflow status labels derived from the stage timestamps.
const (
	StatusCreated    = "created"
	StatusDelivered  = "delivered"
	StatusReceived   = "received"
	StatusAssembling = "assembling"
	StatusWarehoused = "warehoused"
	StatusCompleted  = "completed"
)

// NextStep returns the first pipeline stage the unit has not passed
// yet, or StepNone when all four timestamps are present.
func NextStep(unit *models.ProductionCode) string {
	switch {
	case unit.DeliveryAt == nil:
		return StepDelivery
	case unit.ReceiveAt == nil:
		return StepReceive
	case unit.AssemblingAt == nil:
		return StepAssembling
	case unit.WarehousingAt == nil:
		return StepWarehousing
	}
	return StepNone
}

// DeriveStatus recomputes the workflow status label from the stage
// timestamps alone. The Status column caches this value for querying
// but the timestamps stay authoritative.
func DeriveStatus(unit *models.ProductionCode) string {
	switch {
	case unit.WarehousingAt != nil:
		return StatusWarehoused
	case unit.AssemblingAt != nil:
		return StatusAssembling
	case unit.ReceiveAt != nil:
		return StatusReceived
	case unit.DeliveryAt != nil:
		return StatusDelivered
	}
	return StatusCreated
}

// StatusAfterStep is the status a unit carries once the given step has
// been scanned.
func StatusAfterStep(step string) string {
	switch step {
	case StepDelivery:
		return StatusDelivered
	case StepReceive:
		return StatusReceived
	case StepAssembling:
		return StatusAssembling
	case StepWarehousing:
		return StatusWarehoused
	}
	return StatusCreated
}

// IsCompleted reports whether the unit has passed every stage.
func IsCompleted(unit *models.ProductionCode) bool {
	return NextStep(unit) == StepNone
}
