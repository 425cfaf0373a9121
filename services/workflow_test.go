package services

import (
	"testing"
	"time"

	"fiber-tracking/models"
)

func ts(minutesAgo int) *time.Time {
	t := time.Now().Add(-time.Duration(minutesAgo) * time.Minute)
	return &t
}

func TestNextStepOrdering(t *testing.T) {
	unit := &models.ProductionCode{}

	if got := NextStep(unit); got != StepDelivery {
		t.Fatalf("expected delivery, got %s", got)
	}

	unit.DeliveryAt = ts(40)
	if got := NextStep(unit); got != StepReceive {
		t.Fatalf("expected receive, got %s", got)
	}

	unit.ReceiveAt = ts(30)
	if got := NextStep(unit); got != StepAssembling {
		t.Fatalf("expected assembling, got %s", got)
	}

	unit.AssemblingAt = ts(20)
	if got := NextStep(unit); got != StepWarehousing {
		t.Fatalf("expected warehousing, got %s", got)
	}

	unit.WarehousingAt = ts(10)
	if got := NextStep(unit); got != StepNone {
		t.Fatalf("expected none, got %s", got)
	}
	if !IsCompleted(unit) {
		t.Fatal("expected unit to be completed")
	}
}

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name string
		unit models.ProductionCode
		want string
	}{
		{"no timestamps", models.ProductionCode{}, StatusCreated},
		{"delivered", models.ProductionCode{DeliveryAt: ts(1)}, StatusDelivered},
		{"received", models.ProductionCode{DeliveryAt: ts(2), ReceiveAt: ts(1)}, StatusReceived},
		{"assembling", models.ProductionCode{DeliveryAt: ts(3), ReceiveAt: ts(2), AssemblingAt: ts(1)}, StatusAssembling},
		{"warehoused", models.ProductionCode{DeliveryAt: ts(4), ReceiveAt: ts(3), AssemblingAt: ts(2), WarehousingAt: ts(1)}, StatusWarehoused},
	}

	for _, tc := range cases {
		if got := DeriveStatus(&tc.unit); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

// The state machine is a pure function of the timestamps: re-invoking
// it with unchanged inputs must not change the answer.
func TestDeriveStatusIdempotent(t *testing.T) {
	unit := &models.ProductionCode{DeliveryAt: ts(10), ReceiveAt: ts(5)}

	first := DeriveStatus(unit)
	second := DeriveStatus(unit)
	if first != second {
		t.Fatalf("derive status not stable: %s then %s", first, second)
	}
	if NextStep(unit) != NextStep(unit) {
		t.Fatal("next step not stable")
	}
}

func TestStatusAfterStep(t *testing.T) {
	if got := StatusAfterStep(StepDelivery); got != StatusDelivered {
		t.Fatalf("expected delivered, got %s", got)
	}
	if got := StatusAfterStep(StepWarehousing); got != StatusWarehoused {
		t.Fatalf("expected warehoused, got %s", got)
	}
}
