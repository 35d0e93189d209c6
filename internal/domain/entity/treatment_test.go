package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTreatmentStatus_CanTransition(t *testing.T) {
	cases := []struct {
		from, to TreatmentStatus
		ok       bool
	}{
		{TreatmentScheduled, TreatmentInProgress, true},
		{TreatmentScheduled, TreatmentCompleted, true},
		{TreatmentScheduled, TreatmentCancelled, true},
		{TreatmentInProgress, TreatmentCompleted, true},
		{TreatmentInProgress, TreatmentCancelled, true},
		{TreatmentInProgress, TreatmentScheduled, false},
		{TreatmentScheduled, TreatmentScheduled, false},
		{TreatmentCompleted, TreatmentCancelled, false},
		{TreatmentCompleted, TreatmentInProgress, false},
		{TreatmentCancelled, TreatmentScheduled, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanTransition(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestParsePriority_PorDefectoNormal(t *testing.T) {
	p, ok := ParsePriority("")
	assert.True(t, ok)
	assert.Equal(t, PriorityNormal, p)

	_, ok = ParsePriority("critica")
	assert.False(t, ok)
}

func TestEffectiveStatus(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	sameDay := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, InventoryExpired, EffectiveStatus(InventoryActive, &yesterday, today))
	assert.Equal(t, InventoryActive, EffectiveStatus(InventoryActive, &sameDay, today), "vence al terminar el día")
	assert.Equal(t, InventoryActive, EffectiveStatus(InventoryActive, nil, today))
	assert.Equal(t, InventoryDiscarded, EffectiveStatus(InventoryDiscarded, &yesterday, today))
}
