package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, AppointmentStatusScheduled.CanTransitionTo(AppointmentStatusConfirmed))
	assert.True(t, AppointmentStatusScheduled.CanTransitionTo(AppointmentStatusCancelled))
	assert.True(t, AppointmentStatusScheduled.CanTransitionTo(AppointmentStatusCompleted))
	assert.True(t, AppointmentStatusScheduled.CanTransitionTo(AppointmentStatusNoShow))

	assert.True(t, AppointmentStatusConfirmed.CanTransitionTo(AppointmentStatusCancelled))
	assert.True(t, AppointmentStatusConfirmed.CanTransitionTo(AppointmentStatusCompleted))
	assert.True(t, AppointmentStatusConfirmed.CanTransitionTo(AppointmentStatusNoShow))
	assert.False(t, AppointmentStatusConfirmed.CanTransitionTo(AppointmentStatusScheduled))

	for _, terminal := range []AppointmentStatus{
		AppointmentStatusCancelled,
		AppointmentStatusCompleted,
		AppointmentStatusNoShow,
	} {
		assert.True(t, terminal.Terminal())
		assert.False(t, terminal.CanTransitionTo(AppointmentStatusScheduled), "no way out of %s", terminal)
		assert.False(t, terminal.CanTransitionTo(AppointmentStatusConfirmed), "no way out of %s", terminal)
	}

	assert.False(t, AppointmentStatusScheduled.CanTransitionTo(AppointmentStatusScheduled), "self transition is not a transition")
}
