package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// statusTransitions is the only ordering guarantee the system offers:
// the backing store accepts arbitrary updates, so the state machine is
// enforced here, on the write path. Cancelled, completed and no_show
// are terminal.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled: {
		AppointmentStatusConfirmed,
		AppointmentStatusCancelled,
		AppointmentStatusCompleted,
		AppointmentStatusNoShow,
	},
	AppointmentStatusConfirmed: {
		AppointmentStatusCancelled,
		AppointmentStatusCompleted,
		AppointmentStatusNoShow,
	},
}

// CanTransitionTo reports whether the status machine permits moving
// from s to target.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition is defined out of s.
func (s AppointmentStatus) Terminal() bool {
	return len(statusTransitions[s]) == 0
}

type Appointment struct {
	Base
	ClientID        uuid.UUID         `db:"client_id" json:"client_id"`
	BusinessID      uuid.UUID         `db:"business_id" json:"business_id"`
	ProfessionalID  *uuid.UUID        `db:"professional_id" json:"professional_id,omitempty"`
	ServiceID       uuid.UUID         `db:"service_id" json:"service_id"`
	AppointmentDate time.Time         `db:"appointment_date" json:"appointment_date"`
	AppointmentTime MinuteOfDay       `db:"appointment_time" json:"appointment_time"`
	DurationMinutes int               `db:"duration_minutes" json:"duration_minutes"`
	TotalPrice      float64           `db:"total_price" json:"total_price"`
	Status          AppointmentStatus `db:"status" json:"status"`
	Notes           string            `db:"notes" json:"notes,omitempty"`
	CancelReason    *string           `db:"cancel_reason" json:"cancel_reason,omitempty"`
}

// CreateAppointmentRequest is the booking payload. The client ID is never
// part of it; it is always taken from the authenticated caller.
type CreateAppointmentRequest struct {
	BusinessID      uuid.UUID    `json:"business_id" binding:"required"`
	ProfessionalID  *uuid.UUID   `json:"professional_id"`
	ServiceID       uuid.UUID    `json:"service_id" binding:"required"`
	AppointmentDate string       `json:"appointment_date" binding:"required"`
	AppointmentTime *MinuteOfDay `json:"appointment_time" binding:"required"`
	DurationMinutes int          `json:"duration_minutes" binding:"required,gt=0"`
	TotalPrice      float64      `json:"total_price" binding:"gte=0"`
	Notes           string       `json:"notes" binding:"max=1000"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type AppointmentFilters struct {
	ClientID       uuid.UUID
	BusinessID     uuid.UUID
	ProfessionalID uuid.UUID
	Status         AppointmentStatus
	StartDate      time.Time
	EndDate        time.Time
}
