package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/booklyhq/booking-api/internal/model"
)

// All repository interfaces in one file
type (
	// ScheduleRepository reads and writes professional_schedules.
	// The availability engine only ever reads.
	ScheduleRepository interface {
		ListIntervals(ctx context.Context, professionalID uuid.UUID) ([]model.WorkInterval, error)
		ReplaceIntervals(ctx context.Context, professionalID uuid.UUID, intervals []model.WorkInterval) error
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		UpdateStatus(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		ListForProfessionalDay(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]*model.Appointment, error)
	}

	BusinessRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Business, error)
		List(ctx context.Context) ([]*model.Business, error)
		ListWithAddresses(ctx context.Context) ([]*model.Business, error)
		ListProfessionals(ctx context.Context, businessID uuid.UUID) ([]*model.Professional, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMessage *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
