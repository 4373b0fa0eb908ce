package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/booklyhq/booking-api/internal/model"
	"github.com/booklyhq/booking-api/internal/repository"
	apperrors "github.com/booklyhq/booking-api/pkg/errors"
	"github.com/booklyhq/booking-api/pkg/logger"
)

// Service owns appointment creation and the status state machine. It is
// the single write path for appointments; the backing store would accept
// arbitrary updates, so the forward-only status ordering is enforced here.
type Service struct {
	repo   repository.AppointmentRepository
	outbox repository.OutboxRepository
	logger *logger.Logger
}

func NewService(repo repository.AppointmentRepository, outbox repository.OutboxRepository, logger *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		outbox: outbox,
		logger: logger,
	}
}

// CreateAppointment books a slot for the authenticated client. The
// client ID always comes from the caller's token, never the payload.
// There is no pre-read free-slot check: the store's uniqueness guard on
// (professional, date, time) resolves concurrent bookings, and the loser
// gets a conflict error.
func (s *Service) CreateAppointment(ctx context.Context, clientID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.buildAppointment(clientID, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.emitEvent(ctx, model.EventAppointmentCreated, apt)
	return apt, nil
}

func (s *Service) buildAppointment(clientID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if clientID == uuid.Nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("missing client identity"))
	}
	if req.AppointmentDate == "" {
		return nil, apperrors.Validation("appointment date is required")
	}
	if req.AppointmentTime == nil {
		return nil, apperrors.Validation("appointment time is required")
	}
	if req.DurationMinutes <= 0 {
		return nil, apperrors.Validation("duration must be positive")
	}
	if req.TotalPrice < 0 {
		return nil, apperrors.Validation("total price cannot be negative")
	}

	date, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		return nil, apperrors.Validation(fmt.Sprintf("invalid appointment date %q", req.AppointmentDate))
	}

	return &model.Appointment{
		ClientID:        clientID,
		BusinessID:      req.BusinessID,
		ProfessionalID:  req.ProfessionalID,
		ServiceID:       req.ServiceID,
		AppointmentDate: date,
		AppointmentTime: *req.AppointmentTime,
		DurationMinutes: req.DurationMinutes,
		TotalPrice:      req.TotalPrice,
		Status:          model.AppointmentStatusScheduled,
		Notes:           req.Notes,
	}, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return apt, nil
}

// ListProfessionalDay returns a professional's live bookings for one
// date: scheduled and confirmed only, ordered by time. It is the
// business-side day view.
func (s *Service) ListProfessionalDay(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]*model.Appointment, error) {
	appointments, err := s.repo.ListForProfessionalDay(ctx, professionalID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list day appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// Cancel moves a scheduled or confirmed appointment to cancelled.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason string) (*model.Appointment, error) {
	apt, err := s.transition(ctx, id, model.AppointmentStatusCancelled, func(apt *model.Appointment) {
		if reason != "" {
			apt.CancelReason = &reason
		}
	})
	if err != nil {
		return nil, err
	}
	s.emitEvent(ctx, model.EventAppointmentCancelled, apt)
	return apt, nil
}

// Confirm is the business-side acknowledgement of a scheduled booking.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.transition(ctx, id, model.AppointmentStatusConfirmed, nil)
	if err != nil {
		return nil, err
	}
	s.emitEvent(ctx, model.EventAppointmentConfirmed, apt)
	return apt, nil
}

// Complete marks the appointment as done.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.transition(ctx, id, model.AppointmentStatusCompleted, nil)
	if err != nil {
		return nil, err
	}
	s.emitEvent(ctx, model.EventAppointmentCompleted, apt)
	return apt, nil
}

// MarkNoShow records that the client never turned up.
func (s *Service) MarkNoShow(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.transition(ctx, id, model.AppointmentStatusNoShow, nil)
	if err != nil {
		return nil, err
	}
	s.emitEvent(ctx, model.EventAppointmentNoShow, apt)
	return apt, nil
}

// DeleteAppointment physically removes an appointment. The normal flow
// never deletes; only already-cancelled appointments may go.
func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	apt, err := s.GetAppointment(ctx, id)
	if err != nil {
		return err
	}
	if apt.Status != model.AppointmentStatusCancelled {
		return apperrors.Validation("only cancelled appointments can be deleted")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, target model.AppointmentStatus, mutate func(*model.Appointment)) (*model.Appointment, error) {
	apt, err := s.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if !apt.Status.CanTransitionTo(target) {
		return nil, apperrors.Conflict(
			fmt.Sprintf("cannot move appointment from %s to %s", apt.Status, target), nil)
	}

	apt.Status = target
	if mutate != nil {
		mutate(apt)
	}

	if err := s.repo.UpdateStatus(ctx, apt); err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return apt, nil
}

// emitEvent records a lifecycle fact in the outbox. A failed write is
// logged and swallowed: losing an event is preferable to failing the
// booking that caused it.
func (s *Service) emitEvent(ctx context.Context, eventType string, apt *model.Appointment) {
	payload, err := json.Marshal(apt)
	if err != nil {
		s.logger.Error(err, "failed to marshal appointment event",
			"appointment_id", apt.ID.String())
		return
	}

	event := &model.OutboxEvent{
		EventType: eventType,
		Payload:   payload,
	}
	if err := s.outbox.Create(ctx, event); err != nil {
		s.logger.Error(err, "failed to write outbox event",
			"event_type", eventType,
			"appointment_id", apt.ID.String())
	}
}
