package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/booklyhq/booking-api/internal/model"
	apperrors "github.com/booklyhq/booking-api/pkg/errors"
)

// uniqueViolation is the postgres error code raised by the partial
// unique index on (professional_id, appointment_date, appointment_time)
// filtered to live statuses. It is the double-booking guard: the service
// does no pre-read check, so two concurrent bookings race to this index
// and exactly one wins.
const uniqueViolation = "23505"

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, client_id, business_id, professional_id, service_id,
			appointment_date, appointment_time, duration_minutes, total_price,
			status, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.ClientID,
		appointment.BusinessID,
		appointment.ProfessionalID,
		appointment.ServiceID,
		appointment.AppointmentDate,
		appointment.AppointmentTime,
		appointment.DurationMinutes,
		appointment.TotalPrice,
		appointment.Status,
		appointment.Notes,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return apperrors.Conflict("time slot is no longer available", err)
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, client_id, business_id, professional_id, service_id,
			   appointment_date, appointment_time, duration_minutes, total_price,
			   status, notes, cancel_reason, created_at, updated_at
		FROM appointments
		WHERE id = $1 AND deleted_at IS NULL
	`
	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

// UpdateStatus patches the status fields only; everything else on an
// appointment is immutable after creation.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET status = $1, cancel_reason = $2, updated_at = $3
		WHERE id = $4 AND deleted_at IS NULL
	`
	appointment.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, query,
		appointment.Status,
		appointment.CancelReason,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE appointments SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT id, client_id, business_id, professional_id, service_id,
			   appointment_date, appointment_time, duration_minutes, total_price,
			   status, notes, cancel_reason, created_at, updated_at
		FROM appointments
		WHERE deleted_at IS NULL
	`
	args := []interface{}{}
	idx := 1

	addFilter := func(clause string, value interface{}) {
		query += fmt.Sprintf(" AND %s = $%d", clause, idx)
		args = append(args, value)
		idx++
	}

	if filters.ClientID != uuid.Nil {
		addFilter("client_id", filters.ClientID)
	}
	if filters.BusinessID != uuid.Nil {
		addFilter("business_id", filters.BusinessID)
	}
	if filters.ProfessionalID != uuid.Nil {
		addFilter("professional_id", filters.ProfessionalID)
	}
	if filters.Status != "" {
		addFilter("status", filters.Status)
	}
	if !filters.StartDate.IsZero() {
		query += fmt.Sprintf(" AND appointment_date >= $%d", idx)
		args = append(args, filters.StartDate)
		idx++
	}
	if !filters.EndDate.IsZero() {
		query += fmt.Sprintf(" AND appointment_date <= $%d", idx)
		args = append(args, filters.EndDate)
		idx++
	}

	query += " ORDER BY appointment_date, appointment_time"

	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListForProfessionalDay(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT id, client_id, business_id, professional_id, service_id,
			   appointment_date, appointment_time, duration_minutes, total_price,
			   status, notes, cancel_reason, created_at, updated_at
		FROM appointments
		WHERE professional_id = $1
		  AND appointment_date = $2
		  AND status IN ('scheduled', 'confirmed')
		  AND deleted_at IS NULL
		ORDER BY appointment_time
	`
	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, professionalID, date); err != nil {
		return nil, fmt.Errorf("failed to list appointments for day: %w", err)
	}
	return appointments, nil
}
