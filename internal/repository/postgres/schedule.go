package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/booklyhq/booking-api/internal/model"
)

func (r *scheduleRepository) ListIntervals(ctx context.Context, professionalID uuid.UUID) ([]model.WorkInterval, error) {
	query := `
		SELECT id, professional_id, day_of_week, start_minute, end_minute, is_active,
			   created_at, updated_at
		FROM professional_schedules
		WHERE professional_id = $1 AND deleted_at IS NULL
		ORDER BY day_of_week, start_minute
	`
	intervals := []model.WorkInterval{}
	if err := r.db.SelectContext(ctx, &intervals, query, professionalID); err != nil {
		return nil, fmt.Errorf("failed to list schedule intervals: %w", err)
	}
	return intervals, nil
}

// ReplaceIntervals swaps the professional's whole weekly schedule in one
// transaction so readers never observe a half-written week.
func (r *scheduleRepository) ReplaceIntervals(ctx context.Context, professionalID uuid.UUID, intervals []model.WorkInterval) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM professional_schedules WHERE professional_id = $1`,
			professionalID,
		); err != nil {
			return fmt.Errorf("failed to clear schedule: %w", err)
		}

		query := `
			INSERT INTO professional_schedules (
				id, professional_id, day_of_week, start_minute, end_minute, is_active,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		now := time.Now()
		for i := range intervals {
			iv := &intervals[i]
			iv.ID = uuid.New()
			iv.ProfessionalID = professionalID
			iv.CreatedAt = now
			iv.UpdatedAt = now

			if _, err := tx.ExecContext(ctx, query,
				iv.ID,
				iv.ProfessionalID,
				iv.DayOfWeek,
				iv.StartMinute,
				iv.EndMinute,
				iv.Active,
				iv.CreatedAt,
				iv.UpdatedAt,
			); err != nil {
				return fmt.Errorf("failed to insert schedule interval: %w", err)
			}
		}
		return nil
	})
}
