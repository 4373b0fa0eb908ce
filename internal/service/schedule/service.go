package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/booklyhq/booking-api/internal/model"
	"github.com/booklyhq/booking-api/internal/repository"
	apperrors "github.com/booklyhq/booking-api/pkg/errors"
)

// Service is the business-side write path for weekly schedules. Interval
// validation happens here, on writes only; whatever is already stored is
// served as-is to the availability engine.
type Service struct {
	repo repository.ScheduleRepository
}

func NewService(repo repository.ScheduleRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListIntervals(ctx context.Context, professionalID uuid.UUID) ([]model.WorkInterval, error) {
	intervals, err := s.repo.ListIntervals(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list intervals: %w", err)
	}
	return intervals, nil
}

// ReplaceIntervals swaps the professional's full weekly schedule after
// validating each interval and rejecting overlapping active intervals
// on the same weekday.
func (s *Service) ReplaceIntervals(ctx context.Context, professionalID uuid.UUID, req *model.ReplaceScheduleRequest) ([]model.WorkInterval, error) {
	intervals := make([]model.WorkInterval, 0, len(req.Intervals))
	for _, in := range req.Intervals {
		start, err := model.ParseMinuteOfDay(in.StartTime)
		if err != nil {
			return nil, apperrors.Validation(err.Error())
		}
		end, err := model.ParseMinuteOfDay(in.EndTime)
		if err != nil {
			return nil, apperrors.Validation(err.Error())
		}
		intervals = append(intervals, model.WorkInterval{
			ProfessionalID: professionalID,
			DayOfWeek:      time.Weekday(in.DayOfWeek),
			StartMinute:    start,
			EndMinute:      end,
			Active:         in.IsActive,
		})
	}

	if err := model.ValidateIntervals(intervals); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if err := s.repo.ReplaceIntervals(ctx, professionalID, intervals); err != nil {
		return nil, fmt.Errorf("failed to replace intervals: %w", err)
	}
	return intervals, nil
}
