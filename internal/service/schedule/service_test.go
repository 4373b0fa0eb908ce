package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booklyhq/booking-api/internal/model"
	apperrors "github.com/booklyhq/booking-api/pkg/errors"
)

type fakeScheduleRepo struct {
	stored map[uuid.UUID][]model.WorkInterval
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{stored: make(map[uuid.UUID][]model.WorkInterval)}
}

func (r *fakeScheduleRepo) ListIntervals(ctx context.Context, professionalID uuid.UUID) ([]model.WorkInterval, error) {
	return r.stored[professionalID], nil
}

func (r *fakeScheduleRepo) ReplaceIntervals(ctx context.Context, professionalID uuid.UUID, intervals []model.WorkInterval) error {
	r.stored[professionalID] = intervals
	return nil
}

func TestReplaceIntervals(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewService(repo)
	professionalID := uuid.New()

	intervals, err := svc.ReplaceIntervals(context.Background(), professionalID, &model.ReplaceScheduleRequest{
		Intervals: []model.ScheduleIntervalInput{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true},
			{DayOfWeek: 1, StartTime: "13:00", EndTime: "18:00", IsActive: true},
		},
	})
	require.NoError(t, err)
	require.Len(t, intervals, 2)

	assert.Equal(t, time.Monday, intervals[0].DayOfWeek)
	assert.Equal(t, model.MinuteOfDay(540), intervals[0].StartMinute)
	assert.Equal(t, model.MinuteOfDay(720), intervals[0].EndMinute)
	assert.Equal(t, professionalID, intervals[0].ProfessionalID)

	stored, err := svc.ListIntervals(context.Background(), professionalID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestReplaceIntervalsRejectsBadTimes(t *testing.T) {
	svc := NewService(newFakeScheduleRepo())

	_, err := svc.ReplaceIntervals(context.Background(), uuid.New(), &model.ReplaceScheduleRequest{
		Intervals: []model.ScheduleIntervalInput{
			{DayOfWeek: 1, StartTime: "9am", EndTime: "12:00", IsActive: true},
		},
	})
	requireValidation(t, err)

	_, err = svc.ReplaceIntervals(context.Background(), uuid.New(), &model.ReplaceScheduleRequest{
		Intervals: []model.ScheduleIntervalInput{
			{DayOfWeek: 1, StartTime: "12:00", EndTime: "09:00", IsActive: true},
		},
	})
	requireValidation(t, err)
}

func TestReplaceIntervalsRejectsOverlap(t *testing.T) {
	svc := NewService(newFakeScheduleRepo())

	_, err := svc.ReplaceIntervals(context.Background(), uuid.New(), &model.ReplaceScheduleRequest{
		Intervals: []model.ScheduleIntervalInput{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00", IsActive: true},
			{DayOfWeek: 1, StartTime: "12:00", EndTime: "18:00", IsActive: true},
		},
	})
	requireValidation(t, err)
}

func TestReplaceIntervalsEmptySchedule(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewService(repo)
	professionalID := uuid.New()

	intervals, err := svc.ReplaceIntervals(context.Background(), professionalID, &model.ReplaceScheduleRequest{
		Intervals: []model.ScheduleIntervalInput{},
	})
	require.NoError(t, err)
	assert.Empty(t, intervals, "clearing the schedule reopens every day")
}

func requireValidation(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}
