package availability

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booklyhq/booking-api/internal/model"
)

// 2024-01-01 was a Monday.
var (
	monday  = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
)

func interval(day time.Weekday, start, end model.MinuteOfDay, active bool) model.WorkInterval {
	return model.WorkInterval{DayOfWeek: day, StartMinute: start, EndMinute: end, Active: active}
}

func minute(t *testing.T, s string) model.MinuteOfDay {
	t.Helper()
	m, err := model.ParseMinuteOfDay(s)
	require.NoError(t, err)
	return m
}

func TestIsWorkingDayUnconstrainedSchedule(t *testing.T) {
	assert.True(t, IsWorkingDay(monday, nil))
	assert.True(t, IsWorkingDay(tuesday, []model.WorkInterval{}))
}

func TestIsWorkingDayConfiguredSchedule(t *testing.T) {
	intervals := []model.WorkInterval{
		interval(time.Monday, 540, 720, true),
	}

	assert.True(t, IsWorkingDay(monday, intervals))
	assert.False(t, IsWorkingDay(tuesday, intervals), "a blank weekday in a configured schedule is closed")
}

func TestIsWorkingDayIgnoresInactiveIntervals(t *testing.T) {
	intervals := []model.WorkInterval{
		interval(time.Monday, 540, 720, false),
	}
	assert.False(t, IsWorkingDay(monday, intervals))
}

func TestBuildSlotsDefaultHours(t *testing.T) {
	slots := BuildSlots(monday, nil)

	require.Len(t, slots, 18)
	assert.Equal(t, minute(t, "09:00"), slots[0].Time)
	assert.Equal(t, minute(t, "09:30"), slots[1].Time)
	assert.Equal(t, minute(t, "17:30"), slots[17].Time)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestBuildSlotsConfiguredInterval(t *testing.T) {
	intervals := []model.WorkInterval{
		interval(time.Monday, minute(t, "09:00"), minute(t, "10:00"), true),
	}

	slots := BuildSlots(monday, intervals)
	require.Len(t, slots, 2)
	assert.Equal(t, minute(t, "09:00"), slots[0].Time)
	assert.Equal(t, minute(t, "09:30"), slots[1].Time)
}

func TestBuildSlotsClosedWeekday(t *testing.T) {
	intervals := []model.WorkInterval{
		interval(time.Monday, minute(t, "14:00"), minute(t, "15:00"), true),
	}

	mondaySlots := BuildSlots(monday, intervals)
	require.Len(t, mondaySlots, 2)
	assert.Equal(t, minute(t, "14:00"), mondaySlots[0].Time)
	assert.Equal(t, minute(t, "14:30"), mondaySlots[1].Time)

	tuesdaySlots := BuildSlots(tuesday, intervals)
	assert.NotNil(t, tuesdaySlots)
	assert.Empty(t, tuesdaySlots, "configured schedule yields no slots on a closed day")
}

func TestBuildSlotsUnevenIntervalEnd(t *testing.T) {
	intervals := []model.WorkInterval{
		interval(time.Monday, minute(t, "09:00"), minute(t, "09:45"), true),
	}

	slots := BuildSlots(monday, intervals)
	require.Len(t, slots, 2)
	assert.Equal(t, minute(t, "09:30"), slots[1].Time, "slots step from the start and stop strictly before the end")
}

func TestIsDateSelectable(t *testing.T) {
	today := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)
	yesterday := time.Date(2024, 1, 9, 23, 59, 0, 0, time.UTC)
	sameDay := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)

	assert.False(t, IsDateSelectable(yesterday, today, nil, false))
	assert.True(t, IsDateSelectable(sameDay, today, nil, false), "date comparison ignores the time of day")
	assert.True(t, IsDateSelectable(tomorrow, today, nil, false))
}

func TestIsDateSelectableWithProfessional(t *testing.T) {
	today := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	intervals := []model.WorkInterval{
		interval(time.Monday, 540, 720, true),
	}

	assert.True(t, IsDateSelectable(monday, today, intervals, true))
	assert.False(t, IsDateSelectable(tuesday, today, intervals, true))
	assert.True(t, IsDateSelectable(tuesday, today, intervals, false), "without a professional any future date works")
}

type stubScheduleRepo struct {
	intervals []model.WorkInterval
	err       error
}

func (s *stubScheduleRepo) ListIntervals(ctx context.Context, professionalID uuid.UUID) ([]model.WorkInterval, error) {
	return s.intervals, s.err
}

func (s *stubScheduleRepo) ReplaceIntervals(ctx context.Context, professionalID uuid.UUID, intervals []model.WorkInterval) error {
	return nil
}

func TestGetDayAvailability(t *testing.T) {
	svc := NewService(&stubScheduleRepo{
		intervals: []model.WorkInterval{
			interval(time.Monday, minute(t, "09:00"), minute(t, "12:00"), true),
		},
	}, Config{})

	professionalID := uuid.New()
	avail, err := svc.GetDayAvailability(context.Background(), professionalID, monday)
	require.NoError(t, err)
	assert.Equal(t, professionalID, avail.ProfessionalID)
	assert.Equal(t, "2024-01-01", avail.Date)
	assert.True(t, avail.WorkingDay)
	assert.Len(t, avail.Slots, 6)

	avail, err = svc.GetDayAvailability(context.Background(), professionalID, tuesday)
	require.NoError(t, err)
	assert.False(t, avail.WorkingDay)
	assert.NotNil(t, avail.Slots)
	assert.Empty(t, avail.Slots)
}

func TestGetDayAvailabilityConfiguredDefaults(t *testing.T) {
	repo := &stubScheduleRepo{}

	svc := NewService(repo, Config{
		DayStart:     minute(t, "08:00"),
		DayEnd:       minute(t, "10:00"),
		SlotInterval: 20 * time.Minute,
	})
	avail, err := svc.GetDayAvailability(context.Background(), uuid.New(), monday)
	require.NoError(t, err)
	require.Len(t, avail.Slots, 6)
	assert.Equal(t, minute(t, "08:00"), avail.Slots[0].Time)
	assert.Equal(t, minute(t, "08:20"), avail.Slots[1].Time)
	assert.Equal(t, minute(t, "09:40"), avail.Slots[5].Time)

	// A zero config keeps the stock 09:00 to 18:00 half-hour grid.
	svc = NewService(repo, Config{})
	avail, err = svc.GetDayAvailability(context.Background(), uuid.New(), monday)
	require.NoError(t, err)
	require.Len(t, avail.Slots, 18)
	assert.Equal(t, minute(t, "09:00"), avail.Slots[0].Time)
	assert.Equal(t, minute(t, "17:30"), avail.Slots[17].Time)
}

func TestIsSlotBookable(t *testing.T) {
	svc := NewService(&stubScheduleRepo{
		intervals: []model.WorkInterval{
			interval(time.Monday, minute(t, "09:00"), minute(t, "12:00"), true),
		},
	}, Config{})
	svc.now = func() time.Time { return time.Date(2023, 12, 20, 12, 0, 0, 0, time.UTC) }

	professionalID := uuid.New()

	ok, err := svc.IsSlotBookable(context.Background(), professionalID, monday, minute(t, "09:30"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsSlotBookable(context.Background(), professionalID, monday, minute(t, "12:00"))
	require.NoError(t, err)
	assert.False(t, ok, "the interval end is not a slot")

	ok, err = svc.IsSlotBookable(context.Background(), professionalID, tuesday, minute(t, "09:30"))
	require.NoError(t, err)
	assert.False(t, ok)

	past := time.Date(2023, 12, 19, 0, 0, 0, 0, time.UTC)
	ok, err = svc.IsSlotBookable(context.Background(), professionalID, past, minute(t, "09:30"))
	require.NoError(t, err)
	assert.False(t, ok)
}
