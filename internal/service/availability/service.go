package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/booklyhq/booking-api/internal/model"
	"github.com/booklyhq/booking-api/internal/repository"
)

// Defaults applied when a professional has no schedule configured at all.
const (
	DefaultDayStart = model.MinuteOfDay(9 * 60)  // 09:00
	DefaultDayEnd   = model.MinuteOfDay(18 * 60) // 18:00
	SlotInterval    = 30 * time.Minute
)

// IsWorkingDay decides whether date is workable given the professional's
// full weekly schedule. A professional with no intervals configured at
// all is unconstrained: every date is workable and the default hours
// apply downstream. Once any interval exists, a date is a working day
// only if an active interval covers its weekday. A weekday left blank
// in an otherwise configured schedule is closed, not open.
func IsWorkingDay(date time.Time, intervals []model.WorkInterval) bool {
	if len(intervals) == 0 {
		return true
	}
	return activeIntervalFor(date.Weekday(), intervals) != nil
}

// BuildSlots produces the ordered bookable slots for date. Slots step
// every 30 minutes from the interval start and stop strictly before the
// interval end, so a trailing partial slot is never emitted. Every slot
// is reported available: no conflict check against existing appointments
// happens at generation time (the store-level booking guard is the only
// protection; see the booking repository).
func BuildSlots(date time.Time, intervals []model.WorkInterval) []model.Slot {
	return buildSlots(date, intervals, DefaultDayStart, DefaultDayEnd, SlotInterval)
}

func buildSlots(date time.Time, intervals []model.WorkInterval, dayStart, dayEnd model.MinuteOfDay, step time.Duration) []model.Slot {
	interval := activeIntervalFor(date.Weekday(), intervals)
	if interval == nil {
		if len(intervals) > 0 {
			return []model.Slot{}
		}
		interval = &model.WorkInterval{
			DayOfWeek:   date.Weekday(),
			StartMinute: dayStart,
			EndMinute:   dayEnd,
			Active:      true,
		}
	}

	stepMinutes := int(step / time.Minute)
	if stepMinutes < 1 {
		stepMinutes = 1
		step = time.Minute
	}
	slots := make([]model.Slot, 0, int(interval.EndMinute-interval.StartMinute)/stepMinutes)
	for cur := interval.StartMinute; cur < interval.EndMinute; cur = cur.Add(step) {
		slots = append(slots, model.Slot{Time: cur, Available: true})
	}
	return slots
}

// IsDateSelectable rejects strictly-past dates, comparing dates only so
// the current time of day never matters. Once a professional is chosen
// the date must additionally be one of their working days; with no
// professional chosen any non-past date is selectable.
func IsDateSelectable(date, today time.Time, intervals []model.WorkInterval, professionalChosen bool) bool {
	if truncateToDay(date).Before(truncateToDay(today)) {
		return false
	}
	if !professionalChosen {
		return true
	}
	return IsWorkingDay(date, intervals)
}

// activeIntervalFor returns the first active interval on the weekday.
// Observed usage configures at most one interval per weekday; extras
// are ignored rather than merged.
func activeIntervalFor(day time.Weekday, intervals []model.WorkInterval) *model.WorkInterval {
	for i := range intervals {
		if intervals[i].DayOfWeek == day && intervals[i].Active {
			return &intervals[i]
		}
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Config overrides the fallback hours and slot step for professionals
// without a configured schedule. Zero values keep the package defaults.
type Config struct {
	DayStart     model.MinuteOfDay
	DayEnd       model.MinuteOfDay
	SlotInterval time.Duration
}

// Service loads schedules and answers availability queries.
type Service struct {
	repo     repository.ScheduleRepository
	now      func() time.Time
	dayStart model.MinuteOfDay
	dayEnd   model.MinuteOfDay
	step     time.Duration
}

func NewService(repo repository.ScheduleRepository, cfg Config) *Service {
	if cfg.DayStart <= 0 {
		cfg.DayStart = DefaultDayStart
	}
	if cfg.DayEnd <= cfg.DayStart {
		cfg.DayEnd = DefaultDayEnd
	}
	if cfg.SlotInterval <= 0 {
		cfg.SlotInterval = SlotInterval
	}
	return &Service{
		repo:     repo,
		now:      time.Now,
		dayStart: cfg.DayStart,
		dayEnd:   cfg.DayEnd,
		step:     cfg.SlotInterval,
	}
}

// GetDayAvailability returns the working-day flag and the slot list for
// one professional and date. A day with zero slots is a normal empty
// result, not an error.
func (s *Service) GetDayAvailability(ctx context.Context, professionalID uuid.UUID, date time.Time) (*model.DayAvailability, error) {
	intervals, err := s.repo.ListIntervals(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	avail := &model.DayAvailability{
		ProfessionalID: professionalID,
		Date:           date.Format("2006-01-02"),
		WorkingDay:     IsWorkingDay(date, intervals),
		Slots:          []model.Slot{},
	}
	if avail.WorkingDay {
		avail.Slots = buildSlots(date, intervals, s.dayStart, s.dayEnd, s.step)
	}
	return avail, nil
}

// IsSlotBookable validates a (professional, date, time) triple: the date
// must still be selectable and the time must be one of the generated
// slots for that day.
func (s *Service) IsSlotBookable(ctx context.Context, professionalID uuid.UUID, date time.Time, at model.MinuteOfDay) (bool, error) {
	intervals, err := s.repo.ListIntervals(ctx, professionalID)
	if err != nil {
		return false, fmt.Errorf("failed to load schedule: %w", err)
	}

	if !IsDateSelectable(date, s.now(), intervals, true) {
		return false, nil
	}
	for _, slot := range buildSlots(date, intervals, s.dayStart, s.dayEnd, s.step) {
		if slot.Time == at {
			return true, nil
		}
	}
	return false, nil
}
