package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MinuteOfDay is a time of day expressed as minutes since midnight.
// Schedule math operates on these integers instead of "HH:MM" strings.
type MinuteOfDay int

// ParseMinuteOfDay parses "HH:MM" or "HH:MM:SS" into a MinuteOfDay.
// The whole string must match: trailing characters ("09:00pm", extra
// ":SS" fields) are rejected, not silently dropped.
func ParseMinuteOfDay(s string) (MinuteOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}

	fields := make([]int, 3)
	for i, part := range parts {
		n, err := parseTimeField(part)
		if err != nil {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
		fields[i] = n
	}

	h, m, sec := fields[0], fields[1], fields[2]
	if h > 23 || m > 59 || sec > 59 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return MinuteOfDay(h*60 + m), nil
}

// parseTimeField accepts one or two digits and nothing else.
func parseTimeField(s string) (int, error) {
	if len(s) == 0 || len(s) > 2 {
		return 0, fmt.Errorf("bad field length")
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit %q", r)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Add returns the minute offset by d, without day wrap-around.
func (m MinuteOfDay) Add(d time.Duration) MinuteOfDay {
	return m + MinuteOfDay(d/time.Minute)
}

func (m MinuteOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *MinuteOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMinuteOfDay(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m MinuteOfDay) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *MinuteOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*m = MinuteOfDay(v)
		return nil
	case []byte:
		parsed, err := ParseMinuteOfDay(string(v))
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case string:
		parsed, err := ParseMinuteOfDay(v)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into MinuteOfDay", src)
	}
}

// WorkInterval is one recurring weekly work period of a professional.
// A professional may have zero, one or several intervals per weekday.
type WorkInterval struct {
	Base
	ProfessionalID uuid.UUID    `db:"professional_id" json:"professional_id"`
	DayOfWeek      time.Weekday `db:"day_of_week" json:"day_of_week"`
	StartMinute    MinuteOfDay  `db:"start_minute" json:"start_time"`
	EndMinute      MinuteOfDay  `db:"end_minute" json:"end_time"`
	Active         bool         `db:"is_active" json:"is_active"`
}

// Validate enforces the single interval invariant: start strictly before end.
func (w *WorkInterval) Validate() error {
	if w.DayOfWeek < time.Sunday || w.DayOfWeek > time.Saturday {
		return fmt.Errorf("invalid day of week %d", w.DayOfWeek)
	}
	if w.StartMinute >= w.EndMinute {
		return fmt.Errorf("interval start %s must be before end %s", w.StartMinute, w.EndMinute)
	}
	return nil
}

// Overlaps reports whether two intervals on the same weekday intersect.
func (w *WorkInterval) Overlaps(other *WorkInterval) bool {
	if w.DayOfWeek != other.DayOfWeek {
		return false
	}
	return w.StartMinute < other.EndMinute && other.StartMinute < w.EndMinute
}

// ValidateIntervals checks every interval and rejects overlapping active
// intervals on the same weekday. Applied at schedule writes only; the
// availability engine stays tolerant of whatever is already stored.
func ValidateIntervals(intervals []WorkInterval) error {
	for i := range intervals {
		if err := intervals[i].Validate(); err != nil {
			return err
		}
	}
	for i := range intervals {
		if !intervals[i].Active {
			continue
		}
		for j := i + 1; j < len(intervals); j++ {
			if !intervals[j].Active {
				continue
			}
			if intervals[i].Overlaps(&intervals[j]) {
				return fmt.Errorf("overlapping intervals on %s: %s-%s and %s-%s",
					intervals[i].DayOfWeek,
					intervals[i].StartMinute, intervals[i].EndMinute,
					intervals[j].StartMinute, intervals[j].EndMinute)
			}
		}
	}
	return nil
}

// Slot is one bookable time produced by the availability engine.
// Slots are ephemeral; they are computed per request and never stored.
type Slot struct {
	Time      MinuteOfDay `json:"time"`
	Available bool        `json:"available"`
}

// DayAvailability is the engine's answer for one professional and date.
type DayAvailability struct {
	ProfessionalID uuid.UUID `json:"professional_id"`
	Date           string    `json:"date"`
	WorkingDay     bool      `json:"working_day"`
	Slots          []Slot    `json:"slots"`
}

// ReplaceScheduleRequest is the business-side write payload for a
// professional's full weekly schedule.
type ReplaceScheduleRequest struct {
	Intervals []ScheduleIntervalInput `json:"intervals" binding:"required"`
}

type ScheduleIntervalInput struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required,timeofday"`
	EndTime   string `json:"end_time" binding:"required,timeofday"`
	IsActive  bool   `json:"is_active"`
}
