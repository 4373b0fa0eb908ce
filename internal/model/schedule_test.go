package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinuteOfDay(t *testing.T) {
	m, err := ParseMinuteOfDay("09:00")
	require.NoError(t, err)
	assert.Equal(t, MinuteOfDay(540), m)

	m, err = ParseMinuteOfDay("17:30")
	require.NoError(t, err)
	assert.Equal(t, MinuteOfDay(1050), m)

	m, err = ParseMinuteOfDay("09:00:00")
	require.NoError(t, err)
	assert.Equal(t, MinuteOfDay(540), m)

	m, err = ParseMinuteOfDay("00:00")
	require.NoError(t, err)
	assert.Equal(t, MinuteOfDay(0), m)

	m, err = ParseMinuteOfDay("9:30")
	require.NoError(t, err)
	assert.Equal(t, MinuteOfDay(570), m)

	_, err = ParseMinuteOfDay("24:00")
	assert.Error(t, err)

	_, err = ParseMinuteOfDay("09:60")
	assert.Error(t, err)

	_, err = ParseMinuteOfDay("morning")
	assert.Error(t, err)
}

func TestParseMinuteOfDayRejectsTrailingInput(t *testing.T) {
	for _, input := range []string{
		"09:00pm",
		"9:30 extra",
		"09:00:00:00",
		"09:00 ",
		" 09:00",
		"09:-5",
		"09:00:",
		":30",
		"09",
		"",
	} {
		_, err := ParseMinuteOfDay(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestMinuteOfDayString(t *testing.T) {
	assert.Equal(t, "09:00", MinuteOfDay(540).String())
	assert.Equal(t, "17:30", MinuteOfDay(1050).String())
	assert.Equal(t, "00:05", MinuteOfDay(5).String())
}

func TestMinuteOfDayAdd(t *testing.T) {
	assert.Equal(t, MinuteOfDay(570), MinuteOfDay(540).Add(30*time.Minute))
}

func TestMinuteOfDayJSON(t *testing.T) {
	raw, err := json.Marshal(MinuteOfDay(540))
	require.NoError(t, err)
	assert.Equal(t, `"09:00"`, string(raw))

	var m MinuteOfDay
	require.NoError(t, json.Unmarshal([]byte(`"14:30"`), &m))
	assert.Equal(t, MinuteOfDay(870), m)

	assert.Error(t, json.Unmarshal([]byte(`"25:00"`), &m))
}

func TestMinuteOfDayScan(t *testing.T) {
	var m MinuteOfDay
	require.NoError(t, m.Scan(int64(540)))
	assert.Equal(t, MinuteOfDay(540), m)

	require.NoError(t, m.Scan("10:30"))
	assert.Equal(t, MinuteOfDay(630), m)

	assert.Error(t, m.Scan(3.14))
}

func TestWorkIntervalValidate(t *testing.T) {
	valid := WorkInterval{DayOfWeek: time.Monday, StartMinute: 540, EndMinute: 1080, Active: true}
	assert.NoError(t, valid.Validate())

	inverted := WorkInterval{DayOfWeek: time.Monday, StartMinute: 1080, EndMinute: 540}
	assert.Error(t, inverted.Validate())

	empty := WorkInterval{DayOfWeek: time.Monday, StartMinute: 540, EndMinute: 540}
	assert.Error(t, empty.Validate())
}

func TestWorkIntervalOverlaps(t *testing.T) {
	a := WorkInterval{DayOfWeek: time.Monday, StartMinute: 540, EndMinute: 720}
	b := WorkInterval{DayOfWeek: time.Monday, StartMinute: 700, EndMinute: 900}
	c := WorkInterval{DayOfWeek: time.Monday, StartMinute: 720, EndMinute: 900}
	d := WorkInterval{DayOfWeek: time.Tuesday, StartMinute: 540, EndMinute: 720}

	assert.True(t, a.Overlaps(&b))
	assert.True(t, b.Overlaps(&a))
	assert.False(t, a.Overlaps(&c), "touching intervals do not overlap")
	assert.False(t, a.Overlaps(&d), "different weekdays never overlap")
}

func TestValidateIntervals(t *testing.T) {
	ok := []WorkInterval{
		{DayOfWeek: time.Monday, StartMinute: 540, EndMinute: 720, Active: true},
		{DayOfWeek: time.Monday, StartMinute: 780, EndMinute: 1080, Active: true},
		{DayOfWeek: time.Tuesday, StartMinute: 540, EndMinute: 1080, Active: true},
	}
	assert.NoError(t, ValidateIntervals(ok))

	overlapping := []WorkInterval{
		{DayOfWeek: time.Monday, StartMinute: 540, EndMinute: 720, Active: true},
		{DayOfWeek: time.Monday, StartMinute: 600, EndMinute: 900, Active: true},
	}
	assert.Error(t, ValidateIntervals(overlapping))

	inactiveOverlap := []WorkInterval{
		{DayOfWeek: time.Monday, StartMinute: 540, EndMinute: 720, Active: true},
		{DayOfWeek: time.Monday, StartMinute: 600, EndMinute: 900, Active: false},
	}
	assert.NoError(t, ValidateIntervals(inactiveOverlap), "inactive intervals may overlap")
}
