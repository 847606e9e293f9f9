package core

import (
	"fmt"
	"math"
	"regexp"
	"time"
)

const minutesPerDay = 24 * 60

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// ParseClock converts a wall-clock "HH:MM" string into minutes since
// midnight.
func ParseClock(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("time %q must be in HH:MM format: %w", s, ErrValidation)
	}
	hours := int(m[1][0]-'0')*10 + int(m[1][1]-'0')
	minutes := int(m[2][0]-'0')*10 + int(m[2][1]-'0')
	return hours*60 + minutes, nil
}

// ValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil && len(s) == 10
}

// ElapsedMinutes returns the minutes between two wall-clock times. An end
// earlier than the start is read as crossing midnight, so the interval is
// never negative.
func ElapsedMinutes(start, end string) (int, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	elapsed := endMin - startMin
	if elapsed < 0 {
		elapsed += minutesPerDay
	}
	return elapsed, nil
}

// ElapsedHours returns the hours between start and end minus breakMinutes,
// rounded to two decimal places.
func ElapsedHours(start, end string, breakMinutes int) (float64, error) {
	elapsed, err := ElapsedMinutes(start, end)
	if err != nil {
		return 0, err
	}
	worked := elapsed - breakMinutes
	return math.Round(float64(worked)/60*100) / 100, nil
}
