package helper

import (
	"strings"
	"time"

	"backend-reservation/internal/config"
	"backend-reservation/internal/models"
)

func AppLocation() *time.Location {
	loc, err := time.LoadLocation(config.GetEnv("APP_TIMEZONE", "Asia/Tokyo"))
	if err != nil {
		return time.Local
	}
	return loc
}

// NormalizeClock - DB TIME columns come back as HH:MM:SS, requests as HH:MM.
func NormalizeClock(clock string) string {
	if strings.Count(clock, ":") == 1 {
		clock += ":00"
	}
	return clock
}

func parseClockOn(day time.Time, clock string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation("15:04:05", NormalizeClock(clock), loc)
	if err != nil {
		return time.Time{}, false
	}

	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), t.Second(),
		0, loc,
	), true
}

// IsOpenAt reports whether now falls inside the morning or afternoon window.
func IsOpenAt(hours models.BusinessHours, now time.Time) bool {
	loc := now.Location()

	windows := [][2]string{
		{hours.MorningStart, hours.MorningEnd},
		{hours.AfternoonStart, hours.AfternoonEnd},
	}

	for _, w := range windows {
		open, ok := parseClockOn(now, w[0], loc)
		if !ok {
			continue
		}
		closeAt, ok := parseClockOn(now, w[1], loc)
		if !ok {
			continue
		}

		// Window crossing midnight, e.g. 22:00 - 02:00. Before today's
		// opening time the relevant window is yesterday's, so both ends
		// shift back a day.
		if closeAt.Before(open) {
			closeAt = closeAt.Add(24 * time.Hour)
			if now.Before(open) {
				open = open.Add(-24 * time.Hour)
				closeAt = closeAt.Add(-24 * time.Hour)
			}
		}

		if now.After(open) && now.Before(closeAt) {
			return true
		}
	}

	return false
}

func IsOpen(hours models.BusinessHours) bool {
	return IsOpenAt(hours, time.Now().In(AppLocation()))
}
