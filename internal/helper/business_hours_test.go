package helper

import (
	"testing"
	"time"

	"backend-reservation/internal/models"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
}

func TestIsOpenAt(t *testing.T) {
	hours := models.BusinessHours{
		MorningStart:   "09:00",
		MorningEnd:     "12:00",
		AfternoonStart: "13:30",
		AfternoonEnd:   "18:00",
	}

	cases := []struct {
		name string
		now  time.Time
		open bool
	}{
		{"before opening", at(8, 59), false},
		{"mid morning", at(10, 30), true},
		{"lunch break", at(12, 45), false},
		{"afternoon start", at(13, 31), true},
		{"late afternoon", at(17, 59), true},
		{"after close", at(18, 1), false},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOpenAt(hours, tt.now); got != tt.open {
				t.Fatalf("IsOpenAt(%v)=%v, want %v", tt.now, got, tt.open)
			}
		})
	}
}

func TestIsOpenAt_SecondsFormat(t *testing.T) {
	// TIME columns come back with seconds attached
	hours := models.BusinessHours{
		MorningStart:   "09:00:00",
		MorningEnd:     "12:00:00",
		AfternoonStart: "13:00:00",
		AfternoonEnd:   "17:00:00",
	}

	if !IsOpenAt(hours, at(9, 30)) {
		t.Fatal("expected open at 09:30 with HH:MM:SS hours")
	}
}

func TestIsOpenAt_OvernightWindow(t *testing.T) {
	hours := models.BusinessHours{
		MorningStart:   "09:00",
		MorningEnd:     "12:00",
		AfternoonStart: "22:00",
		AfternoonEnd:   "02:00",
	}

	if !IsOpenAt(hours, at(23, 0)) {
		t.Fatal("expected open at 23:00 for a 22:00-02:00 window")
	}
	if !IsOpenAt(hours, at(1, 0)) {
		t.Fatal("expected open at 01:00 for a 22:00-02:00 window")
	}
	if IsOpenAt(hours, at(3, 0)) {
		t.Fatal("expected closed at 03:00 for a 22:00-02:00 window")
	}
	// The gap between the windows must stay closed
	if IsOpenAt(hours, at(15, 0)) {
		t.Fatal("expected closed at 15:00 for a 22:00-02:00 window")
	}
	if IsOpenAt(hours, at(21, 59)) {
		t.Fatal("expected closed at 21:59 for a 22:00-02:00 window")
	}
}

func TestNormalizeClock(t *testing.T) {
	if got := NormalizeClock("09:30"); got != "09:30:00" {
		t.Fatalf("NormalizeClock(09:30)=%q", got)
	}
	if got := NormalizeClock("09:30:15"); got != "09:30:15" {
		t.Fatalf("NormalizeClock(09:30:15)=%q", got)
	}
}
