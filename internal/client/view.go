package client

import (
	"fmt"

	"backend-reservation/internal/models"
)

// Placeholder shown wherever a number is not known yet.
const Placeholder = "---"

// StatusView joins the server summary with the locally derived queue view.
// The two sources stay independent: the server's current_number and the
// list-derived calling reservation are both shown, never reconciled.
type StatusView struct {
	Summary SummaryState
	Queue   QueueStatus
}

func ComposeView(summary SummaryState, queue QueueStatus) StatusView {
	return StatusView{Summary: summary, Queue: queue}
}

// FormatNumber renders a reception number, or the placeholder when absent.
func FormatNumber(n *int) string {
	if n == nil {
		return Placeholder
	}
	return fmt.Sprintf("%d", *n)
}

func formatReservationNumber(r *models.Reservation) string {
	if r == nil {
		return Placeholder
	}
	return fmt.Sprintf("%d", r.ReceptionNumber)
}

// CurrentNumber is the number the branch is serving, per the server.
func (v StatusView) CurrentNumber() string {
	if v.Summary.Status == nil {
		return Placeholder
	}
	return FormatNumber(v.Summary.Status.CurrentNumber)
}

// LatestNumber is the newest reception number issued today, per the server.
func (v StatusView) LatestNumber() string {
	if v.Summary.Status == nil {
		return Placeholder
	}
	return FormatNumber(v.Summary.Status.LatestReceptionNumber)
}

// CallingNumber is the highest reception number currently being called,
// derived from the reservation list.
func (v StatusView) CallingNumber() string {
	return formatReservationNumber(v.Queue.Calling)
}

// MyNumber is the signed-in user's reception number, if they hold one.
func (v StatusView) MyNumber() string {
	return formatReservationNumber(v.Queue.Mine)
}

func (v StatusView) WaitingCount() string {
	if v.Summary.Status == nil {
		return Placeholder
	}
	return fmt.Sprintf("%d", v.Summary.Status.WaitingCount)
}

func (v StatusView) CurrentTime() string {
	if v.Summary.Status == nil {
		return Placeholder
	}
	return v.Summary.Status.CurrentTime
}

// BusinessHoursLine renders the branch windows as
// "09:00 - 12:00 / 13:00 - 17:00". Either window may be empty.
func (v StatusView) BusinessHoursLine() string {
	if v.Summary.Status == nil {
		return Placeholder
	}

	h := v.Summary.Status.BusinessHours

	window := func(start, end string) string {
		if start == "" || end == "" {
			return ""
		}
		return fmt.Sprintf("%s - %s", clockShort(start), clockShort(end))
	}

	morning := window(h.MorningStart, h.MorningEnd)
	afternoon := window(h.AfternoonStart, h.AfternoonEnd)

	switch {
	case morning != "" && afternoon != "":
		return morning + " / " + afternoon
	case morning != "":
		return morning
	case afternoon != "":
		return afternoon
	default:
		return Placeholder
	}
}

// clockShort trims HH:MM:SS down to HH:MM for display.
func clockShort(clock string) string {
	if len(clock) >= 5 {
		return clock[:5]
	}
	return clock
}
