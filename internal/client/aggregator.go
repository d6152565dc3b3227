package client

import "backend-reservation/internal/models"

// QueueStatus is the locally derived view of a reservation list. All fields
// are nil when the list has nothing to offer; the presentation layer renders
// a placeholder instead of failing.
type QueueStatus struct {
	// Latest is the most recently issued reservation (first element of the
	// list as ordered by the fetcher, reception number descending).
	Latest *models.Reservation
	// Calling is the reservation with the highest reception number among
	// those with status "calling".
	Calling *models.Reservation
	// Mine is the reservation belonging to the acting user.
	Mine *models.Reservation
}

// DeriveQueueStatus is a pure function of the reservation list and the
// acting user. It does no I/O.
func DeriveQueueStatus(reservations []models.Reservation, userID string) QueueStatus {
	var status QueueStatus

	if len(reservations) == 0 {
		return status
	}

	status.Latest = &reservations[0]

	for i := range reservations {
		r := &reservations[i]

		if r.Status == models.StatusCalling {
			if status.Calling == nil || r.ReceptionNumber > status.Calling.ReceptionNumber {
				status.Calling = r
			}
		}

		if status.Mine == nil && r.UserID == userID {
			status.Mine = r
		}
	}

	return status
}
