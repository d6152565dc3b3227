package models

import (
	"time"
)

const (
	StatusAccepted  = "accepted"
	StatusCalling   = "calling"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

/*
|--------------------------------------------------------------------------
| DATABASE MODEL (INTERNAL)
|--------------------------------------------------------------------------
| Reception numbers restart at 1 per branch per day.
*/
type Reservation struct {
	ID              string     `json:"id"`
	CompanyID       string     `json:"company_id"`
	BranchID        string     `json:"branch_id"`
	UserID          string     `json:"user_id"`
	ReceptionNumber int        `json:"reception_number"`
	Status          string     `json:"status"` // accepted, calling, completed, cancelled
	Notes           *string    `json:"notes,omitempty"`
	LastCalledAt    *time.Time `json:"last_called_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

/*
|--------------------------------------------------------------------------
| REQUEST
|--------------------------------------------------------------------------
*/
type CreateReservationRequest struct {
	CompanyID string `json:"company_id" validate:"omitempty,max=36"`
	BranchID  string `json:"branch_id" validate:"omitempty,max=36"`
	// Older clients send store_id instead of branch_id.
	StoreID string  `json:"store_id" validate:"omitempty,max=36"`
	Notes   *string `json:"notes" validate:"omitempty,max=500"`
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted calling completed cancelled"`
}

/*
|--------------------------------------------------------------------------
| SUMMARY DTO
|--------------------------------------------------------------------------
| Server-computed daily snapshot for one branch. current_number is null
| until the branch calls its first reservation of the day.
*/
type WaitingStatusSummary struct {
	CurrentTime           string        `json:"current_time"`
	BusinessHours         BusinessHours `json:"business_hours"`
	CurrentNumber         *int          `json:"current_number"`
	LatestReceptionNumber *int          `json:"latest_reception_number"`
	WaitingCount          int           `json:"waiting_count"`
}

/*
|--------------------------------------------------------------------------
| STATUS TRANSITIONS
|--------------------------------------------------------------------------
| accepted -> calling -> completed; cancel is allowed from any state
| except cancelled itself.
*/
var statusTransitions = map[string][]string{
	StatusAccepted:  {StatusCalling, StatusCancelled},
	StatusCalling:   {StatusCompleted, StatusCancelled},
	StatusCompleted: {StatusCancelled},
}

func ValidStatusTransition(from, to string) bool {
	allowed, ok := statusTransitions[from]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == to {
			return true
		}
	}
	return false
}
