package models

import "time"

// BusinessHours - two daily windows, HH:MM (or HH:MM:SS from the DB).
type BusinessHours struct {
	MorningStart   string `json:"morning_start"`
	MorningEnd     string `json:"morning_end"`
	AfternoonStart string `json:"afternoon_start"`
	AfternoonEnd   string `json:"afternoon_end"`
}

type Branch struct {
	ID            string        `json:"id"`
	CompanyID     string        `json:"company_id"`
	BranchName    string        `json:"branch_name"`
	Address       string        `json:"address"`
	Phone         string        `json:"phone"`
	IsActive      string        `json:"is_active"`
	BusinessHours BusinessHours `json:"business_hours"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type CreateBranchRequest struct {
	CompanyID      string `json:"company_id" validate:"required,max=36"`
	BranchName     string `json:"branch_name" validate:"required,max=255"`
	Address        string `json:"address" validate:"omitempty,max=255"`
	Phone          string `json:"phone" validate:"omitempty,max=20"`
	IsActive       string `json:"is_active" validate:"omitempty,oneof=y n"`
	MorningStart   string `json:"morning_start" validate:"required"`
	MorningEnd     string `json:"morning_end" validate:"required"`
	AfternoonStart string `json:"afternoon_start" validate:"required"`
	AfternoonEnd   string `json:"afternoon_end" validate:"required"`
}

type UpdateBranchRequest struct {
	BranchName     string `json:"branch_name" validate:"omitempty,max=255"`
	Address        string `json:"address" validate:"omitempty,max=255"`
	Phone          string `json:"phone" validate:"omitempty,max=20"`
	IsActive       string `json:"is_active" validate:"omitempty,oneof=y n"`
	MorningStart   string `json:"morning_start" validate:"omitempty"`
	MorningEnd     string `json:"morning_end" validate:"omitempty"`
	AfternoonStart string `json:"afternoon_start" validate:"omitempty"`
	AfternoonEnd   string `json:"afternoon_end" validate:"omitempty"`
}
