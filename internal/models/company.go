package models

import "time"

type Company struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	Website     string    `json:"website"`
	IsActive    string    `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateCompanyRequest struct {
	CompanyName string `json:"company_name" validate:"required,max=255"`
	Address     string `json:"address" validate:"omitempty,max=255"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
	Email       string `json:"email" validate:"omitempty,email,max=255"`
	Website     string `json:"website" validate:"omitempty,url,max=255"`
	IsActive    string `json:"is_active" validate:"omitempty,oneof=y n"`
}

type UpdateCompanyRequest struct {
	CompanyName string `json:"company_name" validate:"omitempty,max=255"`
	Address     string `json:"address" validate:"omitempty,max=255"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
	Email       string `json:"email" validate:"omitempty,email,max=255"`
	Website     string `json:"website" validate:"omitempty,url,max=255"`
	IsActive    string `json:"is_active" validate:"omitempty,oneof=y n"`
}
