package models

import (
	"database/sql"
	"time"
)

/*
|--------------------------------------------------------------------------
| DATABASE MODEL (INTERNAL)
|--------------------------------------------------------------------------
| Used for DB queries only.
*/
type User struct {
	ID        string
	Username  string
	Email     string
	Password  string
	Role      string
	IsActive  string
	CompanyID sql.NullString
	BranchID  sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

/*
|--------------------------------------------------------------------------
| REQUEST
|--------------------------------------------------------------------------
*/
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"required,oneof=admin staff customer"`
	CompanyID string `json:"company_id" validate:"omitempty,max=36"`
	BranchID  string `json:"branch_id" validate:"omitempty,max=36"`
}

type UpdateUserRequest struct {
	Username  string `json:"username" validate:"omitempty,max=255"`
	Email     string `json:"email" validate:"omitempty,email,max=255"`
	Password  string `json:"password" validate:"omitempty,min=8"`
	Role      string `json:"role" validate:"omitempty,oneof=admin staff customer"`
	IsActive  string `json:"is_active" validate:"omitempty,oneof=y n"`
	CompanyID string `json:"company_id" validate:"omitempty,max=36"`
	BranchID  string `json:"branch_id" validate:"omitempty,max=36"`
}

/*
|--------------------------------------------------------------------------
| RESPONSE DTO
|--------------------------------------------------------------------------
| Returned by /users/me and the admin endpoints.
*/
type UserInfo struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	IsActive  string  `json:"is_active"`
	CompanyID *string `json:"company_id,omitempty"`
	BranchID  *string `json:"branch_id,omitempty"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

/*
|--------------------------------------------------------------------------
| MAPPER
|--------------------------------------------------------------------------
| Convert User (DB) -> UserInfo (API)
*/
func ToUserInfo(u User) UserInfo {
	var companyID, branchID *string

	if u.CompanyID.Valid {
		companyID = &u.CompanyID.String
	}
	if u.BranchID.Valid {
		branchID = &u.BranchID.String
	}

	return UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CompanyID: companyID,
		BranchID:  branchID,
	}
}
