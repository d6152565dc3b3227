package helper

import (
	"database/sql"
	"errors"

	"backend-reservation/internal/config"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserInactive = errors.New("user is deactivated")
	ErrInvalidRole  = errors.New("role not allowed")
)

func CheckUserRole(userID string, allowedRoles ...string) error {
	var role, isActive string

	query := "SELECT role, is_active FROM users WHERE id = ?"
	err := config.DB.QueryRow(query, userID).Scan(&role, &isActive)

	if err == sql.ErrNoRows {
		return ErrUserNotFound
	}

	if err != nil {
		return err
	}

	if isActive != "y" {
		return ErrUserInactive
	}

	for _, allowedRole := range allowedRoles {
		if role == allowedRole {
			return nil
		}
	}

	return ErrInvalidRole
}

func IsAdmin(userID string) bool {
	return CheckUserRole(userID, "admin") == nil
}

func IsStaff(userID string) bool {
	return CheckUserRole(userID, "admin", "staff") == nil
}
