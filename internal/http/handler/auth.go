package handler

import (
	"database/sql"

	"backend-reservation/internal/config"
	"backend-reservation/internal/helper"
	"backend-reservation/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := helper.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": helper.ValidationMessage(err),
		})
	}

	var user models.User
	query := `SELECT id, username, email, password, role, is_active, company_id, branch_id
	          FROM users WHERE email = ?`
	err := config.DB.QueryRow(query, req.Email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.IsActive,
		&user.CompanyID,
		&user.BranchID,
	)

	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Wrong email or password",
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if user.IsActive != "y" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Your account has been deactivated",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Wrong email or password",
		})
	}

	var companyID, branchID *string
	if user.CompanyID.Valid {
		companyID = &user.CompanyID.String
	}
	if user.BranchID.Valid {
		branchID = &user.BranchID.String
	}

	token, err := config.GenerateToken(user.ID, user.Username, user.Email, user.Role, companyID, branchID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(models.LoginResponse{
		Token: token,
		User:  models.ToUserInfo(user),
	})
}
