package handler

import (
	"database/sql"
	"strings"

	"backend-reservation/internal/config"
	"backend-reservation/internal/helper"
	"backend-reservation/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const branchColumns = `id, company_id, branch_name, address, phone, is_active,
	morning_start, morning_end, afternoon_start, afternoon_end, created_at, updated_at`

func scanBranch(row interface{ Scan(...interface{}) error }) (models.Branch, error) {
	var branch models.Branch
	err := row.Scan(
		&branch.ID,
		&branch.CompanyID,
		&branch.BranchName,
		&branch.Address,
		&branch.Phone,
		&branch.IsActive,
		&branch.BusinessHours.MorningStart,
		&branch.BusinessHours.MorningEnd,
		&branch.BusinessHours.AfternoonStart,
		&branch.BusinessHours.AfternoonEnd,
		&branch.CreatedAt,
		&branch.UpdatedAt,
	)
	return branch, err
}

// GetAllBranches - Optionally scoped to one company
func GetAllBranches(c *fiber.Ctx) error {
	companyID := c.Query("company_id")
	isActive := c.Query("is_active")

	query := "SELECT " + branchColumns + " FROM branches WHERE 1=1"
	args := []interface{}{}

	if companyID != "" {
		query += " AND company_id = ?"
		args = append(args, companyID)
	}

	if isActive != "" {
		query += " AND is_active = ?"
		args = append(args, isActive)
	}

	query += " ORDER BY branch_name ASC"

	rows, err := config.DB.Query(query, args...)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch branches",
		})
	}
	defer rows.Close()

	branches := []models.Branch{}
	for rows.Next() {
		branch, err := scanBranch(rows)
		if err != nil {
			continue
		}
		branches = append(branches, branch)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    branches,
	})
}

// GetBranchByID
func GetBranchByID(c *fiber.Ctx) error {
	id := c.Params("id")

	row := config.DB.QueryRow("SELECT "+branchColumns+" FROM branches WHERE id = ?", id)
	branch, err := scanBranch(row)

	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Branch not found",
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch branch",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    branch,
	})
}

// CreateBranch - Admin only
func CreateBranch(c *fiber.Ctx) error {
	var req models.CreateBranchRequest
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

	// Branch must belong to an existing company
	var companyActive string
	err := config.DB.QueryRow("SELECT is_active FROM companies WHERE id = ?", req.CompanyID).Scan(&companyActive)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Company not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to validate company",
		})
	}

	if req.IsActive == "" {
		req.IsActive = "y"
	}

	id := uuid.NewString()
	_, err = config.DB.Exec(`
		INSERT INTO branches
		(id, company_id, branch_name, address, phone, is_active,
		 morning_start, morning_end, afternoon_start, afternoon_end, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, id, req.CompanyID, req.BranchName, req.Address, req.Phone, req.IsActive,
		helper.NormalizeClock(req.MorningStart), helper.NormalizeClock(req.MorningEnd),
		helper.NormalizeClock(req.AfternoonStart), helper.NormalizeClock(req.AfternoonEnd))

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create branch",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"id": id},
	})
}

// UpdateBranch - Admin only, partial update
func UpdateBranch(c *fiber.Ctx) error {
	id := c.Params("id")

	var req models.UpdateBranchRequest
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

	setParts := []string{}
	args := []interface{}{}

	if req.BranchName != "" {
		setParts = append(setParts, "branch_name = ?")
		args = append(args, req.BranchName)
	}
	if req.Address != "" {
		setParts = append(setParts, "address = ?")
		args = append(args, req.Address)
	}
	if req.Phone != "" {
		setParts = append(setParts, "phone = ?")
		args = append(args, req.Phone)
	}
	if req.IsActive != "" {
		setParts = append(setParts, "is_active = ?")
		args = append(args, req.IsActive)
	}
	if req.MorningStart != "" {
		setParts = append(setParts, "morning_start = ?")
		args = append(args, helper.NormalizeClock(req.MorningStart))
	}
	if req.MorningEnd != "" {
		setParts = append(setParts, "morning_end = ?")
		args = append(args, helper.NormalizeClock(req.MorningEnd))
	}
	if req.AfternoonStart != "" {
		setParts = append(setParts, "afternoon_start = ?")
		args = append(args, helper.NormalizeClock(req.AfternoonStart))
	}
	if req.AfternoonEnd != "" {
		setParts = append(setParts, "afternoon_end = ?")
		args = append(args, helper.NormalizeClock(req.AfternoonEnd))
	}

	if len(setParts) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Nothing to update",
		})
	}

	setParts = append(setParts, "updated_at = NOW()")
	query := "UPDATE branches SET " + strings.Join(setParts, ", ") + " WHERE id = ?"
	args = append(args, id)

	result, err := config.DB.Exec(query, args...)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update branch",
		})
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Branch not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// DeleteBranch - Soft delete
func DeleteBranch(c *fiber.Ctx) error {
	id := c.Params("id")

	result, err := config.DB.Exec("UPDATE branches SET is_active = 'n', updated_at = NOW() WHERE id = ?", id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to deactivate branch",
		})
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Branch not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
