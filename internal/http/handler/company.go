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

// GetAllCompanies - Tenant roots, public listing
func GetAllCompanies(c *fiber.Ctx) error {
	isActive := c.Query("is_active")

	query := `SELECT id, company_name, address, phone_number, email, website, is_active, created_at, updated_at
	          FROM companies WHERE 1=1`
	args := []interface{}{}

	if isActive != "" {
		query += " AND is_active = ?"
		args = append(args, isActive)
	}

	query += " ORDER BY company_name ASC"

	rows, err := config.DB.Query(query, args...)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch companies",
		})
	}
	defer rows.Close()

	companies := []models.Company{}
	for rows.Next() {
		var company models.Company
		err := rows.Scan(
			&company.ID,
			&company.CompanyName,
			&company.Address,
			&company.PhoneNumber,
			&company.Email,
			&company.Website,
			&company.IsActive,
			&company.CreatedAt,
			&company.UpdatedAt,
		)
		if err != nil {
			continue
		}
		companies = append(companies, company)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    companies,
	})
}

// GetAllCompaniesPagination - Listing with search + pagination
func GetAllCompaniesPagination(c *fiber.Ctx) error {
	isActive := c.Query("is_active")
	search := c.Query("search")
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	offset := (page - 1) * limit

	countQuery := "SELECT COUNT(*) FROM companies WHERE 1=1"
	countArgs := []interface{}{}

	if isActive != "" {
		countQuery += " AND is_active = ?"
		countArgs = append(countArgs, isActive)
	}

	if search != "" {
		search = "%" + strings.TrimSpace(search) + "%"
		countQuery += " AND (company_name LIKE ? OR email LIKE ?)"
		countArgs = append(countArgs, search, search)
	}

	var totalData int
	err := config.DB.QueryRow(countQuery, countArgs...).Scan(&totalData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count companies",
		})
	}

	query := `SELECT id, company_name, address, phone_number, email, website, is_active, created_at, updated_at
	          FROM companies WHERE 1=1`
	args := []interface{}{}

	if isActive != "" {
		query += " AND is_active = ?"
		args = append(args, isActive)
	}

	if search != "" {
		query += " AND (company_name LIKE ? OR email LIKE ?)"
		args = append(args, search, search)
	}

	query += " ORDER BY company_name ASC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := config.DB.Query(query, args...)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch companies",
		})
	}
	defer rows.Close()

	companies := []models.Company{}
	for rows.Next() {
		var company models.Company
		err := rows.Scan(
			&company.ID,
			&company.CompanyName,
			&company.Address,
			&company.PhoneNumber,
			&company.Email,
			&company.Website,
			&company.IsActive,
			&company.CreatedAt,
			&company.UpdatedAt,
		)
		if err != nil {
			continue
		}
		companies = append(companies, company)
	}

	totalPages := (totalData + limit - 1) / limit

	return c.JSON(fiber.Map{
		"success": true,
		"data":    companies,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total_data":  totalData,
			"total_pages": totalPages,
		},
	})
}

// GetCompanyByID
func GetCompanyByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var company models.Company
	query := `SELECT id, company_name, address, phone_number, email, website, is_active, created_at, updated_at
	          FROM companies WHERE id = ?`
	err := config.DB.QueryRow(query, id).Scan(
		&company.ID,
		&company.CompanyName,
		&company.Address,
		&company.PhoneNumber,
		&company.Email,
		&company.Website,
		&company.IsActive,
		&company.CreatedAt,
		&company.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Company not found",
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch company",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    company,
	})
}

// CreateCompany - Admin only
func CreateCompany(c *fiber.Ctx) error {
	var req models.CreateCompanyRequest
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

	if req.IsActive == "" {
		req.IsActive = "y"
	}

	id := uuid.NewString()
	_, err := config.DB.Exec(`
		INSERT INTO companies (id, company_name, address, phone_number, email, website, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, id, req.CompanyName, req.Address, req.PhoneNumber, req.Email, req.Website, req.IsActive)

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create company",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"id": id},
	})
}

// UpdateCompany - Admin only, partial update
func UpdateCompany(c *fiber.Ctx) error {
	id := c.Params("id")

	var req models.UpdateCompanyRequest
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

	if req.CompanyName != "" {
		setParts = append(setParts, "company_name = ?")
		args = append(args, req.CompanyName)
	}
	if req.Address != "" {
		setParts = append(setParts, "address = ?")
		args = append(args, req.Address)
	}
	if req.PhoneNumber != "" {
		setParts = append(setParts, "phone_number = ?")
		args = append(args, req.PhoneNumber)
	}
	if req.Email != "" {
		setParts = append(setParts, "email = ?")
		args = append(args, req.Email)
	}
	if req.Website != "" {
		setParts = append(setParts, "website = ?")
		args = append(args, req.Website)
	}
	if req.IsActive != "" {
		setParts = append(setParts, "is_active = ?")
		args = append(args, req.IsActive)
	}

	if len(setParts) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Nothing to update",
		})
	}

	setParts = append(setParts, "updated_at = NOW()")
	query := "UPDATE companies SET " + strings.Join(setParts, ", ") + " WHERE id = ?"
	args = append(args, id)

	result, err := config.DB.Exec(query, args...)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update company",
		})
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Company not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// DeleteCompany - Soft delete; branches keep their history.
func DeleteCompany(c *fiber.Ctx) error {
	id := c.Params("id")

	result, err := config.DB.Exec("UPDATE companies SET is_active = 'n', updated_at = NOW() WHERE id = ?", id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to deactivate company",
		})
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Company not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
