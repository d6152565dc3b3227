package handler

import (
	"database/sql"
	"fmt"
	"log"

	"backend-reservation/internal/config"
	"backend-reservation/internal/helper"
	"backend-reservation/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CallNextRequest struct {
	BranchID string `json:"branch_id" validate:"required,max=36"`
}

// CallNextReservation - Staff endpoint: finish the reservation currently
// being called (if any) and call the lowest accepted reception number.
func CallNextReservation(c *fiber.Ctx) error {
	var req CallNextRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if err := helper.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   helper.ValidationMessage(err),
		})
	}

	// The token may outlive a deactivation; check the account row
	if err := helper.CheckUserRole(c.Locals("user_id").(string), "admin", "staff"); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "Your account is not allowed to call reservations",
		})
	}

	// Staff may only operate their own branch
	staffBranchID, ok := c.Locals("branch_id").(string)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "Your account is not assigned to a branch",
		})
	}
	if staffBranchID != req.BranchID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "You do not have access to this branch",
		})
	}

	// STEP 1: Find the next accepted reservation today
	var nextID, companyID string
	var nextNumber int

	queryNext := `
		SELECT id, company_id, reception_number
		FROM reservations
		WHERE branch_id = ?
		AND status = 'accepted'
		AND DATE(created_at) = CURDATE()
		ORDER BY reception_number ASC
		LIMIT 1
	`

	err := config.DB.QueryRow(queryNext, req.BranchID).Scan(&nextID, &companyID, &nextNumber)

	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "No reservations waiting",
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch next reservation",
		})
	}

	// STEP 2: Complete the reservation currently being called, if any
	var currentID string
	err = config.DB.QueryRow(`
		SELECT id FROM reservations
		WHERE branch_id = ? AND status = 'calling'
		AND DATE(created_at) = CURDATE()
		LIMIT 1
	`, req.BranchID).Scan(&currentID)

	if err == nil {
		_, err = config.DB.Exec(`
			UPDATE reservations
			SET status = 'completed', updated_at = NOW()
			WHERE id = ?
		`, currentID)

		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to complete current reservation",
			})
		}
	}

	// STEP 3: Call the next one
	_, err = config.DB.Exec(`
		UPDATE reservations
		SET status = 'calling',
		    last_called_at = NOW(),
		    updated_at = NOW()
		WHERE id = ?
	`, nextID)

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to call reservation",
		})
	}

	BroadcastStatusUpdate(companyID, req.BranchID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Reservation called",
		"data": fiber.Map{
			"reservation_id":   nextID,
			"reception_number": nextNumber,
			"branch_id":        req.BranchID,
		},
	})
}

// UpdateReservationStatus - Staff endpoint for the remaining transitions.
func UpdateReservationStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var req models.UpdateReservationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if err := helper.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   helper.ValidationMessage(err),
		})
	}

	var currentStatus, companyID, branchID string
	err := config.DB.QueryRow(
		"SELECT status, company_id, branch_id FROM reservations WHERE id = ?",
		id,
	).Scan(&currentStatus, &companyID, &branchID)

	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Reservation not found",
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch reservation",
		})
	}

	if !models.ValidStatusTransition(currentStatus, req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("Cannot change status from %s to %s", currentStatus, req.Status),
		})
	}

	query := "UPDATE reservations SET status = ?, updated_at = NOW()"
	if req.Status == models.StatusCalling {
		query += ", last_called_at = NOW()"
	}
	query += " WHERE id = ?"

	_, err = config.DB.Exec(query, req.Status, id)
	if err != nil {
		log.Printf("[reservation] Error updating status: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to update reservation status",
		})
	}

	BroadcastStatusUpdate(companyID, branchID)

	return c.JSON(fiber.Map{
		"success": true,
	})
}
