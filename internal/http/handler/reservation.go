package handler

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"backend-reservation/internal/config"
	"backend-reservation/internal/helper"
	"backend-reservation/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const reservationColumns = `id, company_id, branch_id, user_id, reception_number,
	status, notes, last_called_at, created_at, updated_at`

func scanReservation(row interface{ Scan(...interface{}) error }) (models.Reservation, error) {
	var r models.Reservation
	err := row.Scan(
		&r.ID,
		&r.CompanyID,
		&r.BranchID,
		&r.UserID,
		&r.ReceptionNumber,
		&r.Status,
		&r.Notes,
		&r.LastCalledAt,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

// nextReceptionNumber - Per branch-day counter in Redis. The key expires at
// local midnight so numbers restart at 1 every business day.
func nextReceptionNumber(branchID string, now time.Time) (int, error) {
	day := now.Format("2006-01-02")
	key := fmt.Sprintf("reception:branch:%s:%s", branchID, day)

	number, err := config.Redis.Incr(config.Ctx, key).Result()
	if err != nil {
		return 0, err
	}

	if number == 1 {
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)
		config.Redis.ExpireAt(config.Ctx, key, midnight)
	}

	return int(number), nil
}

// CreateReservation - Walk-in style: the caller gets the next reception
// number for the branch today.
func CreateReservation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req models.CreateReservationRequest
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

	// store_id is the legacy alias for branch_id
	branchID := req.BranchID
	if branchID == "" {
		branchID = req.StoreID
	}
	if branchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "branch_id is required",
		})
	}

	// 1. Branch must exist and be active; company id comes from the branch row
	var branchActive, branchName, companyID string
	var hours models.BusinessHours
	err := config.DB.QueryRow(`
		SELECT is_active, branch_name, company_id,
		       morning_start, morning_end, afternoon_start, afternoon_end
		FROM branches WHERE id = ?
	`, branchID).Scan(
		&branchActive, &branchName, &companyID,
		&hours.MorningStart, &hours.MorningEnd, &hours.AfternoonStart, &hours.AfternoonEnd,
	)

	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Branch not found",
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to validate branch",
		})
	}

	if branchActive != "y" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("Branch %s is currently inactive", branchName),
		})
	}

	if req.CompanyID != "" && req.CompanyID != companyID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Branch does not belong to this company",
		})
	}

	now := time.Now().In(helper.AppLocation())

	// 2. Reservations are only accepted inside business hours
	if !helper.IsOpenAt(hours, now) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("Branch %s is outside business hours", branchName),
		})
	}

	// 3. One live reservation per user per branch per day
	var liveCount int
	err = config.DB.QueryRow(`
		SELECT COUNT(*)
		FROM reservations
		WHERE branch_id = ?
		AND user_id = ?
		AND status IN ('accepted', 'calling')
		AND DATE(created_at) = CURDATE()
	`, branchID, userID).Scan(&liveCount)

	if err != nil {
		log.Printf("[reservation] Error counting live reservations: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to check existing reservations",
		})
	}

	if liveCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "You already have a reservation waiting at this branch",
		})
	}

	// 4. Allocate the reception number
	receptionNumber, err := nextReceptionNumber(branchID, now)
	if err != nil {
		log.Printf("[reservation] Error allocating reception number: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to allocate reception number",
		})
	}

	// 5. Insert the reservation
	id := uuid.NewString()
	_, err = config.DB.Exec(`
		INSERT INTO reservations
		(id, company_id, branch_id, user_id, reception_number, status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 'accepted', ?, NOW(), NOW())
	`, id, companyID, branchID, userID, receptionNumber, req.Notes)

	if err != nil {
		log.Printf("[reservation] Error inserting reservation: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create reservation",
		})
	}

	// 6. Return the stored row
	row := config.DB.QueryRow("SELECT "+reservationColumns+" FROM reservations WHERE id = ?", id)
	reservation, err := scanReservation(row)
	if err != nil {
		log.Printf("[reservation] Error fetching reservation: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch reservation",
		})
	}

	BroadcastStatusUpdate(companyID, branchID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    reservation,
	})
}

// GetReservations - Filtered listing, newest reception number first.
// status accepts a comma-separated set, e.g. status=accepted,calling.
func GetReservations(c *fiber.Ctx) error {
	companyID := c.Query("company_id")
	branchID := c.Query("branch_id")
	userID := c.Query("user_id")
	targetDate := c.Query("target_date")
	status := c.Query("status")

	if targetDate == "" {
		targetDate = time.Now().In(helper.AppLocation()).Format("2006-01-02")
	}

	if _, err := time.Parse("2006-01-02", targetDate); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "target_date must be YYYY-MM-DD",
		})
	}

	query := "SELECT " + reservationColumns + " FROM reservations WHERE DATE(created_at) = ?"
	args := []interface{}{targetDate}

	if companyID != "" {
		query += " AND company_id = ?"
		args = append(args, companyID)
	}
	if branchID != "" {
		query += " AND branch_id = ?"
		args = append(args, branchID)
	}
	if userID != "" {
		query += " AND user_id = ?"
		args = append(args, userID)
	}

	if status != "" {
		statuses := strings.Split(status, ",")
		placeholders := make([]string, 0, len(statuses))
		for _, s := range statuses {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			placeholders = append(placeholders, "?")
			args = append(args, s)
		}
		if len(placeholders) > 0 {
			query += " AND status IN (" + strings.Join(placeholders, ", ") + ")"
		}
	}

	query += " ORDER BY reception_number DESC"

	rows, err := config.DB.Query(query, args...)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch reservations",
		})
	}
	defer rows.Close()

	reservations := []models.Reservation{}
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			continue
		}
		reservations = append(reservations, reservation)
	}

	return c.JSON(reservations)
}

// GetReservationByID - Owner or staff only
func GetReservationByID(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)

	row := config.DB.QueryRow("SELECT "+reservationColumns+" FROM reservations WHERE id = ?", id)
	reservation, err := scanReservation(row)

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

	if reservation.UserID != userID && role != "admin" && role != "staff" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "You do not have access to this reservation",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    reservation,
	})
}

// CancelReservation - Owner cancel; anything not already cancelled may be
// cancelled.
func CancelReservation(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Locals("user_id").(string)

	var ownerID, status, companyID, branchID string
	err := config.DB.QueryRow(
		"SELECT user_id, status, company_id, branch_id FROM reservations WHERE id = ?",
		id,
	).Scan(&ownerID, &status, &companyID, &branchID)

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

	if ownerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "You do not have access to this reservation",
		})
	}

	if !models.ValidStatusTransition(status, models.StatusCancelled) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("Reservation is already %s", status),
		})
	}

	_, err = config.DB.Exec(
		"UPDATE reservations SET status = 'cancelled', updated_at = NOW() WHERE id = ?",
		id,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to cancel reservation",
		})
	}

	BroadcastStatusUpdate(companyID, branchID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Reservation cancelled",
	})
}
