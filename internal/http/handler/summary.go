package handler

import (
	"database/sql"
	"time"

	"backend-reservation/internal/config"
	"backend-reservation/internal/helper"
	"backend-reservation/internal/models"

	"github.com/gofiber/fiber/v2"
)

// loadSummary - Daily snapshot for one branch. Returns sql.ErrNoRows when
// the branch does not exist under the company.
func loadSummary(companyID, branchID string) (models.WaitingStatusSummary, error) {
	var summary models.WaitingStatusSummary

	err := config.DB.QueryRow(`
		SELECT morning_start, morning_end, afternoon_start, afternoon_end
		FROM branches WHERE id = ? AND company_id = ?
	`, branchID, companyID).Scan(
		&summary.BusinessHours.MorningStart,
		&summary.BusinessHours.MorningEnd,
		&summary.BusinessHours.AfternoonStart,
		&summary.BusinessHours.AfternoonEnd,
	)
	if err != nil {
		return summary, err
	}

	// current_number: highest reception number with status calling today.
	// NULL when nobody has been called yet.
	var currentNumber sql.NullInt64
	err = config.DB.QueryRow(`
		SELECT MAX(reception_number)
		FROM reservations
		WHERE branch_id = ?
		AND status = 'calling'
		AND DATE(created_at) = CURDATE()
	`, branchID).Scan(&currentNumber)
	if err != nil {
		return summary, err
	}

	// latest_reception_number: highest number issued today, any status
	var latestNumber sql.NullInt64
	err = config.DB.QueryRow(`
		SELECT MAX(reception_number)
		FROM reservations
		WHERE branch_id = ?
		AND DATE(created_at) = CURDATE()
	`, branchID).Scan(&latestNumber)
	if err != nil {
		return summary, err
	}

	err = config.DB.QueryRow(`
		SELECT COUNT(*)
		FROM reservations
		WHERE branch_id = ?
		AND status = 'accepted'
		AND DATE(created_at) = CURDATE()
	`, branchID).Scan(&summary.WaitingCount)
	if err != nil {
		return summary, err
	}

	if currentNumber.Valid {
		n := int(currentNumber.Int64)
		summary.CurrentNumber = &n
	}
	if latestNumber.Valid {
		n := int(latestNumber.Int64)
		summary.LatestReceptionNumber = &n
	}

	summary.CurrentTime = time.Now().In(helper.AppLocation()).Format("15:04")
	return summary, nil
}

// GetWaitingStatusSummary - GET /reservations/:companyId/:branchId/summary
func GetWaitingStatusSummary(c *fiber.Ctx) error {
	companyID := c.Params("companyId")
	branchID := c.Params("branchId")

	var exists int
	err := config.DB.QueryRow("SELECT COUNT(*) FROM companies WHERE id = ?", companyID).Scan(&exists)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to validate company",
		})
	}
	if exists == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Company not found",
		})
	}

	summary, err := loadSummary(companyID, branchID)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Branch not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute waiting status",
		})
	}

	return c.JSON(summary)
}
