package client

import (
	"testing"

	"backend-reservation/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestStatusViewPlaceholders(t *testing.T) {
	view := ComposeView(SummaryState{}, QueueStatus{})

	assert.Equal(t, "---", view.CurrentNumber())
	assert.Equal(t, "---", view.LatestNumber())
	assert.Equal(t, "---", view.CallingNumber())
	assert.Equal(t, "---", view.MyNumber())
	assert.Equal(t, "---", view.WaitingCount())
	assert.Equal(t, "---", view.BusinessHoursLine())
}

func TestStatusViewRendersNumbers(t *testing.T) {
	current := 7
	latest := 12
	summary := SummaryState{
		Status: &models.WaitingStatusSummary{
			CurrentTime:           "10:30",
			CurrentNumber:         &current,
			LatestReceptionNumber: &latest,
			WaitingCount:          4,
			BusinessHours: models.BusinessHours{
				MorningStart:   "09:00:00",
				MorningEnd:     "12:00:00",
				AfternoonStart: "13:00:00",
				AfternoonEnd:   "17:00:00",
			},
		},
	}

	calling := res("b", "user-8", 7, models.StatusCalling)
	mine := res("m", "user-1", 12, models.StatusAccepted)
	view := ComposeView(summary, QueueStatus{Calling: &calling, Mine: &mine})

	assert.Equal(t, "7", view.CurrentNumber())
	assert.Equal(t, "12", view.LatestNumber())
	assert.Equal(t, "7", view.CallingNumber())
	assert.Equal(t, "12", view.MyNumber())
	assert.Equal(t, "4", view.WaitingCount())
	assert.Equal(t, "10:30", view.CurrentTime())
	assert.Equal(t, "09:00 - 12:00 / 13:00 - 17:00", view.BusinessHoursLine())
}

func TestBusinessHoursLineSingleWindow(t *testing.T) {
	summary := SummaryState{
		Status: &models.WaitingStatusSummary{
			BusinessHours: models.BusinessHours{
				AfternoonStart: "13:00:00",
				AfternoonEnd:   "17:00:00",
			},
		},
	}

	view := ComposeView(summary, QueueStatus{})
	assert.Equal(t, "13:00 - 17:00", view.BusinessHoursLine())
}

func TestCurrentNumberNullUntilFirstCall(t *testing.T) {
	latest := 3
	summary := SummaryState{
		Status: &models.WaitingStatusSummary{
			CurrentNumber:         nil,
			LatestReceptionNumber: &latest,
			WaitingCount:          3,
		},
	}

	view := ComposeView(summary, QueueStatus{})
	assert.Equal(t, "---", view.CurrentNumber())
	assert.Equal(t, "3", view.LatestNumber())
}
