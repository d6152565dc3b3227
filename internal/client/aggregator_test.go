package client

import (
	"testing"

	"backend-reservation/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func res(id, userID string, number int, status string) models.Reservation {
	return models.Reservation{
		ID:              id,
		CompanyID:       "comp-1",
		BranchID:        "branch-1",
		UserID:          userID,
		ReceptionNumber: number,
		Status:          status,
	}
}

func TestDeriveQueueStatusEmptyList(t *testing.T) {
	status := DeriveQueueStatus(nil, "user-1")

	assert.Nil(t, status.Latest)
	assert.Nil(t, status.Calling)
	assert.Nil(t, status.Mine)
}

func TestDeriveQueueStatusLatestIsFirstElement(t *testing.T) {
	list := []models.Reservation{
		res("a", "user-9", 12, models.StatusAccepted),
		res("b", "user-1", 11, models.StatusAccepted),
	}

	status := DeriveQueueStatus(list, "user-1")

	require.NotNil(t, status.Latest)
	assert.Equal(t, "a", status.Latest.ID)
}

func TestDeriveQueueStatusCallingIsHighestNumber(t *testing.T) {
	list := []models.Reservation{
		res("a", "user-9", 12, models.StatusAccepted),
		res("b", "user-8", 7, models.StatusCalling),
		res("c", "user-7", 5, models.StatusCalling),
	}

	status := DeriveQueueStatus(list, "user-0")

	require.NotNil(t, status.Calling)
	assert.Equal(t, 7, status.Calling.ReceptionNumber)
	assert.Equal(t, "b", status.Calling.ID)
}

func TestDeriveQueueStatusMine(t *testing.T) {
	list := []models.Reservation{
		res("a", "user-9", 12, models.StatusAccepted),
		res("b", "user-1", 11, models.StatusAccepted),
	}

	status := DeriveQueueStatus(list, "user-1")

	require.NotNil(t, status.Mine)
	assert.Equal(t, "b", status.Mine.ID)

	none := DeriveQueueStatus(list, "user-0")
	assert.Nil(t, none.Mine)
}

func TestDeriveQueueStatusAfterDedup(t *testing.T) {
	// The same reservation appears twice; the later occurrence carries the
	// newer status and must win, while its original position is kept.
	list := []models.Reservation{
		res("a", "user-1", 9, models.StatusAccepted),
		res("b", "user-8", 7, models.StatusCalling),
		res("a", "user-1", 9, models.StatusCalling),
	}

	deduped := DedupByID(list)
	require.Len(t, deduped, 2)
	assert.Equal(t, "a", deduped[0].ID)
	assert.Equal(t, models.StatusCalling, deduped[0].Status)

	status := DeriveQueueStatus(deduped, "user-1")

	require.NotNil(t, status.Calling)
	assert.Equal(t, 9, status.Calling.ReceptionNumber)
	require.NotNil(t, status.Mine)
	assert.Equal(t, "a", status.Mine.ID)
}

func TestDedupByIDIdempotent(t *testing.T) {
	list := []models.Reservation{
		res("a", "user-1", 3, models.StatusAccepted),
		res("b", "user-2", 2, models.StatusAccepted),
		res("a", "user-1", 3, models.StatusCalling),
	}

	once := DedupByID(list)
	twice := DedupByID(once)

	assert.Equal(t, once, twice)
}
