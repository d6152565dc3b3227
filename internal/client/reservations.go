package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"backend-reservation/internal/models"

	"go.uber.org/zap"
)

const (
	// A cached list is served without a network call for this long.
	listFreshFor = 5 * time.Minute
	// The cache collaborator retains entries this long after the last write.
	listRetainFor = 10 * time.Minute
)

// ListFetcher retrieves today's live reservations for a branch, deduplicated
// and ordered newest reception number first. Results are cached per
// (companyID, branchID) in the KV collaborator.
type ListFetcher struct {
	api    *Client
	kv     KVStore
	logger *zap.Logger
	now    func() time.Time
}

func NewListFetcher(api *Client, kv KVStore, logger *zap.Logger) *ListFetcher {
	return &ListFetcher{
		api:    api,
		kv:     kv,
		logger: logger,
		now:    time.Now,
	}
}

type cachedList struct {
	FetchedAt    time.Time            `json:"fetched_at"`
	Reservations []models.Reservation `json:"reservations"`
}

func listCacheKey(companyID, branchID string) string {
	return fmt.Sprintf("reservations:%s:%s", companyID, branchID)
}

// Fetch returns the live reservation list. An unauthenticated principal
// resolves to an empty, non-error result; the status poller owns the
// redirect policy.
func (f *ListFetcher) Fetch(ctx context.Context, companyID, branchID string) ([]models.Reservation, error) {
	user, err := f.api.Me(ctx)
	if errors.Is(err, ErrAuthRequired) {
		return []models.Reservation{}, nil
	}
	if err != nil {
		return nil, err
	}

	key := listCacheKey(companyID, branchID)

	if raw, err := f.kv.Get(ctx, key); err == nil {
		var cached cachedList
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			if f.now().Sub(cached.FetchedAt) < listFreshFor {
				// Retention is measured from last use, so a hit renews
				// the entry's lifetime.
				if err := f.kv.Set(ctx, key, raw, listRetainFor); err != nil {
					f.logger.Warn("Failed to renew reservation list cache",
						zap.String("key", key),
						zap.Error(err),
					)
				}
				f.logger.Debug("Reservation list served from cache",
					zap.String("key", key),
				)
				return cached.Reservations, nil
			}
		}
	}

	query := ReservationQuery{
		CompanyID:  companyID,
		BranchID:   branchID,
		UserID:     user.ID,
		TargetDate: f.now().Format("2006-01-02"),
		Statuses:   []string{models.StatusAccepted, models.StatusCalling},
	}

	reservations, err := f.api.Reservations(ctx, query)
	if err != nil {
		return nil, err
	}

	reservations = DedupByID(reservations)

	// The ordering is not something the server promises. Sort explicitly so
	// "latest" means highest reception number regardless of upstream order.
	sort.SliceStable(reservations, func(i, j int) bool {
		return reservations[i].ReceptionNumber > reservations[j].ReceptionNumber
	})

	entry, err := json.Marshal(cachedList{
		FetchedAt:    f.now(),
		Reservations: reservations,
	})
	if err == nil {
		if err := f.kv.Set(ctx, key, string(entry), listRetainFor); err != nil {
			f.logger.Warn("Failed to cache reservation list",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}

	return reservations, nil
}

// DedupByID drops repeated ids: the last occurrence wins, the first
// occurrence keeps its position. Idempotent.
func DedupByID(reservations []models.Reservation) []models.Reservation {
	if len(reservations) == 0 {
		return reservations
	}

	index := make(map[string]int, len(reservations))
	out := make([]models.Reservation, 0, len(reservations))

	for _, r := range reservations {
		if at, seen := index[r.ID]; seen {
			out[at] = r
			continue
		}
		index[r.ID] = len(out)
		out = append(out, r)
	}

	return out
}
