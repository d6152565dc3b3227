package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"backend-reservation/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// TokenSource supplies a fresh bearer token for every request. The token is
// never cached here; the identity provider owns its lifetime. Returns
// ErrAuthRequired when no principal is signed in.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client wraps the reservation REST API.
type Client struct {
	http   *resty.Client
	tokens TokenSource
	logger *zap.Logger
}

func New(baseURL string, tokens TokenSource, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		tokens: tokens,
		logger: logger,
	}
}

func (c *Client) authorized(ctx context.Context) (*resty.Request, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	return c.http.R().SetContext(ctx).SetAuthToken(token), nil
}

func fetchErr(resp *resty.Response, message string) error {
	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrAuthRequired
	}
	return &FetchError{
		StatusCode: resp.StatusCode(),
		Message:    message,
	}
}

func (c *Client) Companies(ctx context.Context) ([]models.Company, error) {
	var out struct {
		Data []models.Company `json:"data"`
	}
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get("/companies/")
	if err != nil {
		return nil, fmt.Errorf("failed to call companies endpoint: %w", err)
	}
	if resp.IsError() {
		return nil, fetchErr(resp, "Failed to fetch companies")
	}
	return out.Data, nil
}

func (c *Client) Branches(ctx context.Context, companyID string) ([]models.Branch, error) {
	var out struct {
		Data []models.Branch `json:"data"`
	}
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParam("company_id", companyID).
		SetResult(&out).
		Get("/branches/")
	if err != nil {
		return nil, fmt.Errorf("failed to call branches endpoint: %w", err)
	}
	if resp.IsError() {
		return nil, fetchErr(resp, "Failed to fetch branches")
	}
	return out.Data, nil
}

// Me resolves the acting principal.
func (c *Client) Me(ctx context.Context) (models.UserInfo, error) {
	var info models.UserInfo

	req, err := c.authorized(ctx)
	if err != nil {
		return info, err
	}

	resp, err := req.SetResult(&info).Get("/users/me")
	if err != nil {
		return info, fmt.Errorf("failed to call users/me: %w", err)
	}
	if resp.IsError() {
		return info, fetchErr(resp, "Failed to fetch user info")
	}
	return info, nil
}

// ReservationQuery - filters for the reservation listing.
type ReservationQuery struct {
	CompanyID  string
	BranchID   string
	UserID     string
	TargetDate string
	Statuses   []string
}

// values skips empty filters, matching what the API expects.
func (q ReservationQuery) values() url.Values {
	params := url.Values{}
	if q.CompanyID != "" {
		params.Set("company_id", q.CompanyID)
	}
	if q.BranchID != "" {
		params.Set("branch_id", q.BranchID)
	}
	if q.UserID != "" {
		params.Set("user_id", q.UserID)
	}
	if q.TargetDate != "" {
		params.Set("target_date", q.TargetDate)
	}
	if len(q.Statuses) > 0 {
		params.Set("status", strings.Join(q.Statuses, ","))
	}
	return params
}

func (c *Client) Reservations(ctx context.Context, query ReservationQuery) ([]models.Reservation, error) {
	req, err := c.authorized(ctx)
	if err != nil {
		return nil, err
	}

	var reservations []models.Reservation
	resp, err := req.
		SetQueryParamsFromValues(query.values()).
		SetResult(&reservations).
		Get("/reservations")
	if err != nil {
		return nil, fmt.Errorf("failed to call reservations endpoint: %w", err)
	}
	if resp.IsError() {
		return nil, fetchErr(resp, "Failed to fetch reservations")
	}

	c.logger.Debug("Fetched reservations",
		zap.String("company_id", query.CompanyID),
		zap.String("branch_id", query.BranchID),
		zap.Int("count", len(reservations)),
	)

	return reservations, nil
}

func (c *Client) Summary(ctx context.Context, companyID, branchID string) (*models.WaitingStatusSummary, error) {
	req, err := c.authorized(ctx)
	if err != nil {
		return nil, err
	}

	var summary models.WaitingStatusSummary
	resp, err := req.
		SetResult(&summary).
		Get(fmt.Sprintf("/reservations/%s/%s/summary", companyID, branchID))
	if err != nil {
		return nil, fmt.Errorf("failed to call summary endpoint: %w", err)
	}
	if resp.IsError() {
		return nil, fetchErr(resp, "Failed to fetch waiting status")
	}
	return &summary, nil
}

// CreateReservation takes the next reception number at a branch.
func (c *Client) CreateReservation(ctx context.Context, branchID string) (*models.Reservation, error) {
	req, err := c.authorized(ctx)
	if err != nil {
		return nil, err
	}

	var out struct {
		Data models.Reservation `json:"data"`
	}
	resp, err := req.
		SetBody(map[string]string{"branch_id": branchID}).
		SetResult(&out).
		Post("/reservations")
	if err != nil {
		return nil, fmt.Errorf("failed to call reservations endpoint: %w", err)
	}
	if resp.IsError() {
		return nil, fetchErr(resp, "Failed to create reservation")
	}
	return &out.Data, nil
}
