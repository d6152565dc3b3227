package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backend-reservation/internal/client"
	"backend-reservation/internal/config"
	"backend-reservation/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// statusboard is a terminal waiting-status display for one branch. It signs
// in once, polls the summary endpoint, refreshes today's reservation list,
// and renders the composed view on every change of cadence.
func main() {
	config.LoadEnv()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	baseURL := config.GetEnv("API_BASE_URL", "http://localhost:3000")
	companyID := os.Getenv("COMPANY_ID")
	branchID := os.Getenv("BRANCH_ID")
	if companyID == "" || branchID == "" {
		logger.Fatal("COMPANY_ID and BRANCH_ID are required")
	}

	tokens, err := buildTokenSource(baseURL)
	if err != nil {
		logger.Fatal("Sign in failed", zap.Error(err))
	}

	config.InitRedis()

	api := client.New(baseURL, tokens, logger)
	kv := client.NewRedisKVStore(config.Redis)
	lists := client.NewListFetcher(api, kv, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	status := client.NewStatusFetcher(api, companyID, branchID, logger)
	status.OnAuthRequired = func() {
		logger.Warn("Session expired, shutting down")
		stop()
	}
	go status.Run(ctx)

	userID := resolveUserID(ctx, api, logger)

	ticker := time.NewTicker(client.DefaultPollInterval)
	defer ticker.Stop()

	render(ctx, status, lists, companyID, branchID, userID, logger)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Status board stopped")
			return
		case <-ticker.C:
			render(ctx, status, lists, companyID, branchID, userID, logger)
		}
	}
}

func resolveUserID(ctx context.Context, api *client.Client, logger *zap.Logger) string {
	user, err := api.Me(ctx)
	if err != nil {
		logger.Warn("Could not resolve user, personal number will be blank", zap.Error(err))
		return ""
	}
	return user.ID
}

func render(ctx context.Context, status *client.StatusFetcher, lists *client.ListFetcher, companyID, branchID, userID string, logger *zap.Logger) {
	reservations, err := lists.Fetch(ctx, companyID, branchID)
	if err != nil {
		logger.Warn("Reservation list unavailable", zap.Error(err))
	}

	view := client.ComposeView(status.State(), client.DeriveQueueStatus(reservations, userID))

	fmt.Println("==============================")
	fmt.Printf(" Time           : %s\n", view.CurrentTime())
	fmt.Printf(" Hours          : %s\n", view.BusinessHoursLine())
	fmt.Printf(" Now serving    : %s\n", view.CurrentNumber())
	fmt.Printf(" Being called   : %s\n", view.CallingNumber())
	fmt.Printf(" Latest number  : %s\n", view.LatestNumber())
	fmt.Printf(" Your number    : %s\n", view.MyNumber())
	fmt.Printf(" Waiting        : %s\n", view.WaitingCount())
	if msg := view.Summary.Err; msg != "" {
		fmt.Printf(" ! %s\n", msg)
	}
	fmt.Println("==============================")
}

// buildTokenSource prefers a pre-issued API_TOKEN; otherwise it signs in
// with API_EMAIL and API_PASSWORD.
func buildTokenSource(baseURL string) (client.TokenSource, error) {
	if token := os.Getenv("API_TOKEN"); token != "" {
		return staticToken(token), nil
	}

	email := os.Getenv("API_EMAIL")
	password := os.Getenv("API_PASSWORD")
	if email == "" || password == "" {
		return nil, fmt.Errorf("set API_TOKEN or API_EMAIL and API_PASSWORD")
	}

	var out models.LoginResponse
	resp, err := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		R().
		SetBody(models.LoginRequest{Email: email, Password: password}).
		SetResult(&out).
		Post("/auth/login")
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("login rejected with status %d", resp.StatusCode())
	}

	return staticToken(out.Token), nil
}

type staticToken string

func (s staticToken) Token(_ context.Context) (string, error) {
	return string(s), nil
}
