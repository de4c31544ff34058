// Package sheets talks to the spreadsheet-backed web app that stores
// categories, activities and registered teams.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/teamreg/internal/app/models"
	"github.com/yigit/teamreg/internal/pkg/apperrors"
	"github.com/yigit/teamreg/internal/pkg/metrics"
)

// PlaceholderURL is the value shipped in sample configs before a script is deployed
const PlaceholderURL = "YOUR_GOOGLE_APPS_SCRIPT_WEB_APP_URL"

const (
	opLoad   = "load"
	opSubmit = "submit"

	actionAddTeam = "addTeam"
	statusSuccess = "success"

	maxBodyBytes = 10 << 20
)

// Snapshot is everything the endpoint returns on a read
type Snapshot struct {
	Categories []models.Category `json:"categories"`
	Activities []models.Activity `json:"activities"`
	Teams      []models.Team     `json:"teams"`
}

// submitRequest is the POST body understood by the script's doPost
type submitRequest struct {
	Action  string             `json:"action"`
	Payload models.TeamPayload `json:"payload"`
}

// submitResponse is the tagged result of doPost: status "success" with
// data, or any other status with an optional message.
type submitResponse struct {
	Status  string       `json:"status"`
	Data    *models.Team `json:"data,omitempty"`
	Message string       `json:"message,omitempty"`
}

// Client is a client for the spreadsheet web app
type Client struct {
	url        string
	httpClient *http.Client
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewClient creates a new spreadsheet client. A zero timeout waits forever.
func NewClient(url string, timeout time.Duration, m *metrics.Metrics, logger zerolog.Logger) *Client {
	return &Client{
		url: strings.TrimSpace(url),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: m,
		logger:  logger.With().Str("component", "sheets").Logger(),
	}
}

// Configured reports whether a real endpoint URL was provided
func (c *Client) Configured() bool {
	return c.url != "" && c.url != PlaceholderURL
}

// LoadAll fetches categories, activities and teams in one request.
// Missing keys in the response are returned as empty slices.
func (c *Client) LoadAll(ctx context.Context) (snap *Snapshot, err error) {
	if !c.Configured() {
		return nil, apperrors.ErrGatewayNotConfigured
	}

	started := time.Now()
	defer func() { c.metrics.ObserveGateway(opLoad, started, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, c.remoteErr(apperrors.ErrLoadFailed, "create request", 0, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.remoteErr(apperrors.ErrLoadFailed, "http request", 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.remoteErr(apperrors.ErrLoadFailed, "read response", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.remoteErr(apperrors.ErrLoadFailed, "load data", resp.StatusCode, nil)
	}

	var result Snapshot
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, c.remoteErr(apperrors.ErrLoadFailed, "unmarshal response", resp.StatusCode, err)
	}
	result.normalize()

	c.logger.Info().
		Int("categories", len(result.Categories)).
		Int("activities", len(result.Activities)).
		Int("teams", len(result.Teams)).
		Dur("took", time.Since(started)).
		Msg("Loaded registration data")

	return &result, nil
}

// SubmitTeam posts a new team and returns the team as stored by the endpoint.
// There is no retry and no idempotency key: calling it twice creates two teams.
func (c *Client) SubmitTeam(ctx context.Context, payload models.TeamPayload) (team *models.Team, err error) {
	if !c.Configured() {
		return nil, apperrors.ErrGatewayNotConfigured
	}

	started := time.Now()
	defer func() { c.metrics.ObserveGateway(opSubmit, started, err) }()

	jsonBody, err := json.Marshal(submitRequest{Action: actionAddTeam, Payload: payload})
	if err != nil {
		return nil, c.remoteErr(apperrors.ErrSubmitFailed, "marshal payload", 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, c.remoteErr(apperrors.ErrSubmitFailed, "create request", 0, err)
	}
	// Apps Script web apps reject the CORS preflight that application/json triggers
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.remoteErr(apperrors.ErrSubmitFailed, "http request", 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.remoteErr(apperrors.ErrSubmitFailed, "read response", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.remoteErr(apperrors.ErrSubmitFailed, "submit team", resp.StatusCode, nil)
	}

	var result submitResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, c.remoteErr(apperrors.ErrSubmitFailed, "unmarshal response", resp.StatusCode, err)
	}

	if result.Status != statusSuccess || result.Data == nil {
		c.logger.Warn().
			Str("status", result.Status).
			Str("message", result.Message).
			Msg("Endpoint rejected team submission")
		return nil, &apperrors.RemoteError{
			Kind:       apperrors.ErrSubmitFailed,
			Op:         "submit team",
			StatusCode: resp.StatusCode,
			Message:    result.Message,
		}
	}

	c.logger.Info().
		Str("teamID", result.Data.ID).
		Str("activityID", result.Data.ActivityID).
		Msg("Team submitted")

	return result.Data, nil
}

func (c *Client) remoteErr(kind error, op string, status int, cause error) error {
	c.logger.Error().
		Err(cause).
		Str("op", op).
		Int("status", status).
		Msg("Spreadsheet request failed")
	return &apperrors.RemoteError{
		Kind:       kind,
		Op:         op,
		StatusCode: status,
		Err:        cause,
	}
}

func (s *Snapshot) normalize() {
	if s.Categories == nil {
		s.Categories = []models.Category{}
	}
	if s.Activities == nil {
		s.Activities = []models.Activity{}
	}
	if s.Teams == nil {
		s.Teams = []models.Team{}
	}
}

// String is used in log lines
func (s *Snapshot) String() string {
	return fmt.Sprintf("%d categories, %d activities, %d teams", len(s.Categories), len(s.Activities), len(s.Teams))
}
