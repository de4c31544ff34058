package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/teamreg/internal/app/models"
	"github.com/yigit/teamreg/internal/pkg/apperrors"
)

func newTestClient(url string) *Client {
	return NewClient(url, 5*time.Second, nil, zerolog.Nop())
}

func samplePayload() models.TeamPayload {
	return models.TeamPayload{
		ActivityID: "act-1",
		TeamName:   "Quick Minds",
		School:     "Wittayanusorn",
		Level:      "L1",
		Contact:    models.Contact{Name: "Somchai", Phone: "0812345678", Email: "somchai@example.com"},
		Teachers:   []models.TeamMember{{FullName: "Somsri", Detail: "somsri@example.com"}},
		Students:   []models.TeamMember{{FullName: "Piti", Detail: "P.6/1"}},
	}
}

func TestLoadAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = io.WriteString(w, `{
			"categories": [{"id": "cat-1", "name": "A"}],
			"activities": [{"id": "act-1", "categoryId": "cat-1", "name": "Math", "levels": ["L1"], "mode": "Onsite", "teamComposition": {"teachers": 1, "students": 1}}],
			"teams": []
		}`)
	}))
	defer srv.Close()

	snap, err := newTestClient(srv.URL).LoadAll(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Categories, 1)
	require.Len(t, snap.Activities, 1)
	assert.Equal(t, models.ModeOnsite, snap.Activities[0].Mode)
	assert.Equal(t, 1, snap.Activities[0].TeamComposition.Students)
	assert.Empty(t, snap.Teams)
}

func TestLoadAll_MissingKeysAreEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"activities": []}`)
	}))
	defer srv.Close()

	snap, err := newTestClient(srv.URL).LoadAll(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, snap.Categories)
	assert.NotNil(t, snap.Activities)
	assert.NotNil(t, snap.Teams)
	assert.Empty(t, snap.Categories)
}

func TestLoadAll_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, `{}`, apperrors.ErrLoadFailed},
		{"not found", http.StatusNotFound, ``, apperrors.ErrLoadFailed},
		{"bad json", http.StatusOK, `<html>login</html>`, apperrors.ErrLoadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			snap, err := newTestClient(srv.URL).LoadAll(context.Background())
			assert.Nil(t, snap)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadAll_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).LoadAll(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrLoadFailed)
}

func TestNotConfigured(t *testing.T) {
	for _, url := range []string{"", "  ", PlaceholderURL} {
		c := newTestClient(url)
		assert.False(t, c.Configured())

		_, err := c.LoadAll(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrGatewayNotConfigured)

		_, err = c.SubmitTeam(context.Background(), samplePayload())
		assert.ErrorIs(t, err, apperrors.ErrGatewayNotConfigured)
	}
}

func TestSubmitTeam(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "text/plain")

		var req submitRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "addTeam", req.Action)
		assert.Equal(t, "act-1", req.Payload.ActivityID)
		assert.Len(t, req.Payload.Teachers, 1)
		assert.Len(t, req.Payload.Students, 1)

		team := models.Team{
			ID:         "T004",
			ActivityID: req.Payload.ActivityID,
			TeamName:   req.Payload.TeamName,
			Teachers:   req.Payload.Teachers,
			Students:   req.Payload.Students,
			Status:     models.TeamStatusPending,
			Order:      4,
		}
		_ = json.NewEncoder(w).Encode(submitResponse{Status: "success", Data: &team})
	}))
	defer srv.Close()

	team, err := newTestClient(srv.URL).SubmitTeam(context.Background(), samplePayload())
	require.NoError(t, err)

	assert.Equal(t, "T004", team.ID)
	assert.Equal(t, models.TeamStatusPending, team.Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSubmitTeam_Failures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{"error tag with message", http.StatusOK, `{"status": "error", "message": "sheet is locked"}`, "sheet is locked"},
		{"error tag without message", http.StatusOK, `{"status": "error"}`, ""},
		{"success without data", http.StatusOK, `{"status": "success"}`, ""},
		{"transport status", http.StatusBadGateway, `{"status": "success", "data": {"id": "T1"}}`, ""},
		{"not json", http.StatusOK, `oops`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			team, err := newTestClient(srv.URL).SubmitTeam(context.Background(), samplePayload())
			assert.Nil(t, team)
			require.ErrorIs(t, err, apperrors.ErrSubmitFailed)

			var remote *apperrors.RemoteError
			require.True(t, errors.As(err, &remote))
			assert.Equal(t, tt.wantMessage, remote.Message)
		})
	}
}
