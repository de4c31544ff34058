package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/teamreg/internal/app/models"
	"github.com/yigit/teamreg/internal/pkg/sheets"
)

// ScriptStub answers like the deployed spreadsheet web app: a GET returns
// every sheet, a POST with action "addTeam" appends a team and echoes it.
// Teams live in memory only.
type ScriptStub struct {
	mu   sync.Mutex
	data *sheets.Snapshot

	// reject, when set, makes every addTeam fail with this message
	reject string
	logger zerolog.Logger
}

type scriptRequest struct {
	Action  string             `json:"action"`
	Payload models.TeamPayload `json:"payload"`
}

// NewScriptStub creates a stub serving data
func NewScriptStub(data *sheets.Snapshot, logger zerolog.Logger) *ScriptStub {
	return &ScriptStub{data: data, logger: logger}
}

// RejectSubmissions makes the stub refuse new teams with message; an empty
// message accepts them again.
func (s *ScriptStub) RejectSubmissions(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reject = message
}

// Register mounts the stub on path
func (s *ScriptStub) Register(router gin.IRoutes, path string) {
	router.GET(path, s.handleGet)
	router.POST(path, s.handlePost)
}

func (s *ScriptStub) handleGet(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.data)
}

// handlePost reads the raw body since the client sends JSON as text/plain.
// Script errors are reported in the body with status 200, like Apps Script.
func (s *ScriptStub) handlePost(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": "cannot read body"})
		return
	}

	var req scriptRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": "invalid JSON"})
		return
	}
	if req.Action != "addTeam" {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": fmt.Sprintf("unknown action %q", req.Action)})
		return
	}

	team, err := s.addTeam(req.Payload)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": team})
}

func (s *ScriptStub) addTeam(p models.TeamPayload) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reject != "" {
		return nil, errors.New(s.reject)
	}

	n := len(s.data.Teams) + 1
	team := models.Team{
		ID:         fmt.Sprintf("T%03d", n),
		ActivityID: p.ActivityID,
		TeamName:   p.TeamName,
		School:     p.School,
		Level:      p.Level,
		Contact:    p.Contact,
		Teachers:   p.Teachers,
		Students:   p.Students,
		Status:     models.TeamStatusPending,
		Order:      n,
	}
	s.data.Teams = append(s.data.Teams, team)

	s.logger.Info().Str("teamID", team.ID).Str("activityID", team.ActivityID).Msg("Team appended")
	return &team, nil
}
