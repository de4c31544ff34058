package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yigit/teamreg/internal/app/models"
	"github.com/yigit/teamreg/internal/pkg/apperrors"
	"github.com/yigit/teamreg/internal/pkg/sheets"
)

// TeamGateway is the remote store of categories, activities and teams
type TeamGateway interface {
	LoadAll(ctx context.Context) (*sheets.Snapshot, error)
	SubmitTeam(ctx context.Context, payload models.TeamPayload) (*models.Team, error)
}

// CatalogService defines the interface for the loaded registration data
type CatalogService interface {
	Load(ctx context.Context) error
	LoadErr() error
	Categories() ([]models.Category, error)
	Activities() ([]models.Activity, error)
	GetActivityByID(id string) (*models.Activity, error)
	FilterActivities(categoryID, activityID string) ([]models.Activity, error)
	Teams() ([]models.Team, error)
	TeamRows() ([]TeamRow, error)
	AppendTeam(team models.Team)
	Report() ([]ReportRow, error)
}

// catalogServiceImpl implements the CatalogService interface
type catalogServiceImpl struct {
	gateway TeamGateway
	logger  zerolog.Logger

	once    sync.Once
	mu      sync.RWMutex
	loadErr error
	loaded  bool

	categories []models.Category
	activities []models.Activity
	teams      []models.Team
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(gateway TeamGateway, logger zerolog.Logger) CatalogService {
	return &catalogServiceImpl{
		gateway: gateway,
		logger:  logger,
	}
}

// Load fetches everything from the gateway. Only the first call reaches the
// gateway; later calls return the first outcome. There is no retry.
func (s *catalogServiceImpl) Load(ctx context.Context) error {
	s.once.Do(func() {
		snap, err := s.gateway.LoadAll(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.loadErr = fmt.Errorf("load catalog: %w", err)
			s.logger.Error().Err(err).Msg("Initial data load failed")
			return
		}
		s.categories = snap.Categories
		s.activities = snap.Activities
		s.teams = snap.Teams
		s.loaded = true
		s.logger.Info().Str("snapshot", snap.String()).Msg("Catalog loaded")
	})
	return s.LoadErr()
}

// LoadErr returns the load failure, or ErrDataUnavailable until Load finishes
func (s *catalogServiceImpl) LoadErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readyLocked()
}

func (s *catalogServiceImpl) readyLocked() error {
	if s.loadErr != nil {
		return s.loadErr
	}
	if !s.loaded {
		return apperrors.ErrDataUnavailable
	}
	return nil
}

func (s *catalogServiceImpl) Categories() ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readyLocked(); err != nil {
		return nil, err
	}
	return append([]models.Category(nil), s.categories...), nil
}

func (s *catalogServiceImpl) Activities() ([]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readyLocked(); err != nil {
		return nil, err
	}
	return append([]models.Activity(nil), s.activities...), nil
}

// GetActivityByID returns a copy of the activity with the given ID
func (s *catalogServiceImpl) GetActivityByID(id string) (*models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readyLocked(); err != nil {
		return nil, err
	}
	a := models.FindActivity(s.activities, id)
	if a == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrActivityNotFound, id)
	}
	activity := *a
	return &activity, nil
}

func (s *catalogServiceImpl) FilterActivities(categoryID, activityID string) ([]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readyLocked(); err != nil {
		return nil, err
	}
	return FilterActivities(categoryID, activityID, s.activities), nil
}

func (s *catalogServiceImpl) Teams() ([]models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readyLocked(); err != nil {
		return nil, err
	}
	return append([]models.Team(nil), s.teams...), nil
}

func (s *catalogServiceImpl) TeamRows() ([]TeamRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readyLocked(); err != nil {
		return nil, err
	}
	return TeamRows(s.teams, s.activities), nil
}

// AppendTeam adds a team exactly as the endpoint returned it
func (s *catalogServiceImpl) AppendTeam(team models.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams = append(s.teams, team)
}

func (s *catalogServiceImpl) Report() ([]ReportRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readyLocked(); err != nil {
		return nil, err
	}
	return ReportRows(SummarizeByActivity(s.teams, s.activities), s.activities), nil
}
