package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/yigit/teamreg/internal/app/models"
	"github.com/yigit/teamreg/internal/pkg/apperrors"
	"github.com/yigit/teamreg/internal/pkg/metrics"
)

// SubmitFailedMessage is shown when a registration could not be sent
const SubmitFailedMessage = "เกิดข้อผิดพลาดในการส่งใบสมัคร กรุณาลองใหม่อีกครั้ง"

// TeamNotifier is told about every team accepted by the endpoint
type TeamNotifier interface {
	TeamAdded(team models.Team)
}

// RegistrationService defines the interface for team registration
type RegistrationService interface {
	// Workflow returns the draft workflow of a browser session, creating it on first use
	Workflow(sessionID string) *Workflow
	// Submit sends the session's draft. A second call while one is in flight
	// returns ErrSubmitInProgress without contacting the endpoint.
	Submit(ctx context.Context, sessionID string) (*models.Team, error)
	// SubmitTeam validates a complete payload and sends it
	SubmitTeam(ctx context.Context, payload models.TeamPayload) (*models.Team, error)
	// SweepIdle drops drafts not touched since before cutoff and returns how many were dropped
	SweepIdle(cutoff time.Time) int
	// RunSweeper evicts idle drafts every interval until ctx is done
	RunSweeper(ctx context.Context, interval, idleTTL time.Duration)
}

type draftSession struct {
	workflow *Workflow
	lastSeen time.Time
}

// registrationServiceImpl implements the RegistrationService interface
type registrationServiceImpl struct {
	catalog  CatalogService
	gateway  TeamGateway
	notifier TeamNotifier
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*draftSession
}

// NewRegistrationService creates a new registration service instance.
// notifier and m may be nil.
func NewRegistrationService(
	catalog CatalogService,
	gateway TeamGateway,
	notifier TeamNotifier,
	m *metrics.Metrics,
	logger zerolog.Logger,
) RegistrationService {
	return &registrationServiceImpl{
		catalog:  catalog,
		gateway:  gateway,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*draftSession),
	}
}

func (s *registrationServiceImpl) Workflow(sessionID string) *Workflow {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &draftSession{workflow: NewWorkflow()}
		s.sessions[sessionID] = sess
		s.metrics.SetActiveDrafts(len(s.sessions))
	}
	sess.lastSeen = s.now()
	return sess.workflow
}

func (s *registrationServiceImpl) Submit(ctx context.Context, sessionID string) (*models.Team, error) {
	wf := s.Workflow(sessionID)

	// A missing activity is reported by BeginSubmit
	activity, _ := s.catalog.GetActivityByID(wf.View().Draft.ActivityID)

	payload, err := wf.BeginSubmit(activity)
	if err != nil {
		s.metrics.Registration(metrics.OutcomeRejected)
		s.logger.Debug().Err(err).Str("session", sessionID).Msg("Submit refused")
		return nil, err
	}

	// The browser may go away; the POST still runs to completion once started
	team, err := s.gateway.SubmitTeam(context.WithoutCancel(ctx), payload)
	if err != nil {
		wf.FinishSubmit(nil, err, failureMessage(err))
		s.metrics.Registration(metrics.OutcomeFailure)
		s.logger.Error().Err(err).Str("session", sessionID).Msg("Team submission failed")
		return nil, err
	}

	s.accept(*team)
	wf.FinishSubmit(team, nil, "")
	return team, nil
}

func (s *registrationServiceImpl) SubmitTeam(ctx context.Context, payload models.TeamPayload) (*models.Team, error) {
	if err := s.validatePayload(payload); err != nil {
		s.metrics.Registration(metrics.OutcomeRejected)
		return nil, err
	}

	team, err := s.gateway.SubmitTeam(ctx, payload)
	if err != nil {
		s.metrics.Registration(metrics.OutcomeFailure)
		s.logger.Error().Err(err).Str("activityID", payload.ActivityID).Msg("Team submission failed")
		return nil, err
	}

	s.accept(*team)
	return team, nil
}

func (s *registrationServiceImpl) accept(team models.Team) {
	s.catalog.AppendTeam(team)
	if s.notifier != nil {
		s.notifier.TeamAdded(team)
	}
	s.metrics.Registration(metrics.OutcomeSuccess)
	s.logger.Info().
		Str("teamID", team.ID).
		Str("activityID", team.ActivityID).
		Str("school", team.School).
		Msg("Team registered")
}

// validatePayload enforces the data-model invariants: required fields, a
// known activity, a level it offers and member counts equal to its composition.
func (s *registrationServiceImpl) validatePayload(payload models.TeamPayload) error {
	fields := make(map[string]interface{})

	if err := validate.Struct(payload); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
		}
		for _, fe := range verrs {
			fields[fe.Namespace()] = fe.Tag()
		}
	}

	activity, err := s.catalog.GetActivityByID(payload.ActivityID)
	switch {
	case errors.Is(err, apperrors.ErrActivityNotFound):
		if payload.ActivityID != "" {
			fields["TeamPayload.ActivityID"] = "unknown activity"
		}
	case err != nil:
		return err
	default:
		if payload.Level != "" && !activity.HasLevel(payload.Level) {
			fields["TeamPayload.Level"] = "level not offered by activity"
		}
		if len(payload.Teachers) != activity.TeamComposition.Teachers {
			fields["TeamPayload.Teachers"] = fmt.Sprintf("expected %d teachers", activity.TeamComposition.Teachers)
		}
		if len(payload.Students) != activity.TeamComposition.Students {
			fields["TeamPayload.Students"] = fmt.Sprintf("expected %d students", activity.TeamComposition.Students)
		}
	}

	if len(fields) > 0 {
		return apperrors.NewValidationError("invalid team registration", fields)
	}
	return nil
}

func (s *registrationServiceImpl) SweepIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) && !sess.workflow.View().Submitting {
			delete(s.sessions, id)
			dropped++
		}
	}
	s.metrics.SetActiveDrafts(len(s.sessions))
	return dropped
}

func (s *registrationServiceImpl) RunSweeper(ctx context.Context, interval, idleTTL time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.SweepIdle(s.now().Add(-idleTTL)); n > 0 {
				s.logger.Debug().Int("dropped", n).Msg("Evicted idle drafts")
			}
		}
	}
}

func failureMessage(err error) string {
	if msg := apperrors.RemoteMessage(err); msg != "" {
		return SubmitFailedMessage + " (" + msg + ")"
	}
	return SubmitFailedMessage
}
