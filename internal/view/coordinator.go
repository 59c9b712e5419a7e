package view

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hcmut-tutoring/tutorhub/internal/models"
	"github.com/hcmut-tutoring/tutorhub/pkg/export"
)

type coordinatorSessionAPI interface {
	GetAllSessions(ctx context.Context, token string) ([]models.Session, error)
	CancelSession(ctx context.Context, sessionID, token string) (models.Session, error)
	RescheduleSession(ctx context.Context, sessionID string, req models.RescheduleRequest, token string) (models.Session, error)
}

// CoordinatorSessions drives the program-wide meeting overview.
type CoordinatorSessions struct {
	api    coordinatorSessionAPI
	ident  identitySource
	logger *zap.Logger
	now    func() time.Time

	state Loadable[[]models.Session]
}

// CoordinatorSessionsParams groups constructor dependencies.
type CoordinatorSessionsParams struct {
	API      coordinatorSessionAPI
	Identity identitySource
	Logger   *zap.Logger
	Now      func() time.Time
}

// NewCoordinatorSessions builds the view.
func NewCoordinatorSessions(params CoordinatorSessionsParams) *CoordinatorSessions {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &CoordinatorSessions{
		api:    params.API,
		ident:  params.Identity,
		logger: logger,
		now:    now,
	}
}

// Load fetches every session in the program.
func (v *CoordinatorSessions) Load(ctx context.Context) {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			v.state.Clear(gateErr)
		}
		return
	}
	gen := v.state.Begin()
	sessions, err := v.api.GetAllSessions(ctx, snapshot.Token)
	if err != nil {
		v.logger.Warn("unable to load sessions", zap.Error(err))
		v.state.Fail(gen, err)
		return
	}
	v.state.Resolve(gen, models.NormalizeSessions(sessions))
}

// Cancel cancels one session and patches its status in place. The list
// keeps its length and order; only the matched record changes.
func (v *CoordinatorSessions) Cancel(ctx context.Context, sessionID string) error {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return gateErr
		}
		return nil
	}
	updated, err := v.api.CancelSession(ctx, sessionID, snapshot.Token)
	if err != nil {
		return err
	}
	v.state.Set(PatchByID(v.state.Data(), sessionID,
		func(s models.Session) string { return s.SessionID },
		func(s models.Session) models.Session {
			s.Status = updated.Status
			return s
		}))
	return nil
}

// Reschedule moves one session and refetches the collection, since the
// change can move the record between time buckets.
func (v *CoordinatorSessions) Reschedule(ctx context.Context, sessionID string, req models.RescheduleRequest) error {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return gateErr
		}
		return nil
	}
	if _, err := v.api.RescheduleSession(ctx, sessionID, req, snapshot.Token); err != nil {
		return err
	}
	v.Load(ctx)
	return nil
}

// State exposes the session list with its phase and error.
func (v *CoordinatorSessions) State() (Phase, []models.Session, error) {
	phase, data, err := v.state.State()
	if err != nil {
		return phase, data, err
	}
	return phase, data, nil
}

// Stats derives the overview counters.
func (v *CoordinatorSessions) Stats() SessionStats {
	return ComputeSessionStats(v.state.Data())
}

// TopTopics derives the n most requested topics with percentage shares.
func (v *CoordinatorSessions) TopTopics(n int) []TopicShare {
	return TopTopics(v.state.Data(), n)
}

// ExportDataset shapes the current list for the CSV/PDF exporters.
func (v *CoordinatorSessions) ExportDataset() export.Dataset {
	sessions := v.state.Data()
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.SessionID,
			s.Tutor.FullName,
			s.Student.FullName,
			s.Topic,
			s.StartTime,
			s.EndTime,
			string(s.Status),
		})
	}
	return export.Dataset{
		Title:   "Meeting Overview",
		Headers: []string{"Meeting ID", "Tutor", "Student", "Course", "Start", "End", "Status"},
		Rows:    rows,
	}
}
