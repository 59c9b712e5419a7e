package view

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hcmut-tutoring/tutorhub/internal/models"
)

type studentAPI interface {
	GetSessionsForStudent(ctx context.Context, studentID, token string) ([]models.Session, error)
	GetMatchingRequestsForStudent(ctx context.Context, studentID, token string) ([]models.MatchingRequest, error)
	CreateMatchingRequest(ctx context.Context, req models.CreateMatchingRequest, token string) (models.MatchingRequest, error)
	GetTutors(ctx context.Context, token string) ([]models.Tutor, error)
}

// StudentDashboardData is the joined payload behind the student home view.
type StudentDashboardData struct {
	Sessions []models.Session
	Matches  []models.MatchingRequest
}

// StudentDashboard orchestrates the student home page: sessions and
// matching requests fetched in parallel, settled together.
type StudentDashboard struct {
	api    studentAPI
	ident  identitySource
	logger *zap.Logger
	now    func() time.Time

	state  Loadable[StudentDashboardData]
	tutors Loadable[[]models.Tutor]
}

// StudentDashboardParams groups constructor dependencies.
type StudentDashboardParams struct {
	API      studentAPI
	Identity identitySource
	Logger   *zap.Logger
	Now      func() time.Time
}

// NewStudentDashboard builds the view.
func NewStudentDashboard(params StudentDashboardParams) *StudentDashboard {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &StudentDashboard{
		api:    params.API,
		ident:  params.Identity,
		logger: logger,
		now:    now,
	}
}

// Load fetches sessions and matching requests for the logged-in student.
// Both requests run in parallel; the loading flag clears only once both
// settle. A repeat Load supersedes any in-flight one.
func (v *StudentDashboard) Load(ctx context.Context) {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			v.state.Clear(gateErr)
		}
		return
	}

	gen := v.state.Begin()

	var (
		wg         sync.WaitGroup
		sessions   []models.Session
		matches    []models.MatchingRequest
		sessionErr error
		matchErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		sessions, sessionErr = v.api.GetSessionsForStudent(ctx, snapshot.UserID, snapshot.Token)
	}()
	go func() {
		defer wg.Done()
		matches, matchErr = v.api.GetMatchingRequestsForStudent(ctx, snapshot.UserID, snapshot.Token)
	}()
	wg.Wait()

	if sessionErr != nil {
		v.logger.Warn("unable to load student sessions", zap.Error(sessionErr))
		v.state.Fail(gen, sessionErr)
		return
	}
	if matchErr != nil {
		v.logger.Warn("unable to load matching requests", zap.Error(matchErr))
		v.state.Fail(gen, matchErr)
		return
	}

	v.state.Resolve(gen, StudentDashboardData{
		Sessions: models.NormalizeSessions(sessions),
		Matches:  models.NormalizeMatches(matches),
	})
}

// LoadTutors fetches the browsable tutor directory.
func (v *StudentDashboard) LoadTutors(ctx context.Context) {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			v.tutors.Clear(gateErr)
		}
		return
	}
	gen := v.tutors.Begin()
	tutors, err := v.api.GetTutors(ctx, snapshot.Token)
	if err != nil {
		v.logger.Warn("unable to load tutor directory", zap.Error(err))
		v.tutors.Fail(gen, err)
		return
	}
	v.tutors.Resolve(gen, tutors)
}

// RequestMatch proposes a pairing with a tutor and upserts the server's
// record at the head of the matches list on success.
func (v *StudentDashboard) RequestMatch(ctx context.Context, req models.CreateMatchingRequest) error {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return gateErr
		}
		return nil
	}
	created, err := v.api.CreateMatchingRequest(ctx, req, snapshot.Token)
	if err != nil {
		return err
	}
	data := v.state.Data()
	data.Matches = UpsertHead(data.Matches, models.NormalizeMatch(created), func(m models.MatchingRequest) string {
		return m.RequestID
	})
	v.state.Set(data)
	return nil
}

// State exposes the joined dashboard payload with its phase and error.
func (v *StudentDashboard) State() (Phase, StudentDashboardData, error) {
	phase, data, err := v.state.State()
	if err != nil {
		return phase, data, err
	}
	return phase, data, nil
}

// Tutors exposes the directory payload.
func (v *StudentDashboard) Tutors() (Phase, []models.Tutor, error) {
	phase, data, err := v.tutors.State()
	if err != nil {
		return phase, data, err
	}
	return phase, data, nil
}

// Buckets derives the upcoming/past split for the schedule pages.
func (v *StudentDashboard) Buckets() SessionBuckets {
	return SplitSessions(v.state.Data().Sessions, v.now())
}

// NextSession derives the soonest upcoming session, nil when none.
func (v *StudentDashboard) NextSession() *models.Session {
	return NextUpcoming(v.state.Data().Sessions, v.now())
}

// MatchedTutors derives the tutors behind live matching requests.
func (v *StudentDashboard) MatchedTutors() []models.Tutor {
	return MatchedTutors(v.state.Data().Matches)
}
