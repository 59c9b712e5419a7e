package view

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hcmut-tutoring/tutorhub/internal/models"
)

type tutorAPI interface {
	GetSessionsForTutor(ctx context.Context, tutorID, token string) ([]models.Session, error)
	GetMatchingRequestsForTutor(ctx context.Context, tutorID, token string) ([]models.MatchingRequest, error)
	ApproveMatchingRequest(ctx context.Context, requestID, token string) (models.MatchingRequest, error)
	RejectMatchingRequest(ctx context.Context, requestID, token string) (models.MatchingRequest, error)
}

// TutorBoardData joins a tutor's sessions with the requests awaiting them.
type TutorBoardData struct {
	Sessions []models.Session
	Requests []models.MatchingRequest
}

// TutorBoard drives the tutor home page: mentee sessions plus pending
// matching requests, with approve/reject actions.
type TutorBoard struct {
	api    tutorAPI
	ident  identitySource
	logger *zap.Logger
	now    func() time.Time

	state Loadable[TutorBoardData]
}

// TutorBoardParams groups constructor dependencies.
type TutorBoardParams struct {
	API      tutorAPI
	Identity identitySource
	Logger   *zap.Logger
	Now      func() time.Time
}

// NewTutorBoard builds the view.
func NewTutorBoard(params TutorBoardParams) *TutorBoard {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &TutorBoard{
		api:    params.API,
		ident:  params.Identity,
		logger: logger,
		now:    now,
	}
}

// Load fetches sessions and matching requests in parallel.
func (v *TutorBoard) Load(ctx context.Context) {
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
		requests   []models.MatchingRequest
		sessionErr error
		requestErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		sessions, sessionErr = v.api.GetSessionsForTutor(ctx, snapshot.UserID, snapshot.Token)
	}()
	go func() {
		defer wg.Done()
		requests, requestErr = v.api.GetMatchingRequestsForTutor(ctx, snapshot.UserID, snapshot.Token)
	}()
	wg.Wait()

	if sessionErr != nil {
		v.logger.Warn("unable to load tutor sessions", zap.Error(sessionErr))
		v.state.Fail(gen, sessionErr)
		return
	}
	if requestErr != nil {
		v.logger.Warn("unable to load tutor matching requests", zap.Error(requestErr))
		v.state.Fail(gen, requestErr)
		return
	}

	v.state.Resolve(gen, TutorBoardData{
		Sessions: models.NormalizeSessions(sessions),
		Requests: models.NormalizeMatches(requests),
	})
}

// Approve accepts a pending request and patches the local record with the
// server's answer. Failure leaves local state untouched.
func (v *TutorBoard) Approve(ctx context.Context, requestID string) error {
	return v.decide(ctx, requestID, true)
}

// Reject declines a pending request with the same patch semantics.
func (v *TutorBoard) Reject(ctx context.Context, requestID string) error {
	return v.decide(ctx, requestID, false)
}

func (v *TutorBoard) decide(ctx context.Context, requestID string, approve bool) error {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return gateErr
		}
		return nil
	}

	var (
		updated models.MatchingRequest
		err     error
	)
	if approve {
		updated, err = v.api.ApproveMatchingRequest(ctx, requestID, snapshot.Token)
	} else {
		updated, err = v.api.RejectMatchingRequest(ctx, requestID, snapshot.Token)
	}
	if err != nil {
		return err
	}

	data := v.state.Data()
	data.Requests = PatchByID(data.Requests, requestID,
		func(m models.MatchingRequest) string { return m.RequestID },
		func(models.MatchingRequest) models.MatchingRequest { return models.NormalizeMatch(updated) },
	)
	v.state.Set(data)
	return nil
}

// State exposes the board payload with its phase and error.
func (v *TutorBoard) State() (Phase, TutorBoardData, error) {
	phase, data, err := v.state.State()
	if err != nil {
		return phase, data, err
	}
	return phase, data, nil
}

// PendingRequests derives the requests still awaiting a decision.
func (v *TutorBoard) PendingRequests() []models.MatchingRequest {
	var pending []models.MatchingRequest
	for _, r := range v.state.Data().Requests {
		if r.Status == models.MatchPending {
			pending = append(pending, r)
		}
	}
	return pending
}

// Buckets derives the upcoming/past split of the tutor's sessions.
func (v *TutorBoard) Buckets() SessionBuckets {
	return SplitSessions(v.state.Data().Sessions, v.now())
}
