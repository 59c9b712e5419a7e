package view

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/hcmut-tutoring/tutorhub/internal/models"
)

type sessionDetailAPI interface {
	GetSessionByID(ctx context.Context, sessionID, token string) (models.Session, error)
	GetResourcesForSession(ctx context.Context, sessionID, token string) ([]models.Resource, error)
	GetProgressNotesForSession(ctx context.Context, sessionID, token string) ([]models.ProgressNote, error)
	CancelSession(ctx context.Context, sessionID, token string) (models.Session, error)
	CompleteSession(ctx context.Context, sessionID, token string) (models.Session, error)
	RescheduleSession(ctx context.Context, sessionID string, req models.RescheduleRequest, token string) (models.Session, error)
	CreateEvaluation(ctx context.Context, req models.CreateEvaluationRequest, token string) (models.Evaluation, error)
	CreateProgressNote(ctx context.Context, req models.CreateProgressNoteRequest, token string) (models.ProgressNote, error)
}

// SessionDetailData is the joined payload of one appointment page.
type SessionDetailData struct {
	Session   models.Session
	Resources []models.Resource
	Notes     []models.ProgressNote
}

// SessionDetail drives the single-appointment page. Unlike list views, a
// missing session id here is an error, not an empty state.
type SessionDetail struct {
	api       sessionDetailAPI
	ident     identitySource
	logger    *zap.Logger
	sessionID string

	state Loadable[SessionDetailData]
}

// SessionDetailParams groups constructor dependencies.
type SessionDetailParams struct {
	API       sessionDetailAPI
	Identity  identitySource
	Logger    *zap.Logger
	SessionID string
}

// NewSessionDetail builds the view for one session id.
func NewSessionDetail(params SessionDetailParams) *SessionDetail {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionDetail{
		api:       params.API,
		ident:     params.Identity,
		logger:    logger,
		sessionID: params.SessionID,
	}
}

// Load fetches the session plus its resources and notes in parallel. The
// session fetch failing (including not-found) fails the whole view; the
// auxiliary collections failing degrades to empty lists.
func (v *SessionDetail) Load(ctx context.Context) {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			v.state.Clear(gateErr)
		}
		return
	}

	gen := v.state.Begin()

	var (
		wg          sync.WaitGroup
		sess        models.Session
		resources   []models.Resource
		notes       []models.ProgressNote
		sessErr     error
		resourceErr error
		noteErr     error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		sess, sessErr = v.api.GetSessionByID(ctx, v.sessionID, snapshot.Token)
	}()
	go func() {
		defer wg.Done()
		resources, resourceErr = v.api.GetResourcesForSession(ctx, v.sessionID, snapshot.Token)
	}()
	go func() {
		defer wg.Done()
		notes, noteErr = v.api.GetProgressNotesForSession(ctx, v.sessionID, snapshot.Token)
	}()
	wg.Wait()

	if sessErr != nil {
		v.logger.Warn("unable to load session", zap.String("sessionId", v.sessionID), zap.Error(sessErr))
		v.state.Fail(gen, sessErr)
		return
	}
	if resourceErr != nil {
		v.logger.Warn("session resources unavailable", zap.Error(resourceErr))
		resources = nil
	}
	if noteErr != nil {
		v.logger.Warn("session notes unavailable", zap.Error(noteErr))
		notes = nil
	}

	v.state.Resolve(gen, SessionDetailData{
		Session:   models.NormalizeSession(sess),
		Resources: resources,
		Notes:     notes,
	})
}

// Cancel marks the session canceled and patches only the status locally.
func (v *SessionDetail) Cancel(ctx context.Context) error {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return gateErr
		}
		return nil
	}
	updated, err := v.api.CancelSession(ctx, v.sessionID, snapshot.Token)
	if err != nil {
		return err
	}
	data := v.state.Data()
	data.Session.Status = updated.Status
	v.state.Set(data)
	return nil
}

// Complete marks the session completed with the same patch semantics.
func (v *SessionDetail) Complete(ctx context.Context) error {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return gateErr
		}
		return nil
	}
	updated, err := v.api.CompleteSession(ctx, v.sessionID, snapshot.Token)
	if err != nil {
		return err
	}
	data := v.state.Data()
	data.Session.Status = updated.Status
	v.state.Set(data)
	return nil
}

// Reschedule moves the session. Time-bucket membership changes with the
// start time, so the safer full refetch replaces an optimistic patch.
func (v *SessionDetail) Reschedule(ctx context.Context, req models.RescheduleRequest) error {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return gateErr
		}
		return nil
	}
	if _, err := v.api.RescheduleSession(ctx, v.sessionID, req, snapshot.Token); err != nil {
		return err
	}
	v.Load(ctx)
	return nil
}

// SubmitEvaluation files the one-per-session rating and marks the local
// session as evaluated.
func (v *SessionDetail) SubmitEvaluation(ctx context.Context, req models.CreateEvaluationRequest) error {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return gateErr
		}
		return nil
	}
	created, err := v.api.CreateEvaluation(ctx, req, snapshot.Token)
	if err != nil {
		return err
	}
	data := v.state.Data()
	data.Session.EvaluationID = created.EvaluationID
	data.Session.EvaluationSubmitted = true
	v.state.Set(data)
	return nil
}

// AddNote records a progress note and upserts it at the head of the list.
func (v *SessionDetail) AddNote(ctx context.Context, req models.CreateProgressNoteRequest) error {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return gateErr
		}
		return nil
	}
	created, err := v.api.CreateProgressNote(ctx, req, snapshot.Token)
	if err != nil {
		return err
	}
	data := v.state.Data()
	data.Notes = UpsertHead(data.Notes, created, func(n models.ProgressNote) string { return n.NoteID })
	v.state.Set(data)
	return nil
}

// State exposes the joined payload with its phase and error.
func (v *SessionDetail) State() (Phase, SessionDetailData, error) {
	phase, data, err := v.state.State()
	if err != nil {
		return phase, data, err
	}
	return phase, data, nil
}
