package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcmut-tutoring/tutorhub/internal/models"
)

type mockCoordinatorAPI struct {
	sessions     []models.Session
	canceled     models.Session
	rescheduled  models.Session
	sessionsErr  error
	cancelErr    error
	loadCalls    int
	lastCanceled string
}

func (m *mockCoordinatorAPI) GetAllSessions(ctx context.Context, token string) ([]models.Session, error) {
	m.loadCalls++
	return m.sessions, m.sessionsErr
}

func (m *mockCoordinatorAPI) CancelSession(ctx context.Context, sessionID, token string) (models.Session, error) {
	m.lastCanceled = sessionID
	if m.cancelErr != nil {
		return models.Session{}, m.cancelErr
	}
	return m.canceled, nil
}

func (m *mockCoordinatorAPI) RescheduleSession(ctx context.Context, sessionID string, req models.RescheduleRequest, token string) (models.Session, error) {
	return m.rescheduled, nil
}

func coordinatorFixture() []models.Session {
	return []models.Session{
		{SessionID: "session-1", Topic: "Calculus", Status: models.SessionScheduled, StartTime: "2024-11-20T10:00:00Z"},
		{SessionID: "session-2", Topic: "Physics", Status: models.SessionScheduled, StartTime: "2024-11-21T10:00:00Z"},
		{SessionID: "session-3", Topic: "Calculus", Status: models.SessionCompleted, StartTime: "2024-11-10T10:00:00Z"},
	}
}

func newCoordinatorView(api *mockCoordinatorAPI) *CoordinatorSessions {
	return NewCoordinatorSessions(CoordinatorSessionsParams{
		API:      api,
		Identity: loggedIn("u-3", models.RoleCoordinator),
		Now:      func() time.Time { return fixedNow },
	})
}

func TestCoordinatorSessionsLoad(t *testing.T) {
	api := &mockCoordinatorAPI{sessions: coordinatorFixture()}
	v := newCoordinatorView(api)

	v.Load(context.Background())

	phase, sessions, err := v.State()
	require.NoError(t, err)
	assert.Equal(t, PhaseReady, phase)
	assert.Len(t, sessions, 3)

	stats := v.Stats()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Scheduled)
	assert.Equal(t, 1, stats.Completed)
}

func TestCoordinatorCancelPatchesStatusOnly(t *testing.T) {
	api := &mockCoordinatorAPI{
		sessions: coordinatorFixture(),
		canceled: models.Session{SessionID: "session-1", Status: models.SessionCanceled},
	}
	v := newCoordinatorView(api)
	v.Load(context.Background())

	require.NoError(t, v.Cancel(context.Background(), "session-1"))

	_, sessions, _ := v.State()
	require.Len(t, sessions, 3)
	// Order preserved, only the matched record's status changed.
	assert.Equal(t, "session-1", sessions[0].SessionID)
	assert.Equal(t, models.SessionCanceled, sessions[0].Status)
	assert.Equal(t, "Calculus", sessions[0].Topic)
	assert.Equal(t, "2024-11-20T10:00:00Z", sessions[0].StartTime)
	assert.Equal(t, models.SessionScheduled, sessions[1].Status)
	assert.Equal(t, models.SessionCompleted, sessions[2].Status)
	assert.Equal(t, "session-1", api.lastCanceled)
}

func TestCoordinatorCancelFailurePropagates(t *testing.T) {
	api := &mockCoordinatorAPI{
		sessions:  coordinatorFixture(),
		cancelErr: errors.New("session already completed"),
	}
	v := newCoordinatorView(api)
	v.Load(context.Background())

	require.Error(t, v.Cancel(context.Background(), "session-3"))

	_, sessions, _ := v.State()
	assert.Equal(t, models.SessionCompleted, sessions[2].Status)
}

func TestCoordinatorRescheduleRefetches(t *testing.T) {
	api := &mockCoordinatorAPI{sessions: coordinatorFixture()}
	v := newCoordinatorView(api)
	v.Load(context.Background())
	require.Equal(t, 1, api.loadCalls)

	require.NoError(t, v.Reschedule(context.Background(), "session-1", models.RescheduleRequest{
		NewStartTime: "2024-12-01T10:00:00Z",
		NewEndTime:   "2024-12-01T11:00:00Z",
	}))

	assert.Equal(t, 2, api.loadCalls)
}

func TestCoordinatorTopTopics(t *testing.T) {
	api := &mockCoordinatorAPI{sessions: coordinatorFixture()}
	v := newCoordinatorView(api)
	v.Load(context.Background())

	top := v.TopTopics(1)
	require.Len(t, top, 1)
	assert.Equal(t, "Calculus", top[0].Topic)
	assert.Equal(t, 2, top[0].Count)
}

func TestCoordinatorExportDataset(t *testing.T) {
	api := &mockCoordinatorAPI{sessions: coordinatorFixture()}
	v := newCoordinatorView(api)
	v.Load(context.Background())

	data := v.ExportDataset()
	assert.Equal(t, "Meeting Overview", data.Title)
	assert.Equal(t, []string{"Meeting ID", "Tutor", "Student", "Course", "Start", "End", "Status"}, data.Headers)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, "session-1", data.Rows[0][0])
	// Missing relations were normalized to sentinels, never empty cells.
	assert.Equal(t, models.UnknownTutorName, data.Rows[0][1])
	assert.Equal(t, models.UnknownStudentName, data.Rows[0][2])
}
