package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcmut-tutoring/tutorhub/internal/models"
	"github.com/hcmut-tutoring/tutorhub/internal/store"
)

type mockProfileAPI struct {
	loginResp    models.LoginResponse
	loginErr     error
	user         models.User
	getUserErr   error
	loginCalls   int
	getUserCalls int
	lastUserID   string
	lastToken    string
}

func (m *mockProfileAPI) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	m.loginCalls++
	if m.loginErr != nil {
		return models.LoginResponse{}, m.loginErr
	}
	return m.loginResp, nil
}

func (m *mockProfileAPI) GetUser(ctx context.Context, userID, token string) (models.User, error) {
	m.getUserCalls++
	m.lastUserID = userID
	m.lastToken = token
	if m.getUserErr != nil {
		return models.User{}, m.getUserErr
	}
	return m.user, nil
}

type mockStore struct {
	snapshot Identity
	hasData  bool
	loadErr  error
	saveErr  error
	clearErr error
	saved    []Identity
	cleared  int
}

func (m *mockStore) Save(snapshot interface{}) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	ident, ok := snapshot.(Identity)
	if !ok {
		return errors.New("unexpected snapshot type")
	}
	m.snapshot = ident
	m.hasData = true
	m.saved = append(m.saved, ident)
	return nil
}

func (m *mockStore) Load(out interface{}) error {
	if m.loadErr != nil {
		return m.loadErr
	}
	if !m.hasData {
		return store.ErrNoSnapshot
	}
	ptr, ok := out.(*Identity)
	if !ok {
		return errors.New("unexpected snapshot type")
	}
	*ptr = m.snapshot
	return nil
}

func (m *mockStore) Clear() error {
	m.cleared++
	if m.clearErr != nil {
		return m.clearErr
	}
	m.snapshot = Identity{}
	m.hasData = false
	return nil
}

func signedToken(t *testing.T, claims models.TokenClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newTestManager(api *mockProfileAPI, st *mockStore) *Manager {
	return NewManager(ManagerParams{API: api, Store: st, DisableAutoRefresh: true})
}

func TestManagerStartsUninitialized(t *testing.T) {
	m := newTestManager(&mockProfileAPI{}, &mockStore{})
	assert.Equal(t, StateUninitialized, m.State())
	assert.False(t, m.Ready())
}

func TestManagerHydrateRestoresSnapshot(t *testing.T) {
	cached := Identity{
		Token:    "tok-cached",
		UserID:   "u-7",
		Role:     models.RoleTutor,
		FullName: "Le Van C",
		Email:    "tutor@hcmut.edu.vn",
	}
	m := newTestManager(&mockProfileAPI{}, &mockStore{snapshot: cached, hasData: true})

	m.Hydrate(context.Background())

	assert.Equal(t, StateAuthenticated, m.State())
	assert.True(t, m.Ready())
	assert.Equal(t, cached, m.Snapshot())
}

func TestManagerHydrateWithoutSnapshot(t *testing.T) {
	m := newTestManager(&mockProfileAPI{}, &mockStore{})

	m.Hydrate(context.Background())

	assert.Equal(t, StateAnonymous, m.State())
	assert.True(t, m.Ready())
	assert.Equal(t, Identity{}, m.Snapshot())
}

func TestManagerHydrateDiscardsCorruptSnapshot(t *testing.T) {
	st := &mockStore{loadErr: errors.New("decode identity snapshot: unexpected end of JSON input")}
	m := newTestManager(&mockProfileAPI{}, st)

	m.Hydrate(context.Background())

	assert.Equal(t, StateAnonymous, m.State())
	assert.Equal(t, 1, st.cleared)
}

func TestManagerHydrateSchedulesRefresh(t *testing.T) {
	api := &mockProfileAPI{user: models.User{UserID: "u-7", FullName: "Le Van C", Role: models.RoleTutor}}
	st := &mockStore{snapshot: Identity{Token: "tok", UserID: "u-7"}, hasData: true}
	m := NewManager(ManagerParams{API: api, Store: st})

	m.Hydrate(context.Background())
	m.WaitRefresh()

	assert.Equal(t, 1, api.getUserCalls)
	assert.Equal(t, "Le Van C", m.Snapshot().FullName)
}

func TestManagerLoginCoordinator(t *testing.T) {
	token := signedToken(t, models.TokenClaims{
		UserID: "u-3",
		Role:   models.RoleCoordinator,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-3",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	api := &mockProfileAPI{
		loginResp: models.LoginResponse{Token: token},
		user: models.User{
			UserID:   "u-3",
			FullName: "Pham Thi D",
			Email:    "coordinator@hcmut.edu.vn",
			Role:     models.RoleCoordinator,
		},
	}
	st := &mockStore{}
	m := newTestManager(api, st)
	m.Hydrate(context.Background())

	require.NoError(t, m.Login(context.Background(), "coordinator@hcmut.edu.vn", "password"))

	snapshot := m.Snapshot()
	assert.Equal(t, StateAuthenticated, m.State())
	assert.Equal(t, models.RoleCoordinator, snapshot.Role)
	assert.NotEmpty(t, snapshot.Token)
	assert.Equal(t, "u-3", snapshot.UserID)
	assert.Equal(t, "Pham Thi D", snapshot.FullName)

	// Persisted before Login returned.
	require.NotEmpty(t, st.saved)
	assert.Equal(t, snapshot, st.saved[len(st.saved)-1])
	assert.Equal(t, "u-3", api.lastUserID)
	assert.Equal(t, token, api.lastToken)
}

func TestManagerLoginProfileFetchFailureTolerated(t *testing.T) {
	token := signedToken(t, models.TokenClaims{
		UserID: "u-5",
		Role:   models.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	api := &mockProfileAPI{
		loginResp:  models.LoginResponse{Token: token},
		getUserErr: errors.New("profile endpoint down"),
	}
	m := newTestManager(api, &mockStore{})
	m.Hydrate(context.Background())

	require.NoError(t, m.Login(context.Background(), "student@hcmut.edu.vn", "password"))

	snapshot := m.Snapshot()
	assert.Equal(t, StateAuthenticated, m.State())
	assert.Equal(t, "u-5", snapshot.UserID)
	assert.Equal(t, models.RoleStudent, snapshot.Role)
	assert.Equal(t, "student", snapshot.FullName)
}

func TestManagerLoginOpaqueToken(t *testing.T) {
	api := &mockProfileAPI{loginResp: models.LoginResponse{Token: "opaque-session-token"}}
	m := newTestManager(api, &mockStore{})
	m.Hydrate(context.Background())

	require.NoError(t, m.Login(context.Background(), "student@hcmut.edu.vn", "password"))

	snapshot := m.Snapshot()
	assert.Equal(t, "opaque-session-token", snapshot.Token)
	assert.Empty(t, snapshot.UserID)
	assert.Equal(t, "student", snapshot.FullName)
	// No user id to reconcile against.
	assert.Equal(t, 0, api.getUserCalls)
}

func TestManagerLoginFailure(t *testing.T) {
	api := &mockProfileAPI{loginErr: errors.New("invalid credentials")}
	m := newTestManager(api, &mockStore{})
	m.Hydrate(context.Background())

	err := m.Login(context.Background(), "student@hcmut.edu.vn", "wrong")
	require.Error(t, err)
	assert.Equal(t, StateAnonymous, m.State())
	assert.Empty(t, m.Token())
}

func TestManagerLogoutUnconditional(t *testing.T) {
	st := &mockStore{snapshot: Identity{Token: "tok", UserID: "u-1"}, hasData: true, clearErr: errors.New("disk full")}
	m := newTestManager(&mockProfileAPI{}, st)
	m.Hydrate(context.Background())
	require.Equal(t, StateAuthenticated, m.State())

	m.Logout()

	assert.Equal(t, StateAnonymous, m.State())
	assert.Equal(t, Identity{}, m.Snapshot())
	assert.Equal(t, 0, m.RefreshFailures())
}

func TestManagerRefreshFailureKeepsCachedIdentity(t *testing.T) {
	cached := Identity{Token: "tok", UserID: "u-7", Role: models.RoleTutor, FullName: "Le Van C"}
	api := &mockProfileAPI{getUserErr: errors.New("backend unavailable")}
	m := newTestManager(api, &mockStore{snapshot: cached, hasData: true})
	m.Hydrate(context.Background())

	err := m.RefreshProfile(context.Background())
	require.Error(t, err)

	assert.Equal(t, StateAuthenticated, m.State())
	assert.Equal(t, cached, m.Snapshot())
	assert.Equal(t, 1, m.RefreshFailures())

	_ = m.RefreshProfile(context.Background())
	assert.Equal(t, 2, m.RefreshFailures())
}

func TestManagerRefreshSuccessResetsFailures(t *testing.T) {
	cached := Identity{Token: "tok", UserID: "u-7", FullName: "stale name"}
	api := &mockProfileAPI{getUserErr: errors.New("flaky")}
	st := &mockStore{snapshot: cached, hasData: true}
	m := newTestManager(api, st)
	m.Hydrate(context.Background())

	_ = m.RefreshProfile(context.Background())
	require.Equal(t, 1, m.RefreshFailures())

	api.getUserErr = nil
	api.user = models.User{UserID: "u-7", FullName: "Le Van C", Role: models.RoleTutor}
	require.NoError(t, m.RefreshProfile(context.Background()))

	snapshot := m.Snapshot()
	assert.Equal(t, 0, m.RefreshFailures())
	assert.Equal(t, "tok", snapshot.Token)
	assert.Equal(t, "Le Van C", snapshot.FullName)
	assert.Equal(t, models.RoleTutor, snapshot.Role)
	assert.Equal(t, snapshot, st.saved[len(st.saved)-1])
}

func TestManagerRefreshSkippedWhenAnonymous(t *testing.T) {
	api := &mockProfileAPI{}
	m := newTestManager(api, &mockStore{})
	m.Hydrate(context.Background())

	require.NoError(t, m.RefreshProfile(context.Background()))
	assert.Equal(t, 0, api.getUserCalls)
}

func TestManagerSubscribeReceivesTransitions(t *testing.T) {
	api := &mockProfileAPI{loginResp: models.LoginResponse{Token: "opaque"}}
	m := newTestManager(api, &mockStore{})
	ch := m.Subscribe()

	m.Hydrate(context.Background())
	first := <-ch
	assert.Empty(t, first.Token)

	require.NoError(t, m.Login(context.Background(), "student@hcmut.edu.vn", "password"))
	second := <-ch
	assert.Equal(t, "opaque", second.Token)

	m.Logout()
	third := <-ch
	assert.Empty(t, third.Token)
}
