// Package session owns the client-held identity: who is logged in, their
// bearer token, and the load-on-start/persist-on-change lifecycle around it.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/hcmut-tutoring/tutorhub/internal/models"
	"github.com/hcmut-tutoring/tutorhub/internal/store"
)

// State tracks the identity lifecycle. Consumers gate API calls on
// readiness so no request races a not-yet-hydrated identity.
type State int

const (
	// StateUninitialized means storage has not been read yet.
	StateUninitialized State = iota
	// StateAnonymous means no valid token is held.
	StateAnonymous
	// StateAuthenticated means token and profile are present.
	StateAuthenticated
)

// Identity is the persisted record of the logged-in user.
type Identity struct {
	Token    string      `json:"token,omitempty"`
	UserID   string      `json:"userId,omitempty"`
	Role     models.Role `json:"role,omitempty"`
	FullName string      `json:"fullName,omitempty"`
	Email    string      `json:"email,omitempty"`
}

type profileAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)
	GetUser(ctx context.Context, userID, token string) (models.User, error)
}

type snapshotStore interface {
	Save(snapshot interface{}) error
	Load(out interface{}) error
	Clear() error
}

// Manager is the single owner of identity state and its persistence.
// Views receive it by injection; there is no ambient global.
type Manager struct {
	api    profileAPI
	store  snapshotStore
	logger *zap.Logger

	mu              sync.RWMutex
	state           State
	identity        Identity
	refreshFailures int
	subscribers     []chan Identity

	autoRefresh bool
	refreshWG   sync.WaitGroup
}

// ManagerParams groups constructor dependencies.
type ManagerParams struct {
	API    profileAPI
	Store  snapshotStore
	Logger *zap.Logger
	// DisableAutoRefresh turns off the background profile reconciliation
	// that normally follows every token change.
	DisableAutoRefresh bool
}

// NewManager builds a Manager in the Uninitialized state.
func NewManager(params ManagerParams) *Manager {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		api:         params.API,
		store:       params.Store,
		logger:      logger,
		state:       StateUninitialized,
		autoRefresh: !params.DisableAutoRefresh,
	}
}

// Hydrate reads the persisted snapshot. Absence or a parse failure yields
// Anonymous; a cached token yields Authenticated directly from cached data,
// not yet re-verified against the backend.
func (m *Manager) Hydrate(ctx context.Context) {
	var cached Identity
	err := m.store.Load(&cached)

	m.mu.Lock()
	switch {
	case err == nil && cached.Token != "":
		m.identity = cached
		m.state = StateAuthenticated
	case err == nil || errors.Is(err, store.ErrNoSnapshot):
		m.identity = Identity{}
		m.state = StateAnonymous
	default:
		m.logger.Warn("discarding unreadable identity snapshot", zap.Error(err))
		if clearErr := m.store.Clear(); clearErr != nil {
			m.logger.Warn("failed to remove snapshot", zap.Error(clearErr))
		}
		m.identity = Identity{}
		m.state = StateAnonymous
	}
	snapshot := m.identity
	m.mu.Unlock()

	m.notify(snapshot)

	if snapshot.Token != "" {
		m.scheduleRefresh(ctx)
	}
}

// Login authenticates, prefills identity from the token's claims when it
// parses as a JWT, then reconciles with the authoritative profile. The
// snapshot is persisted before Login returns.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	resp, err := m.api.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}

	next := Identity{Token: resp.Token, Email: email, FullName: localPart(email)}
	if claims, ok := parseClaims(resp.Token); ok {
		if claims.UserID != "" {
			next.UserID = claims.UserID
		} else if claims.Subject != "" {
			next.UserID = claims.Subject
		}
		if claims.Role != "" {
			next.Role = claims.Role
		}
		if claims.FullName != "" {
			next.FullName = claims.FullName
		}
	}

	if next.UserID != "" {
		if user, err := m.api.GetUser(ctx, next.UserID, next.Token); err != nil {
			m.logger.Warn("profile fetch after login failed, keeping token-derived identity",
				zap.String("userId", next.UserID), zap.Error(err))
		} else {
			next = mergeProfile(next, user)
		}
	}

	m.mu.Lock()
	m.identity = next
	m.state = StateAuthenticated
	m.refreshFailures = 0
	m.mu.Unlock()

	if err := m.store.Save(next); err != nil {
		m.logger.Error("failed to persist identity snapshot", zap.Error(err))
	}
	m.notify(next)
	return nil
}

// Logout clears storage and resets in-memory state unconditionally; no
// server call has to succeed first.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("failed to clear identity snapshot", zap.Error(err))
	}

	m.mu.Lock()
	m.identity = Identity{}
	m.state = StateAnonymous
	m.refreshFailures = 0
	m.mu.Unlock()

	m.notify(Identity{})
}

// RefreshProfile re-fetches the authoritative profile and overwrites the
// persisted non-token fields with the server's values. A failure keeps the
// previously cached identity as the source of truth; the client never
// downgrades to Anonymous because a refresh failed.
func (m *Manager) RefreshProfile(ctx context.Context) error {
	m.mu.RLock()
	current := m.identity
	ready := m.state == StateAuthenticated
	m.mu.RUnlock()

	if !ready || current.Token == "" || current.UserID == "" {
		return nil
	}

	user, err := m.api.GetUser(ctx, current.UserID, current.Token)
	if err != nil {
		m.mu.Lock()
		m.refreshFailures++
		failures := m.refreshFailures
		m.mu.Unlock()
		m.logger.Warn("profile refresh failed, keeping cached identity",
			zap.String("userId", current.UserID),
			zap.Int("consecutiveFailures", failures),
			zap.Error(err))
		return err
	}

	next := mergeProfile(current, user)

	m.mu.Lock()
	m.identity = next
	m.refreshFailures = 0
	m.mu.Unlock()

	if err := m.store.Save(next); err != nil {
		m.logger.Error("failed to persist refreshed identity", zap.Error(err))
	}
	m.notify(next)
	return nil
}

// Ready reports whether hydration has completed. Views must not issue
// requests before this flips.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state != StateUninitialized
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Snapshot returns a copy of the current identity.
func (m *Manager) Snapshot() Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.identity
}

// Token returns the current bearer token, empty when anonymous.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.identity.Token
}

// RefreshFailures returns the count of consecutive failed profile
// refreshes since the last success.
func (m *Manager) RefreshFailures() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshFailures
}

// Subscribe returns a channel receiving identity snapshots on every
// transition. Slow consumers miss intermediate snapshots rather than
// blocking the manager.
func (m *Manager) Subscribe() <-chan Identity {
	ch := make(chan Identity, 8)
	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()
	return ch
}

// WaitRefresh blocks until in-flight background refreshes settle.
func (m *Manager) WaitRefresh() {
	m.refreshWG.Wait()
}

func (m *Manager) scheduleRefresh(ctx context.Context) {
	if !m.autoRefresh {
		return
	}
	m.refreshWG.Add(1)
	go func() {
		defer m.refreshWG.Done()
		_ = m.RefreshProfile(ctx)
	}()
}

func (m *Manager) notify(snapshot Identity) {
	m.mu.RLock()
	subs := make([]chan Identity, len(m.subscribers))
	copy(subs, m.subscribers)
	m.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// mergeProfile overlays server-authoritative profile fields, keeping the
// existing token untouched.
func mergeProfile(current Identity, user models.User) Identity {
	next := current
	if user.UserID != "" {
		next.UserID = user.UserID
	}
	if user.FullName != "" {
		next.FullName = user.FullName
	}
	if user.Email != "" {
		next.Email = user.Email
	}
	if user.Role != "" {
		next.Role = user.Role
	}
	return next
}

func parseClaims(token string) (*models.TokenClaims, bool) {
	claims := &models.TokenClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}

func localPart(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
