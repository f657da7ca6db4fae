package session

import (
	"context"
	"sync"

	"github.com/finova-data/finova-client/pkg/client"
	"github.com/finova-data/finova-client/pkg/models/api"
	"github.com/finova-data/finova-client/pkg/models/domain"
	"github.com/rs/zerolog"
)

// State is the session lifecycle position. Loading is only ever the
// initial state; every transition lands on Unauthenticated or
// Authenticated.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// AuthAPI is the slice of the gateway surface the state machine drives.
// *client.Client satisfies it.
type AuthAPI interface {
	Session(ctx context.Context) (*api.SessionPayload, error)
	Login(ctx context.Context, username, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, username, password, email string) (*api.AuthResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*api.UserProfile, error)
}

// Manager wraps the authentication operations into an explicit lifecycle.
// No partial authentication is ever exposed: state and user move together
// under one lock.
type Manager struct {
	mu      sync.Mutex
	api     AuthAPI
	mode    client.CredentialMode
	store   client.CredentialStore
	state   State
	user    *api.UserProfile
	lastErr error
}

func NewManager(authAPI AuthAPI, mode client.CredentialMode, store client.CredentialStore) *Manager {
	return &Manager{
		api:   authAPI,
		mode:  mode,
		store: store,
		state: StateLoading,
	}
}

// Refresh re-derives the truth from the server. Token mode short-circuits
// to Unauthenticated without a network call when no token is stored;
// cookie modes always probe the session endpoint. Any failure forces
// Unauthenticated and clears the credential.
func (m *Manager) Refresh(ctx context.Context) {
	logger := zerolog.Ctx(ctx)

	if m.mode == client.ModeToken {
		if value, ok := m.store.Read(); !ok || value == "" {
			m.set(StateUnauthenticated, nil, nil)
			return
		}

		profile, err := m.api.Me(ctx)
		if err != nil {
			logger.Debug().Err(err).Msg("token session refresh failed")
			_ = m.store.Clear()
			m.set(StateUnauthenticated, nil, err)
			return
		}
		m.set(StateAuthenticated, profile, nil)
		return
	}

	payload, err := m.api.Session(ctx)
	if err != nil {
		logger.Debug().Err(err).Msg("session probe failed")
		_ = m.store.Clear()
		m.set(StateUnauthenticated, nil, err)
		return
	}
	if !payload.Authenticated || payload.User == nil {
		m.set(StateUnauthenticated, nil, nil)
		return
	}
	m.set(StateAuthenticated, payload.User, nil)
}

// Login transitions directly to Authenticated on success, with no
// follow-up refresh. On failure the error is recorded and returned, and
// the state is left Unauthenticated.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	resp, err := m.api.Login(ctx, username, password)
	if err != nil {
		m.set(StateUnauthenticated, nil, err)
		return err
	}
	m.set(StateAuthenticated, resp.User, nil)
	return nil
}

// Register mirrors Login: a successful registration signs the session in.
func (m *Manager) Register(ctx context.Context, username, password, email string) error {
	resp, err := m.api.Register(ctx, username, password, email)
	if err != nil {
		m.set(StateUnauthenticated, nil, err)
		return err
	}
	m.set(StateAuthenticated, resp.User, nil)
	return nil
}

// Logout unconditionally lands on Unauthenticated with the credential
// cleared, whatever the remote call does.
func (m *Manager) Logout(ctx context.Context) {
	_ = m.api.Logout(ctx)
	_ = m.store.Clear()
	m.set(StateUnauthenticated, nil, nil)
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns the profile when authenticated, nil otherwise.
func (m *Manager) User() *api.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Status snapshots the lifecycle as the UI-facing session state. User is
// present exactly when the session is authenticated.
func (m *Manager) Status() domain.SessionStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAuthenticated || m.user == nil {
		return domain.SessionStatus{}
	}
	return domain.SessionStatus{
		Authenticated: true,
		User: &domain.User{
			ID:       m.user.ID,
			Username: m.user.Username,
			Email:    m.user.Email,
		},
	}
}

// Err returns the error recorded by the most recent failed transition.
func (m *Manager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *Manager) set(state State, user *api.UserProfile, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.user = user
	m.lastErr = err
}
