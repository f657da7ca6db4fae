package session

import (
	"context"
	"testing"

	"github.com/finova-data/finova-client/pkg/client"
	"github.com/finova-data/finova-client/pkg/models/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthAPI struct {
	mock.Mock
}

func (m *mockAuthAPI) Session(ctx context.Context) (*api.SessionPayload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.SessionPayload), args.Error(1)
}

func (m *mockAuthAPI) Login(ctx context.Context, username, password string) (*api.AuthResponse, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.AuthResponse), args.Error(1)
}

func (m *mockAuthAPI) Register(ctx context.Context, username, password, email string) (*api.AuthResponse, error) {
	args := m.Called(ctx, username, password, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.AuthResponse), args.Error(1)
}

func (m *mockAuthAPI) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockAuthAPI) Me(ctx context.Context) (*api.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.UserProfile), args.Error(1)
}

func TestManagerStartsLoading(t *testing.T) {
	mgr := NewManager(new(mockAuthAPI), client.ModeToken, client.NewMemoryStore())
	assert.Equal(t, StateLoading, mgr.State())
	assert.Nil(t, mgr.User())
}

func TestStatusPairsUserWithAuthenticatedFlag(t *testing.T) {
	authAPI := new(mockAuthAPI)
	authAPI.On("Login", mock.Anything, "ada", "pw").Return(&api.AuthResponse{
		User: &api.UserProfile{ID: 1, Username: "ada", Email: "a@b.c"},
	}, nil)
	authAPI.On("Logout", mock.Anything).Return(nil)

	mgr := NewManager(authAPI, client.ModeToken, client.NewMemoryStore())

	status := mgr.Status()
	assert.False(t, status.Authenticated)
	assert.Nil(t, status.User)

	require.NoError(t, mgr.Login(context.Background(), "ada", "pw"))
	status = mgr.Status()
	assert.True(t, status.Authenticated)
	require.NotNil(t, status.User)
	assert.Equal(t, "ada", status.User.Username)

	mgr.Logout(context.Background())
	status = mgr.Status()
	assert.False(t, status.Authenticated)
	assert.Nil(t, status.User)
}

func TestRefreshTokenModeShortCircuitsWithoutCredential(t *testing.T) {
	authAPI := new(mockAuthAPI)
	store := client.NewMemoryStore()
	mgr := NewManager(authAPI, client.ModeToken, store)

	mgr.Refresh(context.Background())

	assert.Equal(t, StateUnauthenticated, mgr.State())
	// No network call: nothing was set up on the mock, and nothing was
	// called on it either.
	authAPI.AssertNotCalled(t, "Me", mock.Anything)
	authAPI.AssertNotCalled(t, "Session", mock.Anything)
}

func TestRefreshTokenModeFetchesProfile(t *testing.T) {
	authAPI := new(mockAuthAPI)
	store := client.NewMemoryStore()
	require.NoError(t, store.Write("tok-1"))

	authAPI.On("Me", mock.Anything).Return(&api.UserProfile{ID: 7, Username: "ada"}, nil)

	mgr := NewManager(authAPI, client.ModeToken, store)
	mgr.Refresh(context.Background())

	assert.Equal(t, StateAuthenticated, mgr.State())
	require.NotNil(t, mgr.User())
	assert.Equal(t, "ada", mgr.User().Username)
}

func TestRefreshFailureForcesUnauthenticated(t *testing.T) {
	authAPI := new(mockAuthAPI)
	store := client.NewMemoryStore()
	require.NoError(t, store.Write("tok-1"))

	authAPI.On("Me", mock.Anything).Return(nil,
		&client.APIError{Message: "session expired", StatusCode: 401})

	mgr := NewManager(authAPI, client.ModeToken, store)
	mgr.Refresh(context.Background())

	assert.Equal(t, StateUnauthenticated, mgr.State())
	assert.Nil(t, mgr.User())
	assert.Error(t, mgr.Err())

	_, present := store.Read()
	assert.False(t, present, "failed refresh clears the credential")
}

func TestRefreshCookieModeProbesSession(t *testing.T) {
	authAPI := new(mockAuthAPI)
	store := client.NewMemoryStore()

	authAPI.On("Session", mock.Anything).Return(&api.SessionPayload{
		Authenticated: true,
		User:          &api.UserProfile{ID: 1, Username: "ada"},
	}, nil)

	mgr := NewManager(authAPI, client.ModeSessionKey, store)
	mgr.Refresh(context.Background())

	assert.Equal(t, StateAuthenticated, mgr.State())
	authAPI.AssertCalled(t, "Session", mock.Anything)
}

func TestRefreshCookieModeUnauthenticatedProbe(t *testing.T) {
	authAPI := new(mockAuthAPI)
	authAPI.On("Session", mock.Anything).Return(&api.SessionPayload{Authenticated: false}, nil)

	mgr := NewManager(authAPI, client.ModeNone, client.NewMemoryStore())
	mgr.Refresh(context.Background())

	assert.Equal(t, StateUnauthenticated, mgr.State())
	assert.NoError(t, mgr.Err())
}

func TestLoginSuccessTransitionsDirectly(t *testing.T) {
	authAPI := new(mockAuthAPI)
	authAPI.On("Login", mock.Anything, "ada", "pw").Return(&api.AuthResponse{
		User:  &api.UserProfile{ID: 1, Username: "ada"},
		Token: "tok-1",
	}, nil)

	mgr := NewManager(authAPI, client.ModeToken, client.NewMemoryStore())
	require.NoError(t, mgr.Login(context.Background(), "ada", "pw"))

	assert.Equal(t, StateAuthenticated, mgr.State())
	assert.Equal(t, "ada", mgr.User().Username)
	// Direct transition: no follow-up refresh against the server.
	authAPI.AssertNotCalled(t, "Me", mock.Anything)
	authAPI.AssertNotCalled(t, "Session", mock.Anything)
}

func TestLoginFailureRecordsErrorAndStaysOut(t *testing.T) {
	authAPI := new(mockAuthAPI)
	failure := &client.APIError{Message: "bad creds", StatusCode: 401}
	authAPI.On("Login", mock.Anything, "ada", "nope").Return(nil, failure)

	mgr := NewManager(authAPI, client.ModeToken, client.NewMemoryStore())
	err := mgr.Login(context.Background(), "ada", "nope")

	require.Error(t, err)
	assert.Equal(t, StateUnauthenticated, mgr.State())
	assert.Nil(t, mgr.User(), "no partial authentication is ever exposed")
	assert.Equal(t, failure, mgr.Err())
}

func TestRegisterSuccessSignsIn(t *testing.T) {
	authAPI := new(mockAuthAPI)
	authAPI.On("Register", mock.Anything, "ada", "pw", "a@b.c").Return(&api.AuthResponse{
		User: &api.UserProfile{ID: 2, Username: "ada", Email: "a@b.c"},
	}, nil)

	mgr := NewManager(authAPI, client.ModeSessionKey, client.NewMemoryStore())
	require.NoError(t, mgr.Register(context.Background(), "ada", "pw", "a@b.c"))

	assert.Equal(t, StateAuthenticated, mgr.State())
	assert.Equal(t, "a@b.c", mgr.User().Email)
}

func TestLogoutUnconditional(t *testing.T) {
	authAPI := new(mockAuthAPI)
	authAPI.On("Login", mock.Anything, "ada", "pw").Return(&api.AuthResponse{
		User: &api.UserProfile{ID: 1, Username: "ada"},
	}, nil)
	authAPI.On("Logout", mock.Anything).Return(assert.AnError)

	store := client.NewMemoryStore()
	require.NoError(t, store.Write("tok-1"))

	mgr := NewManager(authAPI, client.ModeToken, store)
	require.NoError(t, mgr.Login(context.Background(), "ada", "pw"))

	mgr.Logout(context.Background())

	assert.Equal(t, StateUnauthenticated, mgr.State())
	assert.Nil(t, mgr.User())

	_, present := store.Read()
	assert.False(t, present, "logout clears the credential even when the remote call errors")
}
