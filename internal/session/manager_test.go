// AngelaMos | 2026
// manager_test.go

package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
)

type fakeAuth struct {
	mu       sync.Mutex
	current  *AuthSession
	signUpID string

	signInErr error
	signUpErr error

	subs   map[int]chan Event
	nextID int
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{subs: map[int]chan Event{}}
}

func (f *fakeAuth) CurrentSession(context.Context) (*AuthSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, nil
}

func (f *fakeAuth) SignInWithPassword(
	_ context.Context,
	email string,
	_ string,
) error {
	if f.signInErr != nil {
		return f.signInErr
	}

	sess := &AuthSession{
		Identity: Identity{ID: "ident-" + email, Email: email},
	}

	f.mu.Lock()
	f.current = sess
	f.mu.Unlock()

	f.emit(Event{Kind: EventSignedIn, Session: sess})
	return nil
}

func (f *fakeAuth) SignUp(context.Context, string, string) (string, error) {
	if f.signUpErr != nil {
		return "", f.signUpErr
	}
	return f.signUpID, nil
}

func (f *fakeAuth) SignOut(context.Context) error {
	f.mu.Lock()
	f.current = nil
	f.mu.Unlock()

	f.emit(Event{Kind: EventSignedOut, Session: nil})
	return nil
}

func (f *fakeAuth) Subscribe() (<-chan Event, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++

	ch := make(chan Event, 16)
	f.subs[id] = ch

	return ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(sub)
		}
	}
}

func (f *fakeAuth) emit(ev Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		ch <- ev
	}
}

// stubSource resolves every identity to a fixed role. When gated, user
// table probes announce themselves and park until the gate is released.
type stubSource struct {
	role    identity.Role
	gate    chan struct{}
	entered chan struct{}
}

func (s *stubSource) AdminProfileByID(
	_ context.Context,
	id string,
) (*identity.AdminProfile, error) {
	if s.role == identity.RoleAdmin {
		return &identity.AdminProfile{ID: id, FullName: "Admin"}, nil
	}
	return nil, core.ErrNotFound
}

func (s *stubSource) EmployerProfileByID(
	_ context.Context,
	id string,
) (*identity.EmployerProfile, error) {
	if s.role == identity.RoleEmployer {
		return &identity.EmployerProfile{ID: id, CompanyName: "Acme"}, nil
	}
	return nil, core.ErrNotFound
}

func (s *stubSource) UserProfileByID(
	_ context.Context,
	id string,
) (*identity.UserProfile, error) {
	if s.gate != nil {
		s.entered <- struct{}{}
		<-s.gate
	}
	if s.role == identity.RoleUser {
		return &identity.UserProfile{ID: id, FullName: "Seeker"}, nil
	}
	return nil, core.ErrNotFound
}

type fakeWriter struct {
	mu          sync.Mutex
	users       []*identity.UserProfile
	employers   []*identity.EmployerProfile
	userErr     error
	employerErr error
}

func (f *fakeWriter) CreateUserProfile(
	_ context.Context,
	p *identity.UserProfile,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.userErr != nil {
		return f.userErr
	}
	f.users = append(f.users, p)
	return nil
}

func (f *fakeWriter) CreateEmployerProfile(
	_ context.Context,
	p *identity.EmployerProfile,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.employerErr != nil {
		return f.employerErr
	}
	f.employers = append(f.employers, p)
	return nil
}

func newTestManager(
	auth AuthClient,
	src identity.ProfileSource,
	writer identity.ProfileWriter,
) *Manager {
	return NewManager(
		auth,
		identity.NewResolver(src),
		identity.NewLoader(src),
		writer,
		slog.New(slog.DiscardHandler),
	)
}

func waitForState(t *testing.T, m *Manager, want State) {
	t.Helper()
	require.Eventually(t, func() bool {
		return m.Snapshot().State == want
	}, time.Second, 5*time.Millisecond)
}

func TestStartWithoutSessionIsAnonymous(t *testing.T) {
	m := newTestManager(newFakeAuth(), &stubSource{}, &fakeWriter{})

	m.Start(context.Background())
	defer m.Stop()

	snap := m.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, snap.Identity)
	assert.Equal(t, identity.RoleNone, snap.Role)
	assert.False(t, snap.Loading)
}

func TestSignInResolvesRoleAndProfile(t *testing.T) {
	auth := newFakeAuth()
	m := newTestManager(auth, &stubSource{role: identity.RoleEmployer}, &fakeWriter{})

	m.Start(context.Background())
	defer m.Stop()

	require.NoError(t, m.SignIn(context.Background(), "acme@example.com", "pw"))
	waitForState(t, m, StateAuthenticated)

	snap := m.Snapshot()
	require.NotNil(t, snap.Identity)
	assert.Equal(t, "ident-acme@example.com", snap.Identity.ID)
	assert.Equal(t, identity.RoleEmployer, snap.Role)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, identity.RoleEmployer, snap.Profile.Role)
	assert.False(t, snap.Loading)
	assert.NoError(t, m.Err())
}

func TestSignOutClearsEverything(t *testing.T) {
	auth := newFakeAuth()
	m := newTestManager(auth, &stubSource{role: identity.RoleUser}, &fakeWriter{})

	m.Start(context.Background())
	defer m.Stop()

	require.NoError(t, m.SignIn(context.Background(), "seeker@example.com", "pw"))
	waitForState(t, m, StateAuthenticated)

	require.NoError(t, m.SignOut(context.Background()))
	waitForState(t, m, StateAnonymous)

	snap := m.Snapshot()
	assert.Nil(t, snap.Identity)
	assert.Equal(t, identity.RoleNone, snap.Role)
	assert.Nil(t, snap.Profile)
}

func TestResolutionFailureDegradesButStaysAuthenticated(t *testing.T) {
	auth := newFakeAuth()
	auth.current = &AuthSession{
		Identity: Identity{ID: "ident-1", Email: "x@example.com"},
	}

	// an unresolvable role comes from probes failing hard, simulate with
	// a source whose admin probe errors
	src := &erroringSource{err: errors.New("db down")}
	m := newTestManager(auth, src, &fakeWriter{})

	m.Start(context.Background())
	defer m.Stop()

	snap := m.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	require.NotNil(t, snap.Identity)
	assert.Equal(t, identity.RoleNone, snap.Role)
	assert.Nil(t, snap.Profile)
	assert.False(t, snap.Loading)
	assert.Error(t, m.Err())
}

type erroringSource struct {
	err error
}

func (s *erroringSource) AdminProfileByID(
	context.Context,
	string,
) (*identity.AdminProfile, error) {
	return nil, s.err
}

func (s *erroringSource) EmployerProfileByID(
	context.Context,
	string,
) (*identity.EmployerProfile, error) {
	return nil, s.err
}

func (s *erroringSource) UserProfileByID(
	context.Context,
	string,
) (*identity.UserProfile, error) {
	return nil, s.err
}

func TestSignUpEmployerStartsUnapproved(t *testing.T) {
	auth := newFakeAuth()
	auth.signUpID = "new-employer"
	writer := &fakeWriter{}
	m := newTestManager(auth, &stubSource{}, writer)

	id, err := m.SignUp(
		context.Background(),
		"hr@acme.com",
		"pw",
		identity.RoleEmployer,
		ProfileSeed{CompanyName: "Acme", Industry: "Robotics"},
	)

	require.NoError(t, err)
	assert.Equal(t, "new-employer", id)
	require.Len(t, writer.employers, 1)
	assert.Equal(t, "Acme", writer.employers[0].CompanyName)
	assert.False(t, writer.employers[0].IsApproved)
	require.NotNil(t, writer.employers[0].Industry)
	assert.Equal(t, "Robotics", *writer.employers[0].Industry)
	assert.Empty(t, writer.users)
}

func TestSignUpProfileFailureReturnsOrphanID(t *testing.T) {
	auth := newFakeAuth()
	auth.signUpID = "orphan-1"
	writer := &fakeWriter{userErr: errors.New("insert failed")}
	m := newTestManager(auth, &stubSource{}, writer)

	id, err := m.SignUp(
		context.Background(),
		"seeker@example.com",
		"pw",
		identity.RoleUser,
		ProfileSeed{FullName: "Sam Seeker"},
	)

	require.Error(t, err)
	assert.Equal(t, "orphan-1", id)
}

func TestSignUpAdminRoleSkipsProvisioning(t *testing.T) {
	auth := newFakeAuth()
	auth.signUpID = "new-admin"
	writer := &fakeWriter{}
	m := newTestManager(auth, &stubSource{}, writer)

	id, err := m.SignUp(
		context.Background(),
		"root@example.com",
		"pw",
		identity.RoleAdmin,
		ProfileSeed{},
	)

	require.NoError(t, err)
	assert.Equal(t, "new-admin", id)
	assert.Empty(t, writer.users)
	assert.Empty(t, writer.employers)
}

func TestRefreshProfileWithoutIdentityIsNoop(t *testing.T) {
	m := newTestManager(newFakeAuth(), &stubSource{}, &fakeWriter{})

	m.Start(context.Background())
	defer m.Stop()

	require.NoError(t, m.RefreshProfile(context.Background()))
	assert.Equal(t, StateAnonymous, m.Snapshot().State)
}

func TestStaleResolutionCannotOverwriteSignOut(t *testing.T) {
	auth := newFakeAuth()
	src := &stubSource{role: identity.RoleUser}
	m := newTestManager(auth, src, &fakeWriter{})

	m.Start(context.Background())
	defer m.Stop()

	require.NoError(t, m.SignIn(context.Background(), "seeker@example.com", "pw"))
	waitForState(t, m, StateAuthenticated)

	src.gate = make(chan struct{})
	src.entered = make(chan struct{}, 2)

	refreshed := make(chan struct{})
	go func() {
		defer close(refreshed)
		//nolint:errcheck // outcome checked via snapshot below
		_ = m.RefreshProfile(context.Background())
	}()

	// refresh is now parked inside its user-table probe
	<-src.entered

	require.NoError(t, m.SignOut(context.Background()))
	waitForState(t, m, StateAnonymous)

	// release the slow resolution; it must notice it is stale and
	// discard its result instead of resurrecting the signed-out user
	close(src.gate)
	<-refreshed

	snap := m.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, snap.Identity)
	assert.Equal(t, identity.RoleNone, snap.Role)
	assert.Nil(t, snap.Profile)
	assert.False(t, snap.Loading)
}
