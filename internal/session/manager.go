// AngelaMos | 2026
// manager.go

package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/carterperez-dev/jobboard/internal/identity"
)

type State int

const (
	StateInitializing State = iota
	StateAnonymous
	StateResolving
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAnonymous:
		return "anonymous"
	case StateResolving:
		return "resolving"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time copy of the session state, safe to read
// after the manager has moved on.
type Snapshot struct {
	State    State
	Identity *Identity
	Role     identity.Role
	Profile  *identity.Profile
	Loading  bool
}

// ProfileSeed carries the optional registration fields that feed the
// initial profile row. Fields irrelevant to the chosen role are ignored.
type ProfileSeed struct {
	FullName    string
	CompanyName string
	Phone       string
	Location    string
	Industry    string
}

// Manager owns the authenticated-session lifecycle: it tracks the
// current identity, resolves its role, loads the matching profile
// variant, and applies provider events in arrival order.
//
// Every resolution carries a sequence number taken under the lock when
// it starts. A resolution may only publish its result if it still holds
// the latest sequence when it finishes, so a slow lookup can never
// overwrite the outcome of a later sign-in or sign-out.
type Manager struct {
	auth     AuthClient
	resolver *identity.Resolver
	loader   *identity.Loader
	profiles identity.ProfileWriter
	logger   *slog.Logger

	mu      sync.Mutex
	state   State
	ident   *Identity
	role    identity.Role
	profile *identity.Profile
	loading bool
	lastErr error
	seq     uint64

	cancel func()
	done   chan struct{}
}

func NewManager(
	auth AuthClient,
	resolver *identity.Resolver,
	loader *identity.Loader,
	profiles identity.ProfileWriter,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		auth:     auth,
		resolver: resolver,
		loader:   loader,
		profiles: profiles,
		logger:   logger,
		state:    StateInitializing,
		role:     identity.RoleNone,
	}
}

// Start subscribes to the provider feed before probing the current
// session, so a sign-in racing with startup is never missed. A failed
// initial probe degrades to the anonymous state rather than blocking.
func (m *Manager) Start(ctx context.Context) {
	events, cancel := m.auth.Subscribe()
	m.cancel = cancel
	m.done = make(chan struct{})

	sess, err := m.auth.CurrentSession(ctx)
	switch {
	case err != nil:
		m.logger.Warn("initial session probe failed", "error", err)
		m.toAnonymous()
	case sess == nil:
		m.toAnonymous()
	default:
		m.resolve(ctx, sess.Identity)
	}

	go m.run(ctx, events)
}

// Stop cancels the provider subscription and waits for the event loop
// to drain.
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	if m.done != nil {
		<-m.done
	}
}

func (m *Manager) run(ctx context.Context, events <-chan Event) {
	defer close(m.done)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Session == nil {
				m.toAnonymous()
				continue
			}
			m.resolve(ctx, ev.Session.Identity)
		}
	}
}

// SignIn asks the provider to establish a session. It never mutates
// local state directly; the resulting SIGNED_IN event drives the state
// machine, so outcomes are identical whether the session was created
// here or elsewhere.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	return m.auth.SignInWithPassword(ctx, email, password)
}

// SignUp creates an identity and then, for the user and employer roles,
// the matching profile row. If the profile insert fails the identity
// still exists; the error is returned alongside the identity ID and a
// later resolution of that identity yields RoleNone.
func (m *Manager) SignUp(
	ctx context.Context,
	email string,
	password string,
	role identity.Role,
	seed ProfileSeed,
) (string, error) {
	id, err := m.auth.SignUp(ctx, email, password)
	if err != nil {
		return "", err
	}

	switch role {
	case identity.RoleUser:
		err = m.profiles.CreateUserProfile(ctx, &identity.UserProfile{
			ID:       id,
			Email:    email,
			FullName: seed.FullName,
			Phone:    optional(seed.Phone),
			Location: optional(seed.Location),
			IsActive: true,
		})
	case identity.RoleEmployer:
		err = m.profiles.CreateEmployerProfile(ctx, &identity.EmployerProfile{
			ID:          id,
			Email:       email,
			CompanyName: seed.CompanyName,
			Phone:       optional(seed.Phone),
			Location:    optional(seed.Location),
			Industry:    optional(seed.Industry),
			IsApproved:  false,
			IsActive:    true,
		})
	default:
		return id, nil
	}

	if err != nil {
		m.logger.Error("profile provisioning failed, identity orphaned",
			"identity_id", id,
			"role", role,
			"error", err,
		)
		return id, fmt.Errorf("create %s profile: %w", role, err)
	}

	return id, nil
}

// SignOut asks the provider to end the session; the SIGNED_OUT event
// clears local state.
func (m *Manager) SignOut(ctx context.Context) error {
	return m.auth.SignOut(ctx)
}

// RefreshProfile re-runs resolution for the current identity. With no
// identity it is a no-op.
func (m *Manager) RefreshProfile(ctx context.Context) error {
	m.mu.Lock()
	if m.ident == nil {
		m.mu.Unlock()
		return nil
	}
	ident := *m.ident
	m.mu.Unlock()

	m.resolve(ctx, ident)

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		State:   m.state,
		Role:    m.role,
		Profile: m.profile,
		Loading: m.loading,
	}
	if m.ident != nil {
		ident := *m.ident
		snap.Identity = &ident
	}
	return snap
}

// Err reports the outcome of the most recent resolution, nil when it
// succeeded.
func (m *Manager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *Manager) toAnonymous() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++ // invalidates any in-flight resolution
	m.state = StateAnonymous
	m.ident = nil
	m.role = identity.RoleNone
	m.profile = nil
	m.loading = false
	m.lastErr = nil
}

func (m *Manager) resolve(ctx context.Context, ident Identity) {
	m.mu.Lock()
	m.seq++
	seq := m.seq
	m.state = StateResolving
	m.ident = &ident
	m.loading = true
	m.mu.Unlock()

	role, err := m.resolver.Resolve(ctx, ident.ID)
	var profile *identity.Profile
	if err == nil {
		profile, err = m.loader.Load(ctx, ident.ID, role)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.seq {
		// a newer sign-in or sign-out superseded this resolution
		return
	}

	m.loading = false
	m.state = StateAuthenticated

	if err != nil {
		m.role = identity.RoleNone
		m.profile = nil
		m.lastErr = err
		m.logger.Error("role resolution failed",
			"identity_id", ident.ID,
			"error", err,
		)
		return
	}

	m.role = role
	m.profile = profile
	m.lastErr = nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
