// AngelaMos | 2026
// direct.go

package store

import (
	"context"
	"sync"

	"github.com/carterperez-dev/jobboard/internal/session"
)

// Config wires the Direct client to whatever backs credentials. Both
// funcs are required.
type Config struct {
	// VerifyCredentials authenticates an email/password pair and
	// returns the identity it belongs to.
	VerifyCredentials func(
		ctx context.Context,
		email string,
		password string,
	) (session.Identity, error)

	// CreateIdentity registers a new identity and returns its ID. It
	// must not provision any profile rows.
	CreateIdentity func(
		ctx context.Context,
		email string,
		password string,
	) (string, error)
}

// Direct is an in-process session.AuthClient. It keeps the current
// session in memory and fans provider events out to every subscriber,
// which makes it the natural binding for single-binary deployments and
// tests.
type Direct struct {
	cfg Config

	mu      sync.Mutex
	current *session.AuthSession
	subs    map[int]chan session.Event
	nextID  int
}

func NewDirect(cfg Config) *Direct {
	return &Direct{
		cfg:  cfg,
		subs: map[int]chan session.Event{},
	}
}

func (d *Direct) CurrentSession(context.Context) (*session.AuthSession, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current, nil
}

func (d *Direct) SignInWithPassword(
	ctx context.Context,
	email string,
	password string,
) error {
	ident, err := d.cfg.VerifyCredentials(ctx, email, password)
	if err != nil {
		return &session.AuthError{Message: "sign in failed", Err: err}
	}

	sess := &session.AuthSession{Identity: ident}

	d.mu.Lock()
	d.current = sess
	d.mu.Unlock()

	d.broadcast(session.Event{Kind: session.EventSignedIn, Session: sess})
	return nil
}

func (d *Direct) SignUp(
	ctx context.Context,
	email string,
	password string,
) (string, error) {
	id, err := d.cfg.CreateIdentity(ctx, email, password)
	if err != nil {
		return "", &session.AuthError{Message: "sign up failed", Err: err}
	}
	return id, nil
}

func (d *Direct) SignOut(context.Context) error {
	d.mu.Lock()
	d.current = nil
	d.mu.Unlock()

	d.broadcast(session.Event{Kind: session.EventSignedOut, Session: nil})
	return nil
}

func (d *Direct) Subscribe() (<-chan session.Event, func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID
	d.nextID++

	ch := make(chan session.Event, 16)
	d.subs[id] = ch

	return ch, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if sub, ok := d.subs[id]; ok {
			delete(d.subs, id)
			close(sub)
		}
	}
}

// broadcast delivers without blocking: a subscriber that stopped
// draining loses events rather than stalling every other subscriber.
func (d *Direct) broadcast(ev session.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, ch := range d.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
