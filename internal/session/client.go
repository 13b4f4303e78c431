// AngelaMos | 2026
// client.go

package session

import "context"

// Identity is the authentication-layer principal, independent of any
// profile row that may or may not exist for it.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthSession is an established authentication session for an identity.
type AuthSession struct {
	Identity Identity `json:"identity"`
}

const (
	EventSignedIn       = "SIGNED_IN"
	EventSignedOut      = "SIGNED_OUT"
	EventTokenRefreshed = "TOKEN_REFRESHED"
)

// Event is a change notification from the auth provider. Session is nil
// when the event leaves the subscriber signed out.
type Event struct {
	Kind    string
	Session *AuthSession
}

// AuthClient is the authentication provider contract. SignUp creates an
// identity only; it never provisions profile rows, which is the caller's
// responsibility. Subscribe returns a change feed and a cancel func that
// stops delivery and releases the channel.
type AuthClient interface {
	CurrentSession(ctx context.Context) (*AuthSession, error)
	SignInWithPassword(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password string) (string, error)
	SignOut(ctx context.Context) error
	Subscribe() (<-chan Event, func())
}

// AuthError marks failures originating in the auth provider, as opposed
// to profile-layer failures during registration.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
