// AngelaMos | 2026
// direct_test.go

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/jobboard/internal/session"
)

func testConfig() Config {
	return Config{
		VerifyCredentials: func(
			_ context.Context,
			email string,
			password string,
		) (session.Identity, error) {
			if password != "correct" {
				return session.Identity{}, errors.New("invalid credentials")
			}
			return session.Identity{ID: "ident-1", Email: email}, nil
		},
		CreateIdentity: func(
			_ context.Context,
			_ string,
			_ string,
		) (string, error) {
			return "ident-new", nil
		},
	}
}

func TestSignInEmitsEventAndSetsSession(t *testing.T) {
	d := NewDirect(testConfig())

	events, cancel := d.Subscribe()
	defer cancel()

	err := d.SignInWithPassword(context.Background(), "a@b.com", "correct")
	require.NoError(t, err)

	sess, err := d.CurrentSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "ident-1", sess.Identity.ID)

	ev := <-events
	assert.Equal(t, session.EventSignedIn, ev.Kind)
	require.NotNil(t, ev.Session)
	assert.Equal(t, "a@b.com", ev.Session.Identity.Email)
}

func TestSignInFailureWrapsAuthError(t *testing.T) {
	d := NewDirect(testConfig())

	err := d.SignInWithPassword(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)

	var authErr *session.AuthError
	assert.ErrorAs(t, err, &authErr)

	sess, err := d.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSignOutClearsAndNotifies(t *testing.T) {
	d := NewDirect(testConfig())
	require.NoError(t, d.SignInWithPassword(context.Background(), "a@b.com", "correct"))

	events, cancel := d.Subscribe()
	defer cancel()

	require.NoError(t, d.SignOut(context.Background()))

	sess, err := d.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)

	ev := <-events
	assert.Equal(t, session.EventSignedOut, ev.Kind)
	assert.Nil(t, ev.Session)
}

func TestSignUpDoesNotCreateSession(t *testing.T) {
	d := NewDirect(testConfig())

	id, err := d.SignUp(context.Background(), "new@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "ident-new", id)

	sess, err := d.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestCancelledSubscriberStopsReceiving(t *testing.T) {
	d := NewDirect(testConfig())

	events, cancel := d.Subscribe()
	cancel()

	require.NoError(t, d.SignInWithPassword(context.Background(), "a@b.com", "correct"))

	_, open := <-events
	assert.False(t, open)
}
