// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
)

type fakeRepo struct {
	Repository

	identities     map[string]*Identity
	sessions       map[string]*AuthSession
	revokedFamily  string
	revokedAll     string
	versionBumped  string
	createIdentErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		identities: map[string]*Identity{},
		sessions:   map[string]*AuthSession{},
	}
}

func (f *fakeRepo) CreateIdentity(_ context.Context, ident *Identity) error {
	if f.createIdentErr != nil {
		return f.createIdentErr
	}
	f.identities[ident.ID] = ident
	return nil
}

func (f *fakeRepo) IdentityByEmail(
	_ context.Context,
	email string,
) (*Identity, error) {
	for _, ident := range f.identities {
		if ident.Email == email {
			return ident, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) IdentityByID(
	_ context.Context,
	id string,
) (*Identity, error) {
	if ident, ok := f.identities[id]; ok {
		return ident, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) SessionByHash(
	_ context.Context,
	tokenHash string,
) (*AuthSession, error) {
	if sess, ok := f.sessions[tokenHash]; ok {
		return sess, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) RevokeSessionFamily(
	_ context.Context,
	familyID string,
) error {
	f.revokedFamily = familyID
	return nil
}

func (f *fakeRepo) RevokeAllForIdentity(
	_ context.Context,
	identityID string,
) error {
	f.revokedAll = identityID
	return nil
}

func (f *fakeRepo) IncrementTokenVersion(
	_ context.Context,
	identityID string,
) error {
	f.versionBumped = identityID
	return nil
}

type failingWriter struct {
	err error
}

func (w *failingWriter) CreateUserProfile(
	context.Context,
	*identity.UserProfile,
) error {
	return w.err
}

func (w *failingWriter) CreateEmployerProfile(
	context.Context,
	*identity.EmployerProfile,
) error {
	return w.err
}

type emptySource struct{}

func (emptySource) AdminProfileByID(
	context.Context,
	string,
) (*identity.AdminProfile, error) {
	return nil, core.ErrNotFound
}

func (emptySource) EmployerProfileByID(
	context.Context,
	string,
) (*identity.EmployerProfile, error) {
	return nil, core.ErrNotFound
}

func (emptySource) UserProfileByID(
	context.Context,
	string,
) (*identity.UserProfile, error) {
	return nil, core.ErrNotFound
}

func newTestService(
	t *testing.T,
	repo Repository,
	writer identity.ProfileWriter,
) *Service {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewService(
		repo,
		nil,
		identity.NewResolver(emptySource{}),
		identity.NewLoader(emptySource{}),
		writer,
		client,
		slog.New(slog.DiscardHandler),
	)
}

func TestVerifyCredentials(t *testing.T) {
	repo := newFakeRepo()
	hash, err := core.HashPassword("correct horse")
	require.NoError(t, err)
	repo.identities["ident-1"] = &Identity{
		ID:           "ident-1",
		Email:        "sam@example.com",
		PasswordHash: hash,
	}

	svc := newTestService(t, repo, &failingWriter{})

	ident, err := svc.VerifyCredentials(
		context.Background(),
		"sam@example.com",
		"correct horse",
	)
	require.NoError(t, err)
	assert.Equal(t, "ident-1", ident.ID)
}

func TestVerifyCredentialsWrongPassword(t *testing.T) {
	repo := newFakeRepo()
	hash, err := core.HashPassword("correct horse")
	require.NoError(t, err)
	repo.identities["ident-1"] = &Identity{
		ID:           "ident-1",
		Email:        "sam@example.com",
		PasswordHash: hash,
	}

	svc := newTestService(t, repo, &failingWriter{})

	_, err = svc.VerifyCredentials(
		context.Background(),
		"sam@example.com",
		"battery staple",
	)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyCredentialsUnknownEmail(t *testing.T) {
	svc := newTestService(t, newFakeRepo(), &failingWriter{})

	_, err := svc.VerifyCredentials(
		context.Background(),
		"nobody@example.com",
		"whatever",
	)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateIdentityDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	repo.createIdentErr = core.ErrDuplicateKey

	svc := newTestService(t, repo, &failingWriter{})

	_, err := svc.CreateIdentity(
		context.Background(),
		"taken@example.com",
		"password123",
	)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestRegisterProfileFailureLeavesOrphan(t *testing.T) {
	repo := newFakeRepo()
	writer := &failingWriter{err: errors.New("insert failed")}
	svc := newTestService(t, repo, writer)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "new@example.com",
		Password: "password123",
		Role:     "user",
		FullName: "New Person",
	}, "", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProfileOrphaned)

	// The identity stays so the email cannot be silently re-registered.
	assert.Len(t, repo.identities, 1)
}

func TestRefreshReuseRevokesFamily(t *testing.T) {
	repo := newFakeRepo()
	token := "reused-refresh-token"
	repo.sessions[core.HashToken(token)] = &AuthSession{
		ID:         "sess-1",
		IdentityID: "ident-1",
		FamilyID:   "family-1",
		IsUsed:     true,
		ExpiresAt:  time.Now().Add(time.Hour),
	}

	svc := newTestService(t, repo, &failingWriter{})

	_, err := svc.Refresh(context.Background(), token, "", "")

	assert.ErrorIs(t, err, ErrTokenReuse)
	assert.Equal(t, "family-1", repo.revokedFamily)
}

func TestLogoutRejectsForeignSession(t *testing.T) {
	repo := newFakeRepo()
	token := "someone-elses-token"
	repo.sessions[core.HashToken(token)] = &AuthSession{
		ID:         "sess-1",
		IdentityID: "owner",
		ExpiresAt:  time.Now().Add(time.Hour),
	}

	svc := newTestService(t, repo, &failingWriter{})

	err := svc.Logout(context.Background(), token, "intruder")
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestLogoutAllRevokesAndBumpsVersion(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo, &failingWriter{})

	require.NoError(t, svc.LogoutAll(context.Background(), "ident-9"))

	assert.Equal(t, "ident-9", repo.revokedAll)
	assert.Equal(t, "ident-9", repo.versionBumped)
}

func TestAccessTokenBlacklist(t *testing.T) {
	svc := newTestService(t, newFakeRepo(), &failingWriter{})
	ctx := context.Background()

	err := svc.RevokeAccessToken(ctx, "jti-1", time.Now().Add(time.Minute))
	require.NoError(t, err)

	revoked, err := svc.IsAccessTokenBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	clean, err := svc.IsAccessTokenBlacklisted(ctx, "jti-other")
	require.NoError(t, err)
	assert.False(t, clean)
}

func TestRevokeExpiredTokenIsNoop(t *testing.T) {
	svc := newTestService(t, newFakeRepo(), &failingWriter{})
	ctx := context.Background()

	err := svc.RevokeAccessToken(ctx, "jti-old", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	revoked, err := svc.IsAccessTokenBlacklisted(ctx, "jti-old")
	require.NoError(t, err)
	assert.False(t, revoked)
}
