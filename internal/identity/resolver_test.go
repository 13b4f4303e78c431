// AngelaMos | 2026
// resolver_test.go

package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/jobboard/internal/core"
)

type fakeSource struct {
	admins    map[string]*AdminProfile
	employers map[string]*EmployerProfile
	users     map[string]*UserProfile

	adminErr    error
	employerErr error
	userErr     error

	calls []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		admins:    map[string]*AdminProfile{},
		employers: map[string]*EmployerProfile{},
		users:     map[string]*UserProfile{},
	}
}

func (f *fakeSource) AdminProfileByID(
	_ context.Context,
	id string,
) (*AdminProfile, error) {
	f.calls = append(f.calls, "admin")
	if f.adminErr != nil {
		return nil, f.adminErr
	}
	if p, ok := f.admins[id]; ok {
		return p, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeSource) EmployerProfileByID(
	_ context.Context,
	id string,
) (*EmployerProfile, error) {
	f.calls = append(f.calls, "employer")
	if f.employerErr != nil {
		return nil, f.employerErr
	}
	if p, ok := f.employers[id]; ok {
		return p, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeSource) UserProfileByID(
	_ context.Context,
	id string,
) (*UserProfile, error) {
	f.calls = append(f.calls, "user")
	if f.userErr != nil {
		return nil, f.userErr
	}
	if p, ok := f.users[id]; ok {
		return p, nil
	}
	return nil, core.ErrNotFound
}

func TestResolveAdminShortCircuits(t *testing.T) {
	src := newFakeSource()
	src.admins["id-1"] = &AdminProfile{ID: "id-1"}
	src.employers["id-1"] = &EmployerProfile{ID: "id-1"}

	role, err := NewResolver(src).Resolve(context.Background(), "id-1")

	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)
	assert.Equal(t, []string{"admin"}, src.calls)
}

func TestResolveEmployerBeforeUser(t *testing.T) {
	src := newFakeSource()
	src.employers["id-2"] = &EmployerProfile{ID: "id-2"}
	src.users["id-2"] = &UserProfile{ID: "id-2"}

	role, err := NewResolver(src).Resolve(context.Background(), "id-2")

	require.NoError(t, err)
	assert.Equal(t, RoleEmployer, role)
	assert.Equal(t, []string{"admin", "employer"}, src.calls)
}

func TestResolveUser(t *testing.T) {
	src := newFakeSource()
	src.users["id-3"] = &UserProfile{ID: "id-3"}

	role, err := NewResolver(src).Resolve(context.Background(), "id-3")

	require.NoError(t, err)
	assert.Equal(t, RoleUser, role)
	assert.Equal(t, []string{"admin", "employer", "user"}, src.calls)
}

func TestResolveNoProfileIsNotAnError(t *testing.T) {
	src := newFakeSource()

	role, err := NewResolver(src).Resolve(context.Background(), "ghost")

	require.NoError(t, err)
	assert.Equal(t, RoleNone, role)
	assert.False(t, role.Resolved())
}

func TestResolveQueryFailurePropagates(t *testing.T) {
	src := newFakeSource()
	src.users["id-4"] = &UserProfile{ID: "id-4"}
	src.employerErr = errors.New("connection reset")

	role, err := NewResolver(src).Resolve(context.Background(), "id-4")

	require.Error(t, err)
	assert.Equal(t, RoleNone, role)
	assert.NotErrorIs(t, err, core.ErrNotFound)
	// the user table must not be probed after the employer probe failed
	assert.Equal(t, []string{"admin", "employer"}, src.calls)
}

func TestLoadRoleNoneTouchesNothing(t *testing.T) {
	src := newFakeSource()

	profile, err := NewLoader(src).Load(context.Background(), "id-5", RoleNone)

	require.NoError(t, err)
	assert.Nil(t, profile)
	assert.Empty(t, src.calls)
}

func TestLoadExactlyOneLookup(t *testing.T) {
	src := newFakeSource()
	src.employers["id-6"] = &EmployerProfile{ID: "id-6", CompanyName: "Acme"}

	profile, err := NewLoader(src).Load(
		context.Background(),
		"id-6",
		RoleEmployer,
	)

	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, RoleEmployer, profile.Role)
	require.NotNil(t, profile.Employer)
	assert.Equal(t, "Acme", profile.Employer.CompanyName)
	assert.Nil(t, profile.User)
	assert.Nil(t, profile.Admin)
	assert.Equal(t, []string{"employer"}, src.calls)
}

func TestLoadMissingRowIsBenign(t *testing.T) {
	src := newFakeSource()

	profile, err := NewLoader(src).Load(context.Background(), "id-7", RoleUser)

	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestLoadQueryFailurePropagates(t *testing.T) {
	src := newFakeSource()
	src.userErr = errors.New("timeout")

	profile, err := NewLoader(src).Load(context.Background(), "id-8", RoleUser)

	require.Error(t, err)
	assert.Nil(t, profile)
}
