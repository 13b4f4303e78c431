// AngelaMos | 2026
// service_test.go

package job

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
)

type fakeRepo struct {
	Repository

	created *Job
	jobs    map[string]*Job
	statSet map[string]Status
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		jobs:    map[string]*Job{},
		statSet: map[string]Status{},
	}
}

func (f *fakeRepo) Create(_ context.Context, j *Job) error {
	f.created = j
	f.jobs[j.ID] = j
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Job, error) {
	if j, ok := f.jobs[id]; ok {
		return j, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) SetStatus(
	_ context.Context,
	id string,
	status Status,
) error {
	f.statSet[id] = status
	return nil
}

type fakeProfiles struct {
	employer *identity.EmployerProfile
}

func (f *fakeProfiles) AdminProfileByID(
	context.Context,
	string,
) (*identity.AdminProfile, error) {
	return nil, core.ErrNotFound
}

func (f *fakeProfiles) EmployerProfileByID(
	context.Context,
	string,
) (*identity.EmployerProfile, error) {
	if f.employer == nil {
		return nil, core.ErrNotFound
	}
	return f.employer, nil
}

func (f *fakeProfiles) UserProfileByID(
	context.Context,
	string,
) (*identity.UserProfile, error) {
	return nil, core.ErrNotFound
}

func validCreateRequest() CreateJobRequest {
	return CreateJobRequest{
		Title:       "Backend Engineer",
		Description: "Own the API surface end to end",
		Location:    "Remote",
		JobType:     "remote",
	}
}

func TestCreateQueuesForModeration(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeProfiles{
		employer: &identity.EmployerProfile{
			ID: "emp-1", IsApproved: true, IsActive: true,
		},
	})

	j, err := svc.Create(context.Background(), "emp-1", validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, StatusPending, j.Status)
	assert.True(t, j.IsActive)
	assert.Equal(t, "USD", j.SalaryCurrency)
	assert.NotEmpty(t, j.ID)
	require.NotNil(t, repo.created)
}

func TestCreateRejectsUnapprovedEmployer(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeProfiles{
		employer: &identity.EmployerProfile{
			ID: "emp-2", IsApproved: false, IsActive: true,
		},
	})

	_, err := svc.Create(context.Background(), "emp-2", validCreateRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmployerNotApproved)
}

func TestCreateRejectsInvertedSalaryRange(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeProfiles{
		employer: &identity.EmployerProfile{
			ID: "emp-3", IsApproved: true, IsActive: true,
		},
	})

	req := validCreateRequest()
	lo, hi := int64(90000), int64(70000)
	req.SalaryMin = &lo
	req.SalaryMax = &hi

	_, err := svc.Create(context.Background(), "emp-3", req)

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestGetVisibleHidesUnapproved(t *testing.T) {
	repo := newFakeRepo()
	repo.jobs["job-1"] = &Job{
		ID: "job-1", Status: StatusPending, IsActive: true,
	}
	svc := NewService(repo, &fakeProfiles{})

	_, err := svc.GetVisible(context.Background(), "job-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCloseRequiresOwnership(t *testing.T) {
	repo := newFakeRepo()
	repo.jobs["job-2"] = &Job{
		ID: "job-2", EmployerID: "emp-1",
		Status: StatusApproved, IsActive: true,
	}
	svc := NewService(repo, &fakeProfiles{})

	err := svc.Close(context.Background(), "intruder", "job-2")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrForbidden)

	require.NoError(t, svc.Close(context.Background(), "emp-1", "job-2"))
	assert.Equal(t, StatusClosed, repo.statSet["job-2"])
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeProfiles{})

	err := svc.SetStatus(context.Background(), "job-3", Status("bogus"))

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
