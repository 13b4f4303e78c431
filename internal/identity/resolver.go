// AngelaMos | 2026
// resolver.go

package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/jobboard/internal/core"
)

// ProfileSource is the read side of the three profile tables. A missing
// row is reported as core.ErrNotFound; anything else is an infrastructure
// failure and must not be conflated with a miss.
type ProfileSource interface {
	AdminProfileByID(ctx context.Context, id string) (*AdminProfile, error)
	EmployerProfileByID(ctx context.Context, id string) (*EmployerProfile, error)
	UserProfileByID(ctx context.Context, id string) (*UserProfile, error)
}

// ProfileWriter is the provisioning side used during registration.
// Admin profiles are seeded out of band, never through sign-up.
type ProfileWriter interface {
	CreateUserProfile(ctx context.Context, p *UserProfile) error
	CreateEmployerProfile(ctx context.Context, p *EmployerProfile) error
}

// Resolver determines which role owns an identity by probing the profile
// tables in fixed priority order: admin, then employer, then user. The
// first hit wins and later tables are not consulted, so an identity
// present in several tables deterministically resolves to the highest
// privilege. No hit at all yields RoleNone with a nil error.
type Resolver struct {
	src ProfileSource
}

func NewResolver(src ProfileSource) *Resolver {
	return &Resolver{src: src}
}

func (r *Resolver) Resolve(ctx context.Context, identityID string) (Role, error) {
	if _, err := r.src.AdminProfileByID(ctx, identityID); err == nil {
		return RoleAdmin, nil
	} else if !errors.Is(err, core.ErrNotFound) {
		return RoleNone, fmt.Errorf("probe admin profile: %w", err)
	}

	if _, err := r.src.EmployerProfileByID(ctx, identityID); err == nil {
		return RoleEmployer, nil
	} else if !errors.Is(err, core.ErrNotFound) {
		return RoleNone, fmt.Errorf("probe employer profile: %w", err)
	}

	if _, err := r.src.UserProfileByID(ctx, identityID); err == nil {
		return RoleUser, nil
	} else if !errors.Is(err, core.ErrNotFound) {
		return RoleNone, fmt.Errorf("probe user profile: %w", err)
	}

	return RoleNone, nil
}

// Loader fetches the profile variant for an already-resolved role with
// exactly one table lookup. RoleNone loads nothing and touches nothing.
// A missing row for a resolved role is benign (the profile may have been
// deleted between resolution and load) and yields a nil profile.
type Loader struct {
	src ProfileSource
}

func NewLoader(src ProfileSource) *Loader {
	return &Loader{src: src}
}

func (l *Loader) Load(
	ctx context.Context,
	identityID string,
	role Role,
) (*Profile, error) {
	switch role {
	case RoleNone:
		return nil, nil
	case RoleAdmin:
		p, err := l.src.AdminProfileByID(ctx, identityID)
		if err != nil {
			return nil, loadErr("admin", err)
		}
		return NewAdminVariant(p), nil
	case RoleEmployer:
		p, err := l.src.EmployerProfileByID(ctx, identityID)
		if err != nil {
			return nil, loadErr("employer", err)
		}
		return NewEmployerVariant(p), nil
	case RoleUser:
		p, err := l.src.UserProfileByID(ctx, identityID)
		if err != nil {
			return nil, loadErr("user", err)
		}
		return NewUserVariant(p), nil
	default:
		return nil, fmt.Errorf("load profile: unknown role %q", role)
	}
}

func loadErr(table string, err error) error {
	if errors.Is(err, core.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("load %s profile: %w", table, err)
}
