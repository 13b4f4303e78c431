// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenReuse         = errors.New("token reuse detected")
	ErrEmailExists        = errors.New("email already exists")

	// ErrProfileOrphaned marks a registration whose identity was
	// created but whose profile row was not.
	ErrProfileOrphaned = errors.New("identity created without profile")
)

type Service struct {
	repo         Repository
	jwt          *JWTManager
	resolver     *identity.Resolver
	loader       *identity.Loader
	profiles     identity.ProfileWriter
	redis        *redis.Client
	logger       *slog.Logger
	blacklistTTL time.Duration
}

func NewService(
	repo Repository,
	jwt *JWTManager,
	resolver *identity.Resolver,
	loader *identity.Loader,
	profiles identity.ProfileWriter,
	redisClient *redis.Client,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:         repo,
		jwt:          jwt,
		resolver:     resolver,
		loader:       loader,
		profiles:     profiles,
		redis:        redisClient,
		logger:       logger,
		blacklistTTL: 15 * time.Minute,
	}
}

// VerifyCredentials authenticates an email/password pair without
// issuing tokens. It backs the in-process session client.
func (s *Service) VerifyCredentials(
	ctx context.Context,
	email, password string,
) (*Identity, error) {
	ident, err := s.repo.IdentityByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _ = core.VerifyPasswordTimingSafe(password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get identity: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(password, &ident.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	return ident, nil
}

// CreateIdentity registers a bare identity with no profile row. It
// backs the in-process session client's sign-up path.
func (s *Service) CreateIdentity(
	ctx context.Context,
	email, password string,
) (string, error) {
	passwordHash, err := core.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	ident := &Identity{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := s.repo.CreateIdentity(ctx, ident); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return "", ErrEmailExists
		}
		return "", fmt.Errorf("create identity: %w", err)
	}

	return ident.ID, nil
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
	userAgent, ipAddress string,
) (*AuthResponse, error) {
	ident, err := s.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return s.createAuthResponse(ctx, ident, userAgent, ipAddress, "", nil)
}

// Register creates the identity first and the profile row second. If
// the profile insert fails the identity is left in place so the email
// is not silently reusable; the caller gets ErrProfileOrphaned and the
// account resolves to no role until repaired.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
	userAgent, ipAddress string,
) (*AuthResponse, error) {
	identityID, err := s.CreateIdentity(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.provisionProfile(ctx, identityID, req); err != nil {
		s.logger.Error("profile provisioning failed, identity orphaned",
			"identity_id", identityID,
			"role", req.Role,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrProfileOrphaned, err)
	}

	ident, err := s.repo.IdentityByID(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("get identity: %w", err)
	}

	return s.createAuthResponse(ctx, ident, userAgent, ipAddress, "", nil)
}

func (s *Service) provisionProfile(
	ctx context.Context,
	identityID string,
	req RegisterRequest,
) error {
	switch identity.Role(req.Role) {
	case identity.RoleUser:
		return s.profiles.CreateUserProfile(ctx, &identity.UserProfile{
			ID:       identityID,
			Email:    req.Email,
			FullName: req.FullName,
			Phone:    optional(req.Phone),
			Location: optional(req.Location),
			IsActive: true,
		})
	case identity.RoleEmployer:
		return s.profiles.CreateEmployerProfile(ctx, &identity.EmployerProfile{
			ID:          identityID,
			Email:       req.Email,
			CompanyName: req.CompanyName,
			Phone:       optional(req.Phone),
			Location:    optional(req.Location),
			Industry:    optional(req.Industry),
			IsApproved:  false,
			IsActive:    true,
		})
	default:
		return fmt.Errorf("unsupported registration role %q", req.Role)
	}
}

func (s *Service) Refresh(
	ctx context.Context,
	refreshToken, userAgent, ipAddress string,
) (*AuthResponse, error) {
	tokenHash := core.HashToken(refreshToken)

	stored, err := s.repo.SessionByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("refresh: %w", core.ErrTokenInvalid)
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	if stored.IsUsed {
		//nolint:errcheck // security revocation continues regardless
		_ = s.repo.RevokeSessionFamily(ctx, stored.FamilyID)
		return nil, ErrTokenReuse
	}

	if !stored.IsValid() {
		if stored.IsRevoked() {
			return nil, fmt.Errorf("refresh: %w", core.ErrTokenRevoked)
		}
		return nil, fmt.Errorf("refresh: %w", core.ErrTokenExpired)
	}

	ident, err := s.repo.IdentityByID(ctx, stored.IdentityID)
	if err != nil {
		return nil, fmt.Errorf("get identity: %w", err)
	}

	return s.createAuthResponse(
		ctx,
		ident,
		userAgent,
		ipAddress,
		stored.FamilyID,
		&stored.ID,
	)
}

func (s *Service) Logout(
	ctx context.Context,
	refreshToken, identityID string,
) error {
	tokenHash := core.HashToken(refreshToken)

	stored, err := s.repo.SessionByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("find session: %w", err)
	}

	if stored.IdentityID != identityID {
		return fmt.Errorf("logout: %w", core.ErrForbidden)
	}

	if err := s.repo.RevokeSessionByID(ctx, stored.ID); err != nil &&
		!errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("revoke session: %w", err)
	}

	return nil
}

func (s *Service) LogoutAll(ctx context.Context, identityID string) error {
	if err := s.repo.RevokeAllForIdentity(ctx, identityID); err != nil {
		return fmt.Errorf("revoke all sessions: %w", err)
	}

	if err := s.repo.IncrementTokenVersion(ctx, identityID); err != nil {
		return fmt.Errorf("increment token version: %w", err)
	}

	return nil
}

func (s *Service) RevokeAccessToken(
	ctx context.Context,
	jti string,
	expiresAt time.Time,
) error {
	key := "blacklist:" + jti
	ttl := time.Until(expiresAt)

	if ttl <= 0 {
		return nil
	}

	if err := s.redis.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}

	return nil
}

func (s *Service) IsAccessTokenBlacklisted(
	ctx context.Context,
	jti string,
) (bool, error) {
	key := "blacklist:" + jti

	exists, err := s.redis.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}

	return exists > 0, nil
}

func (s *Service) ValidateTokenVersion(
	ctx context.Context,
	identityID string,
	tokenVersion int,
) error {
	ident, err := s.repo.IdentityByID(ctx, identityID)
	if err != nil {
		return fmt.Errorf("get identity: %w", err)
	}

	if tokenVersion < ident.TokenVersion {
		return fmt.Errorf("validate token version: %w", core.ErrTokenRevoked)
	}

	return nil
}

// Me resolves the caller's role and loads the matching profile variant.
// An identity with no profile row is a valid answer: role none, no
// profile.
func (s *Service) Me(
	ctx context.Context,
	identityID string,
) (*MeResponse, error) {
	ident, err := s.repo.IdentityByID(ctx, identityID)
	if err != nil {
		return nil, err
	}

	role, err := s.resolver.Resolve(ctx, ident.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve role: %w", err)
	}

	profile, err := s.loader.Load(ctx, ident.ID, role)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	return &MeResponse{
		Identity: IdentityResponse{
			ID:        ident.ID,
			Email:     ident.Email,
			Role:      string(role),
			CreatedAt: ident.CreatedAt,
		},
		Profile: profile,
	}, nil
}

// createAuthResponse resolves the role at issuance so the role claim in
// the access token reflects the profile tables at sign-in time, then
// mints the token pair and persists the refresh session.
func (s *Service) createAuthResponse(
	ctx context.Context,
	ident *Identity,
	userAgent, ipAddress, familyID string,
	oldSessionID *string,
) (*AuthResponse, error) {
	role, err := s.resolver.Resolve(ctx, ident.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve role: %w", err)
	}

	profile, err := s.loader.Load(ctx, ident.ID, role)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	accessToken, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		IdentityID:   ident.ID,
		Role:         string(role),
		TokenVersion: ident.TokenVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	refreshData, err := s.jwt.CreateRefreshToken(ident.ID, familyID)
	if err != nil {
		return nil, fmt.Errorf("create refresh token: %w", err)
	}

	newSessionID := uuid.New().String()

	sess := &AuthSession{
		ID:         newSessionID,
		IdentityID: ident.ID,
		TokenHash:  refreshData.Hash,
		FamilyID:   refreshData.FamilyID,
		ExpiresAt:  refreshData.ExpiresAt,
		UserAgent:  userAgent,
		IPAddress:  ipAddress,
	}

	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("store auth session: %w", err)
	}

	if oldSessionID != nil {
		//nolint:errcheck // best-effort token chain tracking
		_ = s.repo.MarkSessionUsed(ctx, *oldSessionID, newSessionID)
	}

	return &AuthResponse{
		Identity: IdentityResponse{
			ID:        ident.ID,
			Email:     ident.Email,
			Role:      string(role),
			CreatedAt: ident.CreatedAt,
		},
		Profile: profile,
		Tokens: TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshData.Token,
			TokenType:    "Bearer",
			ExpiresIn:    int(15 * time.Minute / time.Second),
			ExpiresAt:    time.Now().Add(15 * time.Minute),
		},
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
