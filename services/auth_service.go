// Package services holds the business logic layer. Services sit between the
// HTTP handlers and the repositories: hashing, token issuing, access rules
// and the purchase transaction all live here. A service never touches
// http.Request/Response and never runs SQL itself.
package services

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecokan/vendo/models"
	"github.com/ecokan/vendo/pkg"
	"github.com/ecokan/vendo/pkg/sessioncache"
	"github.com/ecokan/vendo/repository"
)

// AuthService issues, revokes and verifies signed session tokens.
type AuthService interface {
	// SignIn checks credentials and returns a signed access token.
	// A user with a live session cannot sign in again until it is revoked
	// or expires.
	SignIn(ctx context.Context, req *models.SignInRequest) (string, error)
	// LogoutAll re-authenticates by password and revokes the live session,
	// even if the caller no longer holds the token.
	LogoutAll(ctx context.Context, req *models.SignInRequest) error
	// VerifyToken validates signature, expiry and revocation state.
	VerifyToken(tokenString string) (*models.TokenClaims, error)
}

type authService struct {
	userRepo   repository.UserRepository
	sessions   *sessioncache.Store
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	tokenTTL   time.Duration
}

// NewAuthService wires the auth flow. The session store is injected so tests
// and replicas construct their own.
func NewAuthService(
	userRepo repository.UserRepository,
	sessions *sessioncache.Store,
	privateKey *rsa.PrivateKey,
	publicKey *rsa.PublicKey,
	tokenTTL time.Duration,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		sessions:   sessions,
		privateKey: privateKey,
		publicKey:  publicKey,
		tokenTTL:   tokenTTL,
	}
}

func (s *authService) SignIn(ctx context.Context, req *models.SignInRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Single-session policy: the check comes before credential validation so
	// a hijacked password cannot be used to mint a second token either.
	if s.sessions.Active(req.Username) {
		return "", fmt.Errorf("%w: There is already an active session using your account", pkg.ErrNoAccess)
	}

	user, err := s.authenticate(ctx, req)
	if err != nil {
		return "", err
	}

	// The token id, not the issue time, is the session identity: two tokens
	// minted in the same second still get distinct ids, so a re-login right
	// after logout can never collide with its own revocation record.
	now := time.Now()
	tokenID := uuid.NewString()
	claims := &models.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Deposit:  user.Deposit,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	s.sessions.Activate(user.Username, tokenID)

	return token, nil
}

func (s *authService) LogoutAll(ctx context.Context, req *models.SignInRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if _, err := s.authenticate(ctx, req); err != nil {
		return err
	}

	tokenID, ok := s.sessions.TokenID(req.Username)
	if !ok {
		return fmt.Errorf("%w: You are already logged out", pkg.ErrNoAccess)
	}

	s.sessions.Revoke(req.Username, tokenID)
	return nil
}

func (s *authService) VerifyToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.publicKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: Session token is expired", pkg.ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: Invalid session", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid || claims.ID == "" || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: Invalid session", pkg.ErrUnauthorized)
	}

	// A token revoked by logout-all is refused before its natural expiry.
	if s.sessions.Revoked(claims.ID) {
		return nil, fmt.Errorf("%w: Session token is expired", pkg.ErrUnauthorized)
	}

	return claims, nil
}

// authenticate resolves the user and compares the password hash. Both a
// missing user and a wrong password come back as the same unauthorized error.
func (s *authService) authenticate(ctx context.Context, req *models.SignInRequest) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid username or password", pkg.ErrUnauthorized)
	}

	return user, nil
}
