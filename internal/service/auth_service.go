package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sira-labs/sira-api/internal/dto"
	"github.com/sira-labs/sira-api/internal/models"
	"github.com/sira-labs/sira-api/internal/repository"
)

// Auth service errors.
var (
	ErrBadAdminCode  = errors.New("invalid admin registration code")
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials covers unknown username, wrong password and
	// non-admin role alike, so responses never reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountMissing     = errors.New("account no longer exists")
)

const bcryptCost = 10

// Claims is the JWT payload issued at login.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles admin registration and stateless session issuance.
type AuthService interface {
	Register(ctx context.Context, payload dto.RegisterAdminRequest) error
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
	Verify(ctx context.Context, username string) (dto.VerifyResponse, error)
}

type authService struct {
	repo      repository.CredentialRepository
	validator *validator.Validate
	secret    string
	tokenTTL  time.Duration
	adminCode string
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(repo repository.CredentialRepository, validate *validator.Validate, secret, adminCode string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		repo:      repo,
		validator: validate,
		secret:    secret,
		tokenTTL:  tokenTTL,
		adminCode: adminCode,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

// Register creates an admin credential, gated by the shared registration code.
// The code check runs before anything else so an attacker without the code
// learns nothing about existing usernames.
func (s *authService) Register(ctx context.Context, payload dto.RegisterAdminRequest) error {
	if strings.TrimSpace(payload.AdminCode) != s.adminCode {
		return ErrBadAdminCode
	}

	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	username := strings.TrimSpace(payload.Username)
	exists, err := s.repo.Exists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	credential := models.Credential{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Save(ctx, credential); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Msg("admin registered")
	return nil
}

// Login authenticates the credential and issues a signed session token.
func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	username := strings.TrimSpace(payload.Username)
	credential, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if credential.Role != models.RoleAdmin {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(payload.Password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(credential)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Str("username", username).Msg("admin logged in")
	return dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			Username:  credential.Username,
			Role:      credential.Role,
			CreatedAt: credential.CreatedAt,
		},
	}, nil
}

// Verify re-reads the credential behind an already-validated token, so a
// token outlives its account by at most one request.
func (s *authService) Verify(ctx context.Context, username string) (dto.VerifyResponse, error) {
	credential, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return dto.VerifyResponse{}, ErrAccountMissing
		}
		return dto.VerifyResponse{}, err
	}

	return dto.VerifyResponse{
		Username: credential.Username,
		Role:     credential.Role,
	}, nil
}

func (s *authService) issueToken(credential models.Credential) (string, error) {
	issuedAt := s.now()
	claims := Claims{
		Username: credential.Username,
		Role:     credential.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   credential.Username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
