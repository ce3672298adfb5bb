package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"gamewatch-backend/application/ports"
	"gamewatch-backend/domain/core/entities"
	"gamewatch-backend/pkg/auth"
	apperrors "gamewatch-backend/pkg/errors"
	"gamewatch-backend/pkg/utils"

	"go.uber.org/zap"
)

// UserService implements registration, login and account lookup. Logins
// return a signed session token; the admin flag travels inside the token,
// never as a client-asserted field.
type UserService struct {
	users    ports.UserRepository
	tokens   *auth.TokenService
	adminKey string
	logger   *zap.Logger
}

// NewUserService creates a user service. adminKey guards the create-admin
// operation.
func NewUserService(users ports.UserRepository, tokens *auth.TokenService, adminKey string, logger *zap.Logger) *UserService {
	return &UserService{
		users:    users,
		tokens:   tokens,
		adminKey: adminKey,
		logger:   logger,
	}
}

// LoginResult is what a successful login returns to the client.
type LoginResult struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
	Token    string `json:"token"`
}

// Register creates a regular account and returns its id.
func (s *UserService) Register(ctx context.Context, username, email, password string) (string, error) {
	return s.create(ctx, username, email, password, false)
}

// CreateAdmin creates an admin account when the shared admin key matches.
func (s *UserService) CreateAdmin(ctx context.Context, username, email, password, adminKey string) (string, error) {
	if s.adminKey == "" || subtle.ConstantTimeCompare([]byte(adminKey), []byte(s.adminKey)) != 1 {
		return "", apperrors.NewForbiddenError("invalid admin key")
	}
	return s.create(ctx, username, email, password, true)
}

func (s *UserService) create(ctx context.Context, username, email, password string, isAdmin bool) (string, error) {
	if username == "" || email == "" || password == "" {
		return "", apperrors.NewValidationError("username, email and password are required")
	}

	userID, err := s.users.NextID(ctx)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to assign user id")
	}

	user := &entities.User{
		UserID:       userID,
		Username:     username,
		Email:        email,
		PasswordHash: hashPassword(password),
		CreatedAt:    utils.NowRFC3339(),
		IsAdmin:      isAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", apperrors.Wrap(err, "failed to create user")
	}

	s.logger.Info("user registered",
		zap.String("userID", userID),
		zap.Bool("isAdmin", isAdmin),
	)
	return userID, nil
}

// Login authenticates by email and password and issues a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	return s.login(ctx, email, password, false)
}

// AdminLogin is Login restricted to admin accounts; a valid password on a
// non-admin account yields Forbidden.
func (s *UserService) AdminLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	return s.login(ctx, email, password, true)
}

func (s *UserService) login(ctx context.Context, email, password string, requireAdmin bool) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("user")
		}
		return nil, apperrors.Wrap(err, "failed to look up user")
	}

	if requireAdmin && !user.IsAdmin {
		return nil, apperrors.NewForbiddenError("access denied: not an admin user")
	}

	if subtle.ConstantTimeCompare([]byte(user.PasswordHash), []byte(hashPassword(password))) != 1 {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	token, err := s.tokens.Issue(user.UserID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue session token")
	}

	return &LoginResult{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
		Token:    token,
	}, nil
}

// Get returns the public fields of an account.
func (s *UserService) Get(ctx context.Context, userID string) (*entities.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("user")
		}
		return nil, apperrors.Wrap(err, "failed to load user")
	}
	return user, nil
}

// hashPassword is an unsalted single-round SHA-256 digest. The legacy API
// hashed passwords this way, so existing rows only verify against the
// same scheme. Hardening it is out of scope.
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
