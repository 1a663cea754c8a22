package auth

import (
	"context"

	"github.com/hamzasiddiqui/bazaarline-backend/internal/users"
	pkgauth "github.com/hamzasiddiqui/bazaarline-backend/pkg/auth"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	pkgerrors "github.com/hamzasiddiqui/bazaarline-backend/pkg/errors"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/logger"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/security"
)

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type service struct {
	users  users.Repository
	hasher *security.Hasher
	tokens *pkgauth.TokenManager
	logg   *logger.Logger
}

func NewService(userRepo users.Repository, hasher *security.Hasher, tokens *pkgauth.TokenManager, logg *logger.Logger) Service {
	return &service{users: userRepo, hasher: hasher, tokens: tokens, logg: logg}
}

// Login authenticates a back-office account and mints a bearer token.
// All rejection paths share one message so callers cannot probe accounts.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	invalid := pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, invalid
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up user")
	}

	// guest accounts have no password and can never log in
	if user.Password == "" {
		return nil, invalid
	}

	ok, err := s.hasher.Verify(password, user.Password)
	if err != nil || !ok {
		return nil, invalid
	}

	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account deactivated")
	}
	if !user.Role.IsStaff() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required")
	}

	token, err := s.tokens.Mint(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting token")
	}

	if s.logg != nil {
		logCtx := s.logg.WithUserID(ctx, user.ID.String())
		s.logg.Info(logCtx, "auth.login")
	}

	return &LoginResult{Token: token, User: user}, nil
}
