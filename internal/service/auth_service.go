package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"notely/internal/auth"
	"notely/internal/cache"
	apperrors "notely/internal/errors"
	"notely/internal/model"
	"notely/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// AuthService handles signup, login and caller identity resolution.
type AuthService interface {
	Signup(ctx context.Context, name, email, password string, role model.Role) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	CurrentUser(ctx context.Context, email string) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	cache      *cache.Client
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, cache *cache.Client) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		cache:      cache,
	}
}

func userCacheKey(email string) string {
	return fmt.Sprintf("user:email:%s", email)
}

// Signup creates a new user with a hashed password. An unset role defaults to
// RoleUser.
func (s *authService) Signup(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	if role == "" {
		role = model.RoleUser
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns a bearer token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, user, nil
}

// CurrentUser resolves a verified token subject back to a stored user. Users
// are immutable once created, so the cached copy never goes stale.
func (s *authService) CurrentUser(ctx context.Context, email string) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, userCacheKey(email)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, userCacheKey(email), payload, userCacheTTL)
	}
	return user, nil
}
