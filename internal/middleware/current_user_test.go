package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"notely/internal/auth"
	apperrors "notely/internal/errors"
	"notely/internal/model"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Signup(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	args := m.Called(ctx, name, email, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *mockAuthService) CurrentUser(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func runLoadUser(t *testing.T, jwtService *auth.JWTService, svc *mockAuthService, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return c, LoadUser(jwtService, svc)(next)(c)
}

func TestLoadUser_ResolvesSubject(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 30*time.Minute)
	user := &model.User{ID: 9, Email: "test@example.com", Role: model.RoleUser}

	token, err := jwtService.Issue(user)
	assert.NoError(t, err)

	svc := new(mockAuthService)
	svc.On("CurrentUser", mock.Anything, "test@example.com").Return(user, nil)

	c, err := runLoadUser(t, jwtService, svc, "Bearer "+token)
	assert.NoError(t, err)

	resolved, ok := c.Get(CurrentUserKey).(*model.User)
	assert.True(t, ok)
	assert.Equal(t, uint(9), resolved.ID)
	svc.AssertExpectations(t)
}

func TestLoadUser_Rejections(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 30*time.Minute)
	expiredIssuer := auth.NewJWTService("test-secret", -time.Minute)
	user := &model.User{ID: 9, Email: "test@example.com", Role: model.RoleUser}

	expiredToken, err := expiredIssuer.Issue(user)
	assert.NoError(t, err)
	validToken, err := jwtService.Issue(user)
	assert.NoError(t, err)

	tests := []struct {
		name      string
		header    string
		setupMock func(*mockAuthService)
	}{
		{name: "missing header", header: ""},
		{name: "missing bearer prefix", header: validToken},
		{name: "garbage token", header: "Bearer not-a-token"},
		{name: "expired token", header: "Bearer " + expiredToken},
		{
			name:   "subject no longer exists",
			header: "Bearer " + validToken,
			setupMock: func(m *mockAuthService) {
				m.On("CurrentUser", mock.Anything, "test@example.com").Return(nil, apperrors.ErrInvalidToken)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockAuthService)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			_, err := runLoadUser(t, jwtService, svc, tt.header)
			httpErr, ok := err.(*echo.HTTPError)
			assert.True(t, ok)
			assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
		})
	}
}
