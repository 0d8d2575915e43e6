package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "notely/internal/errors"
	"notely/internal/middleware"
	"notely/internal/model"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	args := m.Called(ctx, name, email, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Signup", mock.Anything, "Test User", "test@example.com", "password123", model.RoleUser).
			Return(&model.User{ID: 1, Name: "Test User", Email: "test@example.com", Role: model.RoleUser}, nil)

		c, rec := newTestContext(http.MethodPost, "/api/auth/signup",
			`{"name":"Test User","email":"test@example.com","password":"password123","role":"user"}`)

		err := NewAuthHandler(mockSvc).Signup(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.NotContains(t, rec.Body.String(), "password")
		mockSvc.AssertExpectations(t)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Signup", mock.Anything, "Test User", "taken@example.com", "password123", model.Role("")).
			Return(nil, apperrors.ErrEmailTaken)

		c, _ := newTestContext(http.MethodPost, "/api/auth/signup",
			`{"name":"Test User","email":"taken@example.com","password":"password123"}`)

		err := NewAuthHandler(mockSvc).Signup(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusConflict, httpErr.Code)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		mockSvc := new(MockAuthService)

		c, _ := newTestContext(http.MethodPost, "/api/auth/signup",
			`{"name":"Test User","email":"test@example.com","password":"password123","role":"superuser"}`)

		err := NewAuthHandler(mockSvc).Signup(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		mockSvc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		mockSvc := new(MockAuthService)

		c, _ := newTestContext(http.MethodPost, "/api/auth/signup", `{"email":"test@example.com"}`)

		err := NewAuthHandler(mockSvc).Signup(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns bearer token and user", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Login", mock.Anything, "test@example.com", "password123").
			Return("signed-token", &model.User{ID: 1, Email: "test@example.com"}, nil)

		c, rec := newTestContext(http.MethodPost, "/api/auth/login",
			`{"email":"test@example.com","password":"password123"}`)

		err := NewAuthHandler(mockSvc).Login(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp TokenResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "signed-token", resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
		assert.Equal(t, "test@example.com", resp.User.Email)
	})

	t.Run("bad credentials are unauthorized", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Login", mock.Anything, "test@example.com", "wrong").
			Return("", nil, apperrors.ErrInvalidCredentials)

		c, _ := newTestContext(http.MethodPost, "/api/auth/login",
			`{"email":"test@example.com","password":"wrong"}`)

		err := NewAuthHandler(mockSvc).Login(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("returns context user", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		c, rec := newTestContext(http.MethodGet, "/api/auth/me", "")
		c.Set(middleware.CurrentUserKey, &model.User{ID: 5, Email: "me@example.com"})

		err := NewAuthHandler(mockSvc).Me(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "me@example.com")
	})

	t.Run("missing context user is unauthorized", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		c, _ := newTestContext(http.MethodGet, "/api/auth/me", "")

		err := NewAuthHandler(mockSvc).Me(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}
