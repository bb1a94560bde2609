package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallshelly/snapcart/internal/models"
	"github.com/marshallshelly/snapcart/internal/service"
	"github.com/marshallshelly/snapcart/internal/store"
	"github.com/marshallshelly/snapcart/pkg/runtime"
)

type staticAccounts struct {
	user *models.User
}

func (s *staticAccounts) Create(context.Context, store.NewUser) (*models.User, error) {
	return nil, runtime.ErrNotFound
}

func (s *staticAccounts) ByUsername(context.Context, string) (*models.User, error) {
	return nil, runtime.ErrNotFound
}

func (s *staticAccounts) ByToken(_ context.Context, token string) (*models.User, error) {
	if s.user != nil && s.user.APIToken == token {
		return s.user, nil
	}
	return nil, runtime.ErrNotFound
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		router.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("propagates incoming id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})
}

func TestAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	user := &models.User{ID: 1, Username: "alice", APIToken: "secret-token"}
	auth := service.NewAuthService(&staticAccounts{user: user})

	router := gin.New()
	router.Use(Auth(auth))
	router.GET("/", func(c *gin.Context) {
		current := CurrentUser(c)
		require.NotNil(t, current)
		c.JSON(http.StatusOK, gin.H{"username": current.Username})
	})

	t.Run("bearer token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer secret-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("query parameter token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/?apitoken=secret-token", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "not ok")
	})

	t.Run("wrong token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "", bearerToken("abc"))
	assert.Equal(t, "", bearerToken(""))
	assert.Equal(t, "abc", bearerToken("Bearer  abc"))
}
