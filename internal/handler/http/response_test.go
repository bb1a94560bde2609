package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/marshallshelly/snapcart/internal/service"
	"github.com/marshallshelly/snapcart/internal/store"
	"github.com/marshallshelly/snapcart/pkg/runtime"
)

func TestFailStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"username taken", store.ErrUsernameTaken, http.StatusBadRequest},
		{"email taken", store.ErrEmailTaken, http.StatusBadRequest},
		{"invalid price", store.ErrInvalidPrice, http.StatusBadRequest},
		{"self follow", store.ErrSelfFollow, http.StatusBadRequest},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"bad token", service.ErrInvalidToken, http.StatusUnauthorized},
		{"not found", runtime.ErrNotFound, http.StatusNotFound},
		{"missing reference", runtime.ErrForeignKeyViolation, http.StatusNotFound},
		{"duplicate", runtime.ErrDuplicateKey, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			fail(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), `"status":"not ok"`)
		})
	}
}

func TestFailWrappedErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	// Wrapped sentinels still map to their status.
	fail(c, errors.Join(errors.New("context"), runtime.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEnvelopes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	ok(c, http.StatusCreated, gin.H{"id": 1})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"status":"ok","data":{"id":1}}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	notOK(c, http.StatusBadRequest, "bad input")
	assert.JSONEq(t, `{"status":"not ok","error":"bad input"}`, w.Body.String())
}

func TestHealthRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewHandler(store.New(nil))
	router := h.Router()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "snapcart")
}
