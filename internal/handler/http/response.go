package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/marshallshelly/snapcart/internal/service"
	"github.com/marshallshelly/snapcart/internal/store"
	"github.com/marshallshelly/snapcart/pkg/runtime"
)

// ok writes a {"status":"ok","data":...} envelope.
func ok(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"status": "ok", "data": data})
}

// notOK writes a {"status":"not ok","error":...} envelope.
func notOK(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "not ok", "error": message})
}

// fail maps domain errors to HTTP statuses. Unknown errors become a 500
// with a generic message; the detail goes to the log, not the client.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrUsernameTaken),
		errors.Is(err, store.ErrEmailTaken),
		errors.Is(err, store.ErrInvalidPrice),
		errors.Is(err, store.ErrSelfFollow):
		notOK(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		notOK(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, runtime.ErrNotFound),
		errors.Is(err, runtime.ErrForeignKeyViolation):
		notOK(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, runtime.ErrDuplicateKey):
		notOK(c, http.StatusConflict, "resource already exists")
	default:
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
		}).WithError(err).Error("request failed")
		notOK(c, http.StatusInternalServerError, "internal error")
	}
}
