package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mycontacts-api/internal/application"
	"github.com/oksasatya/mycontacts-api/pkg/response"
	"github.com/oksasatya/mycontacts-api/pkg/validation"
)

// writeError maps service errors to HTTP responses. Unknown errors are logged and hidden.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var ve *application.ValidationError
	switch {
	case errors.As(err, &ve):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", ve.Fields)
	case errors.Is(err, application.ErrDuplicateIdentity):
		response.Error[any](c, http.StatusBadRequest, "DuplicateIdentity", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "NotFound", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "InvalidCredentials", nil)
	case errors.Is(err, application.ErrContactNotFound):
		response.Error[any](c, http.StatusNotFound, "contact not found", nil)
	case errors.Is(err, application.ErrStorageDisabled):
		response.Error[any](c, http.StatusServiceUnavailable, "photo storage unavailable", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString(response.RequestIDKey),
				"path":       c.FullPath(),
			}).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}

func bindError(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
