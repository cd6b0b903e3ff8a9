// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pixelarium/backend/internal/i18n"
	"github.com/pixelarium/backend/internal/services"
	"github.com/pixelarium/backend/internal/utils"
)

// respondError writes the envelope for a service error. Anything that is not
// a domain error is logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	var domainErr *services.Error
	if !errors.As(err, &domainErr) {
		logrus.WithError(err).WithFields(logrus.Fields{
			"request_id": utils.GetRequestIDFromContext(c),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}).Error("Request failed")
		utils.InternalErrorResponse(c)
		return
	}

	if len(domainErr.Details) > 0 {
		utils.ValidationErrorResponse(c, domainErr.Details)
		return
	}

	var message string
	if domainErr.Key != "" {
		message = i18n.T(utils.GetLangFromContext(c), domainErr.Key)
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, message)
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, message)
	default:
		utils.BadRequestResponse(c, message, nil)
	}
}
