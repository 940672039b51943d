package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/MateusMunaro/financial-manager/internal/errors"
	"github.com/MateusMunaro/financial-manager/internal/logger"
)

// ErrorHandler writes the JSON error envelope for the last error a handler or
// middleware attached to the context with c.Error, unless a response was
// already written. Binding errors become INVALID_INPUT.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		last := c.Errors.Last()
		appErr := apperrors.Resolve(last.Err)
		if last.IsType(gin.ErrorTypeBind) {
			appErr = apperrors.WithMessage(apperrors.ErrInvalidInput, last.Error())
		}

		LogAppError(c, appErr)
		c.JSON(appErr.StatusCode, appErr.Envelope())
	}
}

// NoRoute answers unknown paths with the NOT_FOUND envelope.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(apperrors.ErrNotFound.StatusCode, apperrors.ErrNotFound.Envelope())
	}
}

// NoMethod answers known paths hit with an unsupported verb.
func NoMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(apperrors.ErrMethodNotAllowed.StatusCode, apperrors.ErrMethodNotAllowed.Envelope())
	}
}

// LogAppError records the internal cause of a failed request. Errors without
// one are expected client errors and are not logged.
func LogAppError(c *gin.Context, appErr *apperrors.AppError) {
	if appErr.Internal == nil {
		return
	}
	logger.Named("http").Errorw("request failed",
		"code", appErr.Code,
		"internal", appErr.Internal.Error(),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"user_id", c.GetString(UserIDKey),
	)
}
