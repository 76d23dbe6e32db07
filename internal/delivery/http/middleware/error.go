package middleware

import (
	"errors"
	"fmt"

	apperrors "job-board/internal/errors"
	"job-board/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

// FromDomainError maps a use-case error onto an HTTP status. Validation
// failures carry their field violations as response data.
func FromDomainError(err error) *AppError {
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		return NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	switch de.Type {
	case apperrors.ErrTypeValidation:
		return NewAppError(fiber.StatusBadRequest, de.Message, de.Fields, err)
	case apperrors.ErrTypeUnavailable:
		return NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil, err)
	default:
		return NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

type ErrorMiddleware struct {
	logger *zap.Logger
}

func NewErrorMiddleware(logger *zap.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("panic recovered",
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.String("panic", fmt.Sprint(r)),
					zap.Stack("stack"))
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := normalizeError(err)
		if status >= 500 {
			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Error(err),
			}
			var de *apperrors.DomainError
			if errors.As(err, &de) && len(de.Stack) > 0 {
				fields = append(fields, zap.ByteString("stack", de.StackTrace()))
			}
			m.logger.Error("request failed", fields...)
		}
		return response.Error(c, status, msg, data)
	}
}

func normalizeError(err error) (int, string, interface{}) {
	if err == nil {
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode <= 0 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}

		status := appErr.StatusCode
		if status == fiber.StatusServiceUnavailable {
			return status, response.MessageServiceUnavailable, nil
		}
		if status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		return status, response.MessageFor(status, appErr.Message), appErr.Data
	}

	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return normalizeError(FromDomainError(err))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 {
			status = fiber.StatusInternalServerError
		}

		if status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}

		return status, response.MessageFor(status, fiberErr.Message), nil
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}
