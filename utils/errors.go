package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"gorm.io/gorm"
)

type ErrorKind string

const (
	KindValidation      ErrorKind = "validation_error"
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindUnauthorized    ErrorKind = "unauthorized"
	KindNotFound        ErrorKind = "not_found"
	KindConflict        ErrorKind = "conflict"
	KindStorage         ErrorKind = "storage_error"
	KindUnexpected      ErrorKind = "unexpected_error"
)

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// AppError carries a failure kind through the service layer up to the
// HTTP error handler.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status maps the kind to its HTTP status code.
func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindUnauthenticated:
		return fiber.StatusUnauthorized
	case KindUnauthorized:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func ValidationError(format string, args ...any) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Unauthenticated(msg string) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: msg}
}

func Unauthorized(msg string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: msg}
}

func NotFound(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *AppError {
	return &AppError{Kind: KindConflict, Message: msg}
}

func StorageError(msg string, err error) *AppError {
	return &AppError{Kind: KindStorage, Message: msg, Err: err}
}

func Unexpected(msg string, err error) *AppError {
	return &AppError{Kind: KindUnexpected, Message: msg, Err: err}
}

// IsKind reports whether err is an *AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// IsDuplicateKey recognises unique-index violations. It relies on the
// connection being opened with TranslateError.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// FromDB converts a storage error into an AppError. notFound is used as the
// message when the record does not exist.
func FromDB(err error, notFound string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(notFound)
	case IsDuplicateKey(err):
		return &AppError{Kind: KindConflict, Message: "duplicate record", Err: err}
	default:
		return StorageError("database error", err)
	}
}

// ErrorHandler is installed as the fiber app's error handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.Status()
		msg := appErr.Message
		if status >= fiber.StatusInternalServerError {
			Log.WithError(err).WithField("path", c.Path()).Error("request failed")
		}
		return c.Status(status).JSON(ErrorResponse{Error: string(appErr.Kind), Message: msg})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(ErrorResponse{Error: kindForStatus(fiberErr.Code), Message: fiberErr.Message})
	}

	Log.WithError(err).WithField("path", c.Path()).Error("unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   string(KindUnexpected),
		Message: "internal server error",
	})
}

func kindForStatus(code int) string {
	switch code {
	case fiber.StatusBadRequest:
		return string(KindValidation)
	case fiber.StatusUnauthorized:
		return string(KindUnauthenticated)
	case fiber.StatusForbidden:
		return string(KindUnauthorized)
	case fiber.StatusNotFound:
		return string(KindNotFound)
	case fiber.StatusConflict:
		return string(KindConflict)
	}
	if code >= fiber.StatusInternalServerError {
		return string(KindUnexpected)
	}
	return strings.ToLower(strings.ReplaceAll(fiberutils.StatusMessage(code), " ", "_"))
}
