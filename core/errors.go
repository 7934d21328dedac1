package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	LookupErrorBadInput     = "LOOKUP_BAD_INPUT"
	LookupErrorNotFound     = "LOOKUP_EMPLOYEE_NOT_FOUND"
	LookupErrorTableMissing = "LOOKUP_TABLE_MISSING"
	LookupErrorThrottled    = "LOOKUP_THROTTLED"
	LookupErrorAccessDenied = "LOOKUP_ACCESS_DENIED"
	LookupErrorInternal     = "LOOKUP_INTERNAL_ERROR"
)

func lookupErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureLookupErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "table") && strings.Contains(msg, "not found"):
		return newLookupError(err.Error(), goerrors.CategoryNotFound, LookupErrorTableMissing)
	case strings.Contains(msg, "not found"):
		return newLookupError(err.Error(), goerrors.CategoryNotFound, LookupErrorNotFound)
	case strings.Contains(msg, "throttl"), strings.Contains(msg, "throughput"), strings.Contains(msg, "rate limit"):
		return newLookupError(err.Error(), goerrors.CategoryRateLimit, LookupErrorThrottled)
	case strings.Contains(msg, "access denied"), strings.Contains(msg, "permission"):
		return newLookupError(err.Error(), goerrors.CategoryAuthz, LookupErrorAccessDenied)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "must be numeric"):
		return newLookupError(err.Error(), goerrors.CategoryBadInput, LookupErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureLookupErrorEnvelope(mapped)
}

func newLookupError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureLookupErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureLookupErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = LookupHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultLookupTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultLookupTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return LookupErrorBadInput
	case goerrors.CategoryNotFound:
		return LookupErrorNotFound
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return LookupErrorAccessDenied
	case goerrors.CategoryRateLimit:
		return LookupErrorThrottled
	default:
		return LookupErrorInternal
	}
}

// LookupHTTPStatus maps an error category onto the status code the caller
// sees on the envelope.
func LookupHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// EmployeeNotFoundError reports a read that succeeded but matched no key.
func EmployeeNotFoundError(employeeID string) error {
	return goerrors.New(
		"Employee with ID "+employeeID+" not found in the leave balance database",
		goerrors.CategoryNotFound,
	).
		WithCode(http.StatusNotFound).
		WithTextCode(LookupErrorNotFound).
		WithMetadata(map[string]any{"employee_id": employeeID})
}

// TableNotFoundError reports a missing backing table, distinguished from a
// missing item by text code and message.
func TableNotFoundError(table string) error {
	return goerrors.New(
		"DynamoDB table "+table+" not found",
		goerrors.CategoryNotFound,
	).
		WithCode(http.StatusNotFound).
		WithTextCode(LookupErrorTableMissing).
		WithMetadata(map[string]any{"table": table})
}

// ThrottledError reports capacity exhaustion. No retry happens here; the
// caller is told to come back later.
func ThrottledError() error {
	return goerrors.New(
		"Database is currently experiencing high traffic. Please try again later.",
		goerrors.CategoryRateLimit,
	).
		WithCode(http.StatusTooManyRequests).
		WithTextCode(LookupErrorThrottled)
}

// AccessDeniedError reports a permission failure against the store.
func AccessDeniedError() error {
	return goerrors.New(
		"The function does not have permission to access the leave balance database",
		goerrors.CategoryAuthz,
	).
		WithCode(http.StatusForbidden).
		WithTextCode(LookupErrorAccessDenied)
}

// ErrorStatus resolves the envelope status code for any error, falling back
// to 500 for errors that never passed through the mapper.
func ErrorStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		if richErr.Code != 0 {
			return richErr.Code
		}
		return LookupHTTPStatus(richErr.Category)
	}
	return http.StatusInternalServerError
}

// ErrorMessage extracts the single user-visible message for an error
// payload. Rich errors surface their message only; nothing internal leaks.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && strings.TrimSpace(richErr.Message) != "" {
		return richErr.Message
	}
	return err.Error()
}
