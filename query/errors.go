package query

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-leave-lookup/core"
)

func queryDependencyError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.LookupErrorInternal)
}

// queryValidationError carries the caller-facing message at the top
// level so envelope formatting surfaces it verbatim.
func queryValidationError(field string, message string) error {
	return goerrors.NewValidation(message, goerrors.FieldError{
		Field:   field,
		Message: message,
	}).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.LookupErrorBadInput).
		WithSeverity(goerrors.SeverityError)
}
