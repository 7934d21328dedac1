package dynamostore

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	smithy "github.com/aws/smithy-go"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-leave-lookup/core"
)

// classifyError maps an SDK failure onto the lookup taxonomy. Resource
// not found at this layer means the table itself is missing; item misses
// are handled by the caller before reaching here.
func (s *Store) classifyError(err error) error {
	var tableMissing *types.ResourceNotFoundException
	if errors.As(err, &tableMissing) {
		return core.TableNotFoundError(s.table)
	}

	var throughput *types.ProvisionedThroughputExceededException
	if errors.As(err, &throughput) {
		return core.ThrottledError()
	}

	var requestLimit *types.RequestLimitExceeded
	if errors.As(err, &requestLimit) {
		return core.ThrottledError()
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDeniedException", "AccessDenied":
			return core.AccessDeniedError()
		case "ThrottlingException":
			return core.ThrottledError()
		}
	}

	return goerrors.Wrap(err, goerrors.CategoryExternal, "Failed to retrieve employee data: "+err.Error()).
		WithCode(500).
		WithTextCode(core.LookupErrorInternal)
}
