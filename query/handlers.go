package query

import (
	"context"

	"github.com/goliatone/go-leave-lookup/core"
)

type GetLeaveBalanceQuery struct {
	reader core.LookupReader
}

func NewGetLeaveBalanceQuery(reader core.LookupReader) *GetLeaveBalanceQuery {
	return &GetLeaveBalanceQuery{reader: reader}
}

func (q *GetLeaveBalanceQuery) Query(ctx context.Context, msg GetLeaveBalanceMessage) (core.DecodedRecord, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: lookup reader is required")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return q.reader.Lookup(ctx, core.LookupRequest{EmployeeID: msg.EmployeeID})
}
