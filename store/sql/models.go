// Package sqlstore implements the record store on a relational database
// through bun. It backs local development and the HTTP server surface;
// the Lambda surface reads DynamoDB directly.
package sqlstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-leave-lookup/core"
)

type leaveBalanceRecord struct {
	bun.BaseModel `bun:"table:leave_balances,alias:lb"`

	ID         string                    `bun:"id,pk"`
	EmpID      string                    `bun:"emp_id,notnull,unique"`
	Attributes map[string]core.Attribute `bun:"attributes,type:jsonb,notnull"`
	CreatedAt  time.Time                 `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt  time.Time                 `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (r *leaveBalanceRecord) toDomain() core.Record {
	if r == nil {
		return nil
	}
	record := make(core.Record, len(r.Attributes)+1)
	for field, attribute := range r.Attributes {
		record[field] = attribute
	}
	record["empID"] = core.NumberAttribute(r.EmpID)
	return record
}

func newLeaveBalanceRecord(id string, employeeID string, attributes map[string]core.Attribute, now time.Time) *leaveBalanceRecord {
	copied := make(map[string]core.Attribute, len(attributes))
	for field, attribute := range attributes {
		copied[field] = attribute
	}
	return &leaveBalanceRecord{
		ID:         id,
		EmpID:      employeeID,
		Attributes: copied,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
