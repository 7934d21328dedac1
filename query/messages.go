// Package query exposes the lookup read path as dispatchable query
// messages for callers that compose through go-command.
package query

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-leave-lookup/core"
)

const (
	TypeGetLeaveBalance = "lookup.query.balance.get"
)

type GetLeaveBalanceMessage struct {
	EmployeeID string
}

func (GetLeaveBalanceMessage) Type() string { return TypeGetLeaveBalance }

func (m GetLeaveBalanceMessage) Validate() error {
	id := strings.TrimSpace(m.EmployeeID)
	if id == "" {
		return queryValidationError("employee_id", "Employee ID not found in the request")
	}
	if err := core.ValidateEmployeeID(id); err != nil {
		return queryValidationError("employee_id", fmt.Sprintf("Invalid employee ID format: %s. Employee ID must be numeric.", id))
	}
	return nil
}
