package sqlstore

import (
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

func leaveBalanceHandlers() repository.ModelHandlers[*leaveBalanceRecord] {
	return repository.ModelHandlers[*leaveBalanceRecord]{
		NewRecord: func() *leaveBalanceRecord {
			return &leaveBalanceRecord{}
		},
		GetID: func(record *leaveBalanceRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *leaveBalanceRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "emp_id"
		},
		GetIdentifierValue: func(record *leaveBalanceRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.EmpID)
		},
	}
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
