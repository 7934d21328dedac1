package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-leave-lookup/core"
)

type BalanceStore struct {
	db   *bun.DB
	repo repository.Repository[*leaveBalanceRecord]
}

// GetRecord resolves the balance row for an employee. A missing row maps
// to the same not-found error the DynamoDB store produces so callers see
// one taxonomy regardless of backend.
func (s *BalanceStore) GetRecord(ctx context.Context, employeeID string) (core.Record, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: balance store is not configured")
	}
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, fmt.Errorf("sqlstore: employee id is required")
	}

	records, _, err := s.repo.List(ctx,
		repository.SelectBy("emp_id", "=", employeeID),
	)
	if err != nil {
		return nil, s.classifyError(err, employeeID)
	}
	if len(records) == 0 {
		return nil, core.EmployeeNotFoundError(employeeID)
	}
	return records[0].toDomain(), nil
}

// Upsert writes a balance row, replacing an existing row for the same
// employee. Seed tooling and tests use it; lookups never write.
func (s *BalanceStore) Upsert(ctx context.Context, employeeID string, attributes map[string]core.Attribute) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("sqlstore: balance store is not configured")
	}
	employeeID = strings.TrimSpace(employeeID)
	if err := core.ValidateEmployeeID(employeeID); err != nil {
		return err
	}

	now := time.Now().UTC()
	existing, _, err := s.repo.List(ctx,
		repository.SelectBy("emp_id", "=", employeeID),
	)
	if err != nil && !isNoRows(err) {
		return s.classifyError(err, employeeID)
	}
	if len(existing) > 0 {
		current := existing[0]
		current.Attributes = attributes
		current.UpdatedAt = now
		_, err = s.repo.Update(ctx, current, repository.UpdateByID(current.ID))
		return err
	}

	record := newLeaveBalanceRecord(uuid.NewString(), employeeID, attributes, now)
	_, err = s.repo.Create(ctx, record)
	return err
}

// ProbeTable mirrors the DynamoDB diagnostic surface with a bounded
// count query. Failures are advisory only.
func (s *BalanceStore) ProbeTable(ctx context.Context, sampleLimit int) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: balance store is not configured")
	}
	if sampleLimit <= 0 {
		sampleLimit = 5
	}
	var ids []string
	if err := s.db.NewSelect().
		Model((*leaveBalanceRecord)(nil)).
		Column("id").
		Limit(sampleLimit).
		Scan(ctx, &ids); err != nil {
		return fmt.Errorf("sqlstore: sample leave_balances: %w", err)
	}
	return nil
}

func (s *BalanceStore) classifyError(err error, employeeID string) error {
	if isNoRows(err) {
		return core.EmployeeNotFoundError(employeeID)
	}
	message := strings.ToLower(err.Error())
	if strings.Contains(message, "no such table") ||
		(strings.Contains(message, "relation") && strings.Contains(message, "does not exist")) {
		return core.TableNotFoundError("leave_balances")
	}
	return err
}

func isNoRows(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sql.ErrNoRows) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no rows")
}

var _ core.RecordStore = (*BalanceStore)(nil)
var _ core.TableProber = (*BalanceStore)(nil)
