package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryRecordStore is a mutex-guarded in-memory RecordStore used by tests
// and local runs.
type MemoryRecordStore struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{
		records: map[string]Record{},
	}
}

func (s *MemoryRecordStore) Put(_ context.Context, employeeID string, record Record) error {
	if s == nil {
		return fmt.Errorf("core: memory record store is not configured")
	}
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return fmt.Errorf("core: employee id is required")
	}

	s.mu.Lock()
	s.records[employeeID] = cloneRecord(record)
	s.mu.Unlock()

	return nil
}

func (s *MemoryRecordStore) GetRecord(_ context.Context, employeeID string) (Record, error) {
	if s == nil {
		return nil, fmt.Errorf("core: memory record store is not configured")
	}
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, fmt.Errorf("core: employee id is required")
	}

	s.mu.Lock()
	record, ok := s.records[employeeID]
	s.mu.Unlock()

	if !ok {
		return nil, EmployeeNotFoundError(employeeID)
	}
	return cloneRecord(record), nil
}

func cloneRecord(record Record) Record {
	if len(record) == 0 {
		return Record{}
	}
	copied := make(Record, len(record))
	for field, attr := range record {
		copied[field] = attr
	}
	return copied
}

var _ RecordStore = (*MemoryRecordStore)(nil)
