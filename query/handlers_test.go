package query

import (
	"context"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-leave-lookup/core"
)

type stubLookupReader struct {
	lastRequest core.LookupRequest
	decoded     core.DecodedRecord
	err         error
}

func (s *stubLookupReader) Lookup(_ context.Context, req core.LookupRequest) (core.DecodedRecord, error) {
	s.lastRequest = req
	if s.err != nil {
		return nil, s.err
	}
	return s.decoded, nil
}

func TestGetLeaveBalanceQuery_DelegatesToReader(t *testing.T) {
	reader := &stubLookupReader{
		decoded: core.DecodedRecord{"empID": int64(12345), "balance": int64(15)},
	}
	q := NewGetLeaveBalanceQuery(reader)

	decoded, err := q.Query(context.Background(), GetLeaveBalanceMessage{EmployeeID: "12345"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if reader.lastRequest.EmployeeID != "12345" {
		t.Fatalf("expected reader to receive 12345, got %q", reader.lastRequest.EmployeeID)
	}
	if got := decoded["balance"]; got != int64(15) {
		t.Fatalf("expected balance 15, got %v", got)
	}
}

func TestGetLeaveBalanceQuery_RejectsInvalidMessage(t *testing.T) {
	reader := &stubLookupReader{}
	q := NewGetLeaveBalanceQuery(reader)

	_, err := q.Query(context.Background(), GetLeaveBalanceMessage{EmployeeID: "12a"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	want := "Invalid employee ID format: 12a. Employee ID must be numeric."
	if got := core.ErrorMessage(err); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if reader.lastRequest.EmployeeID != "" {
		t.Fatal("expected reader to stay untouched on invalid message")
	}
}

func TestGetLeaveBalanceQuery_PropagatesReaderError(t *testing.T) {
	q := NewGetLeaveBalanceQuery(&stubLookupReader{err: core.EmployeeNotFoundError("99999")})

	_, err := q.Query(context.Background(), GetLeaveBalanceMessage{EmployeeID: "99999"})
	if err == nil {
		t.Fatal("expected reader error")
	}
	if got := core.ErrorStatus(err); got != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", got)
	}
}

func TestGetLeaveBalanceMessage_Type(t *testing.T) {
	if got := (GetLeaveBalanceMessage{}).Type(); got != TypeGetLeaveBalance {
		t.Fatalf("unexpected message type %q", got)
	}
}

func TestGetLeaveBalanceMessage_ValidateReturnsRichError(t *testing.T) {
	err := (GetLeaveBalanceMessage{}).Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryValidation {
		t.Fatalf("expected validation category, got %q", rich.Category)
	}
	if rich.Message != "Employee ID not found in the request" {
		t.Fatalf("unexpected message %q", rich.Message)
	}
	if rich.TextCode != core.LookupErrorBadInput {
		t.Fatalf("expected %q text code, got %q", core.LookupErrorBadInput, rich.TextCode)
	}
	if rich.Code != http.StatusBadRequest {
		t.Fatalf("expected %d code, got %d", http.StatusBadRequest, rich.Code)
	}
	validation := rich.AllValidationErrors()
	if len(validation) == 0 {
		t.Fatal("expected validation errors in envelope")
	}
	if validation[0].Field != "employee_id" {
		t.Fatalf("expected employee_id validation field, got %q", validation[0].Field)
	}
}

func TestGetLeaveBalanceQuery_NilReaderReturnsRichError(t *testing.T) {
	var q *GetLeaveBalanceQuery
	_, err := q.Query(context.Background(), GetLeaveBalanceMessage{EmployeeID: "12345"})
	if err == nil {
		t.Fatal("expected dependency error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
	if rich.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d code, got %d", http.StatusInternalServerError, rich.Code)
	}
}
