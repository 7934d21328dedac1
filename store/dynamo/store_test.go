package dynamostore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	smithy "github.com/aws/smithy-go"

	"github.com/goliatone/go-leave-lookup/core"
)

type fakeDynamo struct {
	getItemOut   *dynamodb.GetItemOutput
	getItemErr   error
	describeErr  error
	scanOut      *dynamodb.ScanOutput
	scanErr      error
	getItemCalls []*dynamodb.GetItemInput
	scanCalls    []*dynamodb.ScanInput
}

func (f *fakeDynamo) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.getItemCalls = append(f.getItemCalls, params)
	if f.getItemErr != nil {
		return nil, f.getItemErr
	}
	if f.getItemOut != nil {
		return f.getItemOut, nil
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamo) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	return &dynamodb.DescribeTableOutput{}, nil
}

func (f *fakeDynamo) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scanCalls = append(f.scanCalls, params)
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	if f.scanOut != nil {
		return f.scanOut, nil
	}
	return &dynamodb.ScanOutput{}, nil
}

type apiError struct {
	code string
}

func (e *apiError) Error() string                 { return e.code }
func (e *apiError) ErrorCode() string             { return e.code }
func (e *apiError) ErrorMessage() string          { return e.code }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

func newStore(t *testing.T, client API) *Store {
	t.Helper()
	store, err := NewStore(client, TableOptions{Name: "leaveBalance", KeyAttribute: "empID"})
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	return store
}

func TestStore_GetRecordReadsNumericKey(t *testing.T) {
	client := &fakeDynamo{
		getItemOut: &dynamodb.GetItemOutput{
			Item: map[string]types.AttributeValue{
				"empID":   &types.AttributeValueMemberN{Value: "12345"},
				"balance": &types.AttributeValueMemberN{Value: "15"},
				"name":    &types.AttributeValueMemberS{Value: "Ana"},
				"active":  &types.AttributeValueMemberBOOL{Value: true},
			},
		},
	}
	store := newStore(t, client)

	record, err := store.GetRecord(context.Background(), "12345")
	if err != nil {
		t.Fatalf("GetRecord returned error: %v", err)
	}

	if len(client.getItemCalls) != 1 {
		t.Fatalf("expected a single GetItem call, got %d", len(client.getItemCalls))
	}
	input := client.getItemCalls[0]
	if got := *input.TableName; got != "leaveBalance" {
		t.Fatalf("expected table leaveBalance, got %s", got)
	}
	key, ok := input.Key["empID"].(*types.AttributeValueMemberN)
	if !ok {
		t.Fatalf("expected numeric key attribute, got %T", input.Key["empID"])
	}
	if key.Value != "12345" {
		t.Fatalf("expected key 12345, got %s", key.Value)
	}

	if got := record["balance"]; got.Type != core.AttributeTypeNumber || got.Value != "15" {
		t.Fatalf("unexpected balance attribute: %+v", got)
	}
	if got := record["name"]; got.Type != core.AttributeTypeString || got.Value != "Ana" {
		t.Fatalf("unexpected name attribute: %+v", got)
	}
	if got := record["active"]; got.Type != core.AttributeTypeBool || got.Value != "true" {
		t.Fatalf("unexpected active attribute: %+v", got)
	}
}

func TestStore_GetRecordMissingItem(t *testing.T) {
	store := newStore(t, &fakeDynamo{})

	_, err := store.GetRecord(context.Background(), "99999")
	if err == nil {
		t.Fatal("expected error for missing item")
	}
	if got := core.ErrorStatus(err); got != 404 {
		t.Fatalf("expected 404, got %d", got)
	}
	want := "Employee with ID 99999 not found in the leave balance database"
	if got := core.ErrorMessage(err); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestStore_GetRecordClassifiesFailures(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "table missing",
			err:         &types.ResourceNotFoundException{},
			wantStatus:  404,
			wantMessage: "DynamoDB table leaveBalance not found",
		},
		{
			name:        "throughput exceeded",
			err:         &types.ProvisionedThroughputExceededException{},
			wantStatus:  429,
			wantMessage: "Database is currently experiencing high traffic. Please try again later.",
		},
		{
			name:        "request limit exceeded",
			err:         &types.RequestLimitExceeded{},
			wantStatus:  429,
			wantMessage: "Database is currently experiencing high traffic. Please try again later.",
		},
		{
			name:        "access denied",
			err:         &apiError{code: "AccessDeniedException"},
			wantStatus:  403,
			wantMessage: "The function does not have permission to access the leave balance database",
		},
		{
			name:        "throttling exception",
			err:         &apiError{code: "ThrottlingException"},
			wantStatus:  429,
			wantMessage: "Database is currently experiencing high traffic. Please try again later.",
		},
		{
			name:        "unclassified",
			err:         errors.New("connection reset"),
			wantStatus:  500,
			wantMessage: "Failed to retrieve employee data: connection reset",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newStore(t, &fakeDynamo{getItemErr: tc.err})

			_, err := store.GetRecord(context.Background(), "12345")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := core.ErrorStatus(err); got != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, got)
			}
			if got := core.ErrorMessage(err); got != tc.wantMessage {
				t.Fatalf("expected %q, got %q", tc.wantMessage, got)
			}
		})
	}
}

func TestStore_ProbeTableBoundsScan(t *testing.T) {
	client := &fakeDynamo{scanOut: &dynamodb.ScanOutput{Count: 3}}
	store := newStore(t, client)

	if err := store.ProbeTable(context.Background(), 5); err != nil {
		t.Fatalf("ProbeTable returned error: %v", err)
	}
	if len(client.scanCalls) != 1 {
		t.Fatalf("expected a single Scan call, got %d", len(client.scanCalls))
	}
	if got := *client.scanCalls[0].Limit; got != 5 {
		t.Fatalf("expected scan limit 5, got %d", got)
	}
}

func TestStore_ProbeTableDefaultsLimit(t *testing.T) {
	client := &fakeDynamo{}
	store := newStore(t, client)

	if err := store.ProbeTable(context.Background(), 0); err != nil {
		t.Fatalf("ProbeTable returned error: %v", err)
	}
	if got := *client.scanCalls[0].Limit; got != 5 {
		t.Fatalf("expected default scan limit 5, got %d", got)
	}
}

func TestStore_ProbeTableReportsFailures(t *testing.T) {
	store := newStore(t, &fakeDynamo{describeErr: fmt.Errorf("describe refused")})

	if err := store.ProbeTable(context.Background(), 5); err == nil {
		t.Fatal("expected describe failure to surface")
	}

	store = newStore(t, &fakeDynamo{scanErr: fmt.Errorf("scan refused")})
	if err := store.ProbeTable(context.Background(), 5); err == nil {
		t.Fatal("expected scan failure to surface")
	}
}

func TestNewStore_Validation(t *testing.T) {
	if _, err := NewStore(nil, TableOptions{Name: "leaveBalance"}); err == nil {
		t.Fatal("expected error for nil client")
	}
	if _, err := NewStore(&fakeDynamo{}, TableOptions{}); err == nil {
		t.Fatal("expected error for empty table name")
	}

	store, err := NewStore(&fakeDynamo{}, TableOptions{Name: "leaveBalance"})
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	if store.keyAttribute != "empID" {
		t.Fatalf("expected default key attribute empID, got %s", store.keyAttribute)
	}
}
