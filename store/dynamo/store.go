// Package dynamostore implements the record store against DynamoDB. It
// performs exactly one authoritative point read per lookup and classifies
// every failure into the lookup error taxonomy.
package dynamostore

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-leave-lookup/core"
)

// API is the DynamoDB surface the store consumes. *dynamodb.Client
// satisfies it.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type Store struct {
	client       API
	table        string
	keyAttribute string
	logger       core.Logger
}

func NewStore(client API, table TableOptions) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("dynamostore: dynamodb client is required")
	}
	name := strings.TrimSpace(table.Name)
	if name == "" {
		return nil, fmt.Errorf("dynamostore: table name is required")
	}
	keyAttribute := strings.TrimSpace(table.KeyAttribute)
	if keyAttribute == "" {
		keyAttribute = "empID"
	}
	return &Store{
		client:       client,
		table:        name,
		keyAttribute: keyAttribute,
		logger:       glog.Ensure(table.Logger),
	}, nil
}

type TableOptions struct {
	Name         string
	KeyAttribute string
	Logger       core.Logger
}

// GetRecord performs the authoritative point read. The key attribute is
// numeric-typed on the wire; a missing item is an error, not an empty
// record.
func (s *Store) GetRecord(ctx context.Context, employeeID string) (core.Record, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("dynamostore: store is not configured")
	}
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, fmt.Errorf("dynamostore: employee id is required")
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			s.keyAttribute: &types.AttributeValueMemberN{Value: employeeID},
		},
	})
	if err != nil {
		return nil, s.classifyError(err)
	}
	if len(out.Item) == 0 {
		return nil, core.EmployeeNotFoundError(employeeID)
	}

	return recordFromItem(out.Item), nil
}

// ProbeTable runs the diagnostic describe + bounded scan. The caller
// swallows any error; nothing here feeds into a lookup outcome.
func (s *Store) ProbeTable(ctx context.Context, sampleLimit int) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("dynamostore: store is not configured")
	}
	if sampleLimit <= 0 {
		sampleLimit = 5
	}

	if _, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	}); err != nil {
		return fmt.Errorf("dynamostore: describe table %s: %w", s.table, err)
	}

	out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
		Limit:     aws.Int32(int32(sampleLimit)),
	})
	if err != nil {
		return fmt.Errorf("dynamostore: sample scan %s: %w", s.table, err)
	}
	s.logger.Info("table probe sampled records", "table", s.table, "count", out.Count)
	return nil
}

func recordFromItem(item map[string]types.AttributeValue) core.Record {
	record := make(core.Record, len(item))
	for field, value := range item {
		switch typed := value.(type) {
		case *types.AttributeValueMemberN:
			record[field] = core.NumberAttribute(typed.Value)
		case *types.AttributeValueMemberS:
			record[field] = core.StringAttribute(typed.Value)
		case *types.AttributeValueMemberBOOL:
			record[field] = core.BoolAttribute(typed.Value)
		}
	}
	return record
}

var _ core.RecordStore = (*Store)(nil)
var _ core.TableProber = (*Store)(nil)
