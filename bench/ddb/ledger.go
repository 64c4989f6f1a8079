// Package ddb records benchmark runs in a DynamoDB table.
//
// Table schema:
//   - Partition key: host (string)
//   - Sort key: run_id (string), sortable by creation time
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name linsearch-runs \
//	  --attribute-definitions AttributeName=host,AttributeType=S AttributeName=run_id,AttributeType=S \
//	  --key-schema AttributeName=host,KeyType=HASH AttributeName=run_id,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
package ddb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/linsearch/bench"
)

// Client is the subset of the DynamoDB API the ledger uses.
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Ledger implements bench.Ledger on DynamoDB.
type Ledger struct {
	client Client
	table  string
}

var _ bench.Ledger = (*Ledger)(nil)

// New creates a Ledger using the default AWS credential chain.
func New(ctx context.Context, table string, region string) (*Ledger, error) {
	var optFns []func(*config.LoadOptions) error
	if region != "" {
		optFns = append(optFns, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("ddb: load aws config: %w", err)
	}
	return NewLedger(dynamodb.NewFromConfig(cfg), table), nil
}

// NewLedger creates a Ledger with an existing client.
func NewLedger(client Client, table string) *Ledger {
	return &Ledger{client: client, table: table}
}

// Record writes e. The put is conditional, so a run is recorded at most once.
func (l *Ledger) Record(ctx context.Context, e bench.Entry) error {
	_, err := l.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(l.table),
		Item:                marshalEntry(e),
		ConditionExpression: aws.String("attribute_not_exists(run_id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return fmt.Errorf("ddb: %s/%s: %w", e.Host, e.RunID, bench.ErrDuplicateRun)
		}
		return fmt.Errorf("ddb: put item: %w", err)
	}
	return nil
}

// Latest returns the run with the greatest ID for host.
func (l *Ledger) Latest(ctx context.Context, host string) (bench.Entry, error) {
	resp, err := l.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(l.table),
		KeyConditionExpression: aws.String("host = :host"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":host": &types.AttributeValueMemberS{Value: host},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return bench.Entry{}, fmt.Errorf("ddb: query: %w", err)
	}
	if len(resp.Items) == 0 {
		return bench.Entry{}, bench.ErrNoRuns
	}
	return unmarshalEntry(resp.Items[0])
}

func marshalEntry(e bench.Entry) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"host":       &types.AttributeValueMemberS{Value: e.Host},
		"run_id":     &types.AttributeValueMemberS{Value: e.RunID},
		"created_at": &types.AttributeValueMemberS{Value: e.CreatedAt.UTC().Format(time.RFC3339Nano)},
		"isa":        &types.AttributeValueMemberS{Value: e.ISA},
		"results":    &types.AttributeValueMemberN{Value: strconv.Itoa(e.Results)},
		"failures":   &types.AttributeValueMemberN{Value: strconv.Itoa(e.Failures)},
		"blob":       &types.AttributeValueMemberS{Value: e.Blob},
	}
}

func unmarshalEntry(item map[string]types.AttributeValue) (bench.Entry, error) {
	var (
		e   bench.Entry
		err error
	)
	str := func(key string) string {
		if err != nil {
			return ""
		}
		v, ok := item[key].(*types.AttributeValueMemberS)
		if !ok {
			err = fmt.Errorf("ddb: invalid %s attribute", key)
			return ""
		}
		return v.Value
	}
	num := func(key string) int {
		if err != nil {
			return 0
		}
		v, ok := item[key].(*types.AttributeValueMemberN)
		if !ok {
			err = fmt.Errorf("ddb: invalid %s attribute", key)
			return 0
		}
		n, perr := strconv.Atoi(v.Value)
		if perr != nil {
			err = fmt.Errorf("ddb: parse %s: %w", key, perr)
		}
		return n
	}

	e.Host = str("host")
	e.RunID = str("run_id")
	created := str("created_at")
	e.ISA = str("isa")
	e.Results = num("results")
	e.Failures = num("failures")
	e.Blob = str("blob")
	if err != nil {
		return bench.Entry{}, err
	}

	e.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return bench.Entry{}, fmt.Errorf("ddb: parse created_at: %w", err)
	}
	return e, nil
}
