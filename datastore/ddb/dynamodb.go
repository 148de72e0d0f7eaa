/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/rifcsharvest/errors"
	"github.com/suparena/rifcsharvest/registry"
)

// Config holds the connection settings for a DynamoDB table. Empty credentials fall back to
// the default AWS credential chain. Endpoint overrides the service URL (DynamoDB Local).
type Config struct {
	AccessKey string
	SecretKey string
	Region    string
	Table     string
	Endpoint  string
}

// DynamodbDataStore implements datastore.DataStore[T] on a single DynamoDB table.
type DynamodbDataStore[T any] struct {
	client    *sdk.Client
	tableName string
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros fills every {Field} macro of the index map from the marshalled record.
func expandMacros(indexMap map[string]string, keysInput any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(keysInput)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keysInput: %w", err)
	}

	res := make(map[string]string, len(indexMap))

	for fieldName, template := range indexMap {
		expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			key := strings.Trim(macro, "{}")

			val, ok := av[key]
			if !ok {
				return ""
			}

			switch tv := val.(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			default:
				// NULL, binary, sets and documents cannot appear in a key
				return ""
			}
		})
		res[fieldName] = expanded
	}

	return res, nil
}

// NewDynamoDBClient initializes a DynamoDB client from cfg.
func NewDynamoDBClient(ctx context.Context, cfg Config) (*sdk.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	slog.Debug("DynamoDB client initialized", "table", cfg.Table, "region", cfg.Region, "endpoint", cfg.Endpoint)
	return client, nil
}

// NewDynamodbDataStore constructs a new DynamodbDataStore for type T. T must have an index map
// registered with the registry package.
func NewDynamodbDataStore[T any](ctx context.Context, cfg Config) (*DynamodbDataStore[T], error) {
	if cfg.Table == "" {
		return nil, errors.NewValidationError("table", "DynamoDB table name is required")
	}
	if _, err := registry.LookupIndexMap[T](); err != nil {
		return nil, err
	}

	client, err := NewDynamoDBClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	return NewWithClient[T](client, cfg.Table), nil
}

// NewWithClient wraps an existing client.
func NewWithClient[T any](client *sdk.Client, tableName string) *DynamodbDataStore[T] {
	return &DynamodbDataStore[T]{
		client:    client,
		tableName: tableName,
	}
}

// GetOne retrieves a single item using a string key.
func (d *DynamodbDataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	keyMap, err := d.keyFor(key)
	if err != nil {
		return nil, err
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, errors.NewNotFoundError(typeName[T](), key)
	}

	result := new(T)
	if err := attributevalue.UnmarshalMap(out.Item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// Put stores entity, populating PK and SK from its index map macros.
func (d *DynamodbDataStore[T]) Put(ctx context.Context, entity T) error {
	indexMap, err := registry.LookupIndexMap[T]()
	if err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	expanded, err := expandMacros(indexMap, entity)
	if err != nil {
		return err
	}
	if _, err := buildKeyFromExpanded(expanded); err != nil {
		return err
	}

	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Delete removes an item using a string key.
func (d *DynamodbDataStore[T]) Delete(ctx context.Context, key string) error {
	keyMap, err := d.keyFor(key)
	if err != nil {
		return err
	}

	out, err := d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName:    &d.tableName,
		Key:          keyMap,
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	if len(out.Attributes) == 0 {
		return errors.NewNotFoundError(typeName[T](), key)
	}
	return nil
}

func (d *DynamodbDataStore[T]) keyFor(key string) (map[string]types.AttributeValue, error) {
	indexMap, err := registry.LookupIndexMap[T]()
	if err != nil {
		return nil, err
	}

	keyMap, err := buildKeyFromExpanded(expandStringKey(indexMap, key))
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}
	return keyMap, nil
}

// buildKeyFromExpanded builds a DynamoDB key. The expanded map must hold non-empty PK and SK.
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded["PK"]
	sk, okSK := expanded["SK"]

	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, errors.NewValidationError("PK/SK", "expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}

// expandStringKey replaces every macro in the index map values with key. Index maps used with
// string keys carry exactly one macro per template.
func expandStringKey(indexMap map[string]string, key string) map[string]string {
	expanded := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		expanded[field] = macroPattern.ReplaceAllLiteralString(template, key)
	}
	return expanded
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
