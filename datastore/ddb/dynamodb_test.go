/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/rifcsharvest/errors"
	"github.com/suparena/rifcsharvest/storagemodels"
)

func TestExpandMacros(t *testing.T) {
	obj := storagemodels.DigitalObject{ID: "4f1c", SourceID: "metadata.json"}

	expanded, err := expandMacros(storagemodels.DigitalObjectIndexMap, obj)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"PK": "OBJECT#4f1c", "SK": "OBJECT#4f1c"}, expanded)

	expanded, err = expandMacros(map[string]string{"PK": "{Missing}", "SK": "{SourceID}"}, obj)
	require.NoError(t, err)
	assert.Equal(t, "", expanded["PK"])
	assert.Equal(t, "metadata.json", expanded["SK"])
}

func TestExpandStringKey(t *testing.T) {
	expanded := expandStringKey(storagemodels.DigitalObjectIndexMap, "4f1c")
	assert.Equal(t, "OBJECT#4f1c", expanded["PK"])
	assert.Equal(t, "OBJECT#4f1c", expanded["SK"])

	// "$1" must not be treated as a regexp group reference
	expanded = expandStringKey(map[string]string{"PK": "X#{ID}", "SK": "X#{ID}"}, "a$1")
	assert.Equal(t, "X#a$1", expanded["PK"])
}

func TestBuildKeyFromExpanded(t *testing.T) {
	key, err := buildKeyFromExpanded(map[string]string{"PK": "OBJECT#1", "SK": "OBJECT#1"})
	require.NoError(t, err)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "OBJECT#1"}, key["PK"])

	_, err = buildKeyFromExpanded(map[string]string{"PK": "OBJECT#1", "SK": ""})
	assert.True(t, errors.IsValidationError(err))

	_, err = buildKeyFromExpanded(map[string]string{"PK": "OBJECT#1"})
	assert.True(t, errors.IsValidationError(err))
}

type unmappedRecord struct{ ID string }

func TestNewDynamodbDataStore_Validation(t *testing.T) {
	_, err := NewDynamodbDataStore[storagemodels.DigitalObject](context.Background(), Config{Region: "us-east-1"})
	assert.True(t, errors.IsValidationError(err))

	_, err = NewDynamodbDataStore[unmappedRecord](context.Background(), Config{Region: "us-east-1", Table: "objects"})
	assert.ErrorIs(t, err, errors.ErrNoIndexMap)
}
