//go:build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/rifcsharvest/errors"
	"github.com/suparena/rifcsharvest/storagemodels"
)

func getObjectStore(t *testing.T) *DynamodbDataStore[storagemodels.DigitalObject] {
	t.Helper()
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, proceeding with environment variables")
	}
	table := os.Getenv("AWS_DDB_TABLE")
	if table == "" {
		t.Skip("AWS_DDB_TABLE not set")
	}

	store, err := NewDynamodbDataStore[storagemodels.DigitalObject](context.Background(), Config{
		AccessKey: os.Getenv("AWS_ACCESS_KEY"),
		SecretKey: os.Getenv("AWS_SECRET_KEY"),
		Region:    os.Getenv("AWS_REGION"),
		Table:     table,
		Endpoint:  os.Getenv("AWS_DDB_ENDPOINT"),
	})
	require.NoError(t, err)
	return store
}

func TestDynamoDBObjectLifecycle(t *testing.T) {
	store := getObjectStore(t)
	ctx := context.Background()

	obj := storagemodels.NewDigitalObject("integration-test-object", time.Now())
	obj.SourceID = "metadata.json"
	obj.Payloads["metadata.json"] = storagemodels.Payload{ID: "metadata.json", Content: `{"data":{}}`}
	obj.Metadata["render-pending"] = "true"

	require.NoError(t, store.Put(ctx, obj))

	got, err := store.GetOne(ctx, obj.ID)
	require.NoError(t, err)
	assert.Equal(t, obj.SourceID, got.SourceID)
	assert.Equal(t, `{"data":{}}`, got.Payloads["metadata.json"].Content)
	assert.Equal(t, "true", got.Metadata["render-pending"])

	require.NoError(t, store.Delete(ctx, obj.ID))

	_, err = store.GetOne(ctx, obj.ID)
	assert.True(t, errors.IsNotFound(err))

	err = store.Delete(ctx, obj.ID)
	assert.True(t, errors.IsNotFound(err))
}
