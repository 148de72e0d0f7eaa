//go:build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/suparena/rifcsharvest/errors"
	"github.com/suparena/rifcsharvest/storagemodels"
)

func TestDataStore_Lifecycle(t *testing.T) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("rifcs"),
		tcpostgres.WithUsername("rifcs"),
		tcpostgres.WithPassword("rifcs"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, container)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	store, err := New[storagemodels.DigitalObject](ctx, pool, "digital_objects", storagemodels.ObjectKey)
	require.NoError(t, err)

	obj := storagemodels.NewDigitalObject("abc", time.Now())
	obj.Payloads["metadata.json"] = storagemodels.Payload{ID: "metadata.json", Content: `{"data":{"ID":"1"}}`}
	require.NoError(t, store.Put(ctx, obj))

	obj.Metadata["render-pending"] = "true"
	require.NoError(t, store.Put(ctx, obj))

	got, err := store.GetOne(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, obj, *got)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.GetOne(ctx, "abc")
	assert.True(t, errors.IsNotFound(err))
	assert.True(t, errors.IsNotFound(store.Delete(ctx, "abc")))
}

func TestNew_InvalidTable(t *testing.T) {
	_, err := New[storagemodels.DigitalObject](context.Background(), nil, "bad-name", storagemodels.ObjectKey)
	assert.True(t, errors.IsValidationError(err))
}
