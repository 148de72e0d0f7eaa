/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package objectstore exposes digital objects and their payloads on top of a DataStore.

A Storage hands out Object handles. Payload creation and updates are written through to the
backend at once; properties and payload content types are buffered on the handle and written
by Object.Close:

	obj, err := store.GetObject(ctx, oid)
	if errors.IsNotFound(err) {
	    obj, err = store.CreateObject(ctx, oid)
	}
	if err != nil {
	    return err
	}
	p, err := obj.CreateStoredPayload(ctx, "metadata.json", bytes.NewReader(body))
	...
	_ = p.SetContentType("application/json")
	_ = obj.SetProperty("render-pending", "true")
	return obj.Close(ctx)

Backends are opened by name with Open. The memory, sqlite, dynamodb, redis and postgres
backends are registered by default; RegisterBackend adds more.
*/
package objectstore
