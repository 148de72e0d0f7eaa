/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package rifcsharvest harvests RIF-CS registry descriptions into a digital object store.

A harvest follows a read → map → upsert workflow:
  - Read: the whole RIF-CS file is decoded into the typed tree of package rifcs
  - Map: every registry object is flattened into a JSON document by package mapper, using
    the dotted path keys of a mapping.Table
  - Upsert: the document is merged into the payload of a digital object whose identifier is
    derived from the file name, the object group and its position in the file

The stored payload has the shape

	{
	    "data": { "group": ..., "key": ..., "originatingSource": ..., mapped fields },
	    "metadata": { "dc.identifier": "<recordIDPrefix><seq>" },
	    "recordIDPrefix": "<recordIDPrefix>"
	}

Re-harvesting replaces data and metadata wholesale and keeps any other top-level section.
Every harvested object gets the render-pending property so downstream renderers pick it up.

Basic Usage:

	store, _ := objectstore.Open(ctx, objectstore.Config{Backend: objectstore.BackendSQLite})
	defer store.Close()

	h, err := rifcsharvest.New(rifcsharvest.Config{
	    FileLocation:   "parties.xml",
	    RecordIDPrefix: "rifcs:",
	    Table:          table,
	}, store)
	if err != nil {
	    return err
	}
	results, err := h.Harvest(ctx)

Every fatal condition is an errors.HarvestError.
*/
package rifcsharvest
