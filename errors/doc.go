/*
Package errors provides semantic error types for the RIF-CS harvester and its object stores.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound           = errors.New("entity not found")
	    ErrAlreadyExists      = errors.New("entity already exists")
	    ErrInvalidInput       = errors.New("invalid input")
	    ErrUnsupportedElement = errors.New("wrong element found, ...")
	    ErrHarvest            = errors.New("harvest failed")
	)

Usage:

	obj, err := storage.GetObject(ctx, oid)
	if err != nil {
	    if errors.IsNotFound(err) {
	        // brand new object
	        obj, err = storage.CreateObject(ctx, oid)
	    }
	    ...
	}

	// Every fatal harvester condition is a HarvestError
	ids, err := h.ObjectIDList(ctx)
	if errors.IsHarvestError(err) {
	    ...
	}

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
