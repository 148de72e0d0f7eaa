/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package registry maps stored record types to their DynamoDB key templates.

Index Map Registry:
Associates Go types with key patterns whose {Field} macros are expanded from the record:

	registry.RegisterIndexMap[storagemodels.DigitalObject](map[string]string{
	    "PK": "OBJECT#{ID}",
	    "SK": "OBJECT#{ID}",
	})

The registry is thread-safe and is populated from init() functions.
*/
package registry
