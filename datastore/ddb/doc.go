/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

The DynamodbDataStore supports:
  - Single-table design patterns
  - Macro-based key expansion (e.g., "OBJECT#{ID}")
  - Static or default-chain credentials and a custom endpoint for DynamoDB Local

Macro Expansion:
Keys are built from the index map registered for the record type. On Put the macros are
filled from the record's own attributes; on GetOne and Delete the string key replaces them:

	indexMap := map[string]string{
	    "PK": "OBJECT#{ID}",    // Becomes "OBJECT#4f1c..."
	    "SK": "OBJECT#{ID}",
	}

Integration tests run with -tags integration and read AWS_ACCESS_KEY, AWS_SECRET_KEY,
AWS_REGION, AWS_DDB_TABLE and AWS_DDB_ENDPOINT from the environment or a .env file.
*/
package ddb
