/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package storagemodels defines the records persisted by the datastore backends.

DigitalObject:
A stored object with named payloads and string properties:

	obj := storagemodels.NewDigitalObject(oid, time.Now())
	obj.Payloads["metadata.json"] = storagemodels.Payload{
	    ID:          "metadata.json",
	    ContentType: "application/json",
	    Content:     `{"data": {}}`,
	}
	obj.Metadata["render-pending"] = "true"

Importing the package registers DigitalObjectIndexMap, so DynamoDB keys are laid out as
PK = SK = "OBJECT#<id>". Timestamps are strfmt date-time strings.
*/
package storagemodels
