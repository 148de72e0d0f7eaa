/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package rifcsharvest

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/rifcsharvest/mapper"
)

func TestObjectID(t *testing.T) {
	sum := md5.Sum([]byte("parties_groups.xmlMacquarie University1"))
	assert.Equal(t, hex.EncodeToString(sum[:]), ObjectID("parties_groups.xml", "Macquarie University", 1))

	assert.Len(t, ObjectID("a.xml", "g", 1), 32)
	assert.NotEqual(t, ObjectID("a.xml", "g", 1), ObjectID("a.xml", "g", 2))
	assert.NotEqual(t, ObjectID("a.xml", "g", 1), ObjectID("b.xml", "g", 1))
	assert.Equal(t, ObjectID("a.xml", "g", 7), ObjectID("a.xml", "g", 7))
}

func TestRecordID(t *testing.T) {
	assert.Equal(t, "rifcs:12", RecordID("rifcs:", 12))
	assert.Equal(t, "3", RecordID("", 3))
}

func TestMergeJSON(t *testing.T) {
	existing := map[string]json.RawMessage{
		"data":     json.RawMessage(`{"old":"x"}`),
		"workflow": json.RawMessage(`{"step":"review"}`),
	}
	body, err := mergeJSON(existing, mapper.Document{"key": "k1"}, map[string]string{MetadataIdentifier: "p1"}, "p")
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, map[string]any{
		"data":           map[string]any{"key": "k1"},
		"metadata":       map[string]any{"dc.identifier": "p1"},
		"recordIDPrefix": "p",
		"workflow":       map[string]any{"step": "review"},
	}, out)
	assert.Contains(t, string(body), "\n    \"data\"")

	again, err := mergeJSON(existing, mapper.Document{"key": "k1"}, map[string]string{MetadataIdentifier: "p1"}, "p")
	require.NoError(t, err)
	assert.Equal(t, body, again)
}
