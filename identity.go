/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package rifcsharvest

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
)

// ObjectID derives the storage identifier of the seq-th registry object of a file. The same
// file harvested twice yields the same identifiers, so a re-harvest updates rather than
// duplicates.
func ObjectID(filename, group string, seq int) string {
	sum := md5.Sum([]byte(filename + group + strconv.Itoa(seq)))
	return hex.EncodeToString(sum[:])
}

// RecordID is the dc.identifier written into the payload metadata.
func RecordID(prefix string, seq int) string {
	return prefix + strconv.Itoa(seq)
}
