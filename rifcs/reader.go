/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package rifcs

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Read decodes a RIF-CS document. Element matching ignores namespaces, so documents using the
// registryObjects default namespace and un-namespaced fixtures both decode.
func Read(r io.Reader) (*RegistryObjects, error) {
	var doc RegistryObjects
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode registry objects: %w", err)
	}
	return &doc, nil
}

// ReadFile opens and decodes the RIF-CS document at path.
func ReadFile(path string) (*RegistryObjects, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
