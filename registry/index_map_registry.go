/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/rifcsharvest/errors"
)

// The index map registry associates stored record types with their DynamoDB key templates.

var (
	indexMapRegistry = make(map[reflect.Type]map[string]string)
	mu               sync.RWMutex
)

// RegisterIndexMap associates record type T with a key template map (PK, SK). The map is copied.
func RegisterIndexMap[T any](idxMap map[string]string) {
	t := reflect.TypeOf((*T)(nil)).Elem()

	cp := make(map[string]string, len(idxMap))
	for k, v := range idxMap {
		cp[k] = v
	}

	mu.Lock()
	defer mu.Unlock()
	indexMapRegistry[t] = cp
}

// GetIndexMap retrieves the index map for type T, if any.
func GetIndexMap[T any]() (map[string]string, bool) {
	t := reflect.TypeOf((*T)(nil)).Elem()

	mu.RLock()
	defer mu.RUnlock()
	m, ok := indexMapRegistry[t]
	return m, ok
}

// LookupIndexMap is GetIndexMap returning errors.ErrNoIndexMap when T is unregistered.
func LookupIndexMap[T any]() (map[string]string, error) {
	m, ok := GetIndexMap[T]()
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrNoIndexMap, reflect.TypeOf((*T)(nil)).Elem())
	}
	return m, nil
}

// RegisteredTypes lists the registered type names, sorted.
func RegisteredTypes() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(indexMapRegistry))
	for t := range indexMapRegistry {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}
