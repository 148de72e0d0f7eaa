/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"fmt"
	"strings"

	"github.com/suparena/rifcsharvest/errors"
)

// Categories is the set of optional element categories the mapper renders.
type Categories uint8

const (
	CategoryCoverage Categories = 1 << iota
	CategoryRights
	CategoryCitationInfo
	CategoryAccessPolicy

	NoCategories  Categories = 0
	AllCategories            = CategoryCoverage | CategoryRights | CategoryCitationInfo | CategoryAccessPolicy
)

var categoryNames = []struct {
	name string
	cat  Categories
}{
	{"coverage", CategoryCoverage},
	{"rights", CategoryRights},
	{"citationInfo", CategoryCitationInfo},
	{"accessPolicy", CategoryAccessPolicy},
}

// ParseCategories converts configuration names into a Categories set. Names are matched
// case-insensitively; "all" enables every category.
func ParseCategories(names []string) (Categories, error) {
	var set Categories
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if strings.EqualFold(name, "all") {
			set |= AllCategories
			continue
		}
		found := false
		for _, c := range categoryNames {
			if strings.EqualFold(name, c.name) {
				set |= c.cat
				found = true
				break
			}
		}
		if !found {
			return NoCategories, errors.NewValidationError("optionalCategories", fmt.Sprintf("unknown category %q", raw))
		}
	}
	return set, nil
}

// Has reports whether every category in c is enabled.
func (s Categories) Has(c Categories) bool {
	return s&c == c
}

func (s Categories) String() string {
	if s == NoCategories {
		return "none"
	}
	var parts []string
	for _, c := range categoryNames {
		if s.Has(c.cat) {
			parts = append(parts, c.name)
		}
	}
	return strings.Join(parts, ",")
}
