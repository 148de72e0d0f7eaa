/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapper

import (
	"strconv"

	"github.com/suparena/rifcsharvest/mapping"
	"github.com/suparena/rifcsharvest/rifcs"
)

// mapPath writes value under the field mapped to path, if any.
func (m *Mapper) mapPath(doc Document, path, value string) {
	if field, ok := m.table.Lookup(path); ok {
		doc.put(field, value)
	}
}

func (m *Mapper) mapIdentifiers(doc Document, ids []rifcs.Identifier) {
	for _, id := range ids {
		m.mapPath(doc, mapping.Path("identifier", id.Type), id.Value)
	}
}

func (m *Mapper) mapNames(doc Document, names []rifcs.Name) {
	for _, name := range names {
		base := mapping.Path("name", name.Type)
		for _, part := range name.NameParts {
			path := base
			if part.Type != "" {
				path = mapping.Path(base, part.Type)
			}
			m.mapPath(doc, path, part.Value)
		}
	}
}

func (m *Mapper) mapLocations(doc Document, locations []rifcs.Location) {
	for _, loc := range locations {
		for _, addr := range loc.Addresses {
			for _, e := range addr.Electronics {
				if e.Type == "" {
					continue
				}
				m.mapPath(doc, mapping.Path("location", "address", "electronic", e.Type), e.Value)
			}
			for _, p := range addr.Physicals {
				for _, part := range p.AddressParts {
					m.mapPath(doc, mapping.Path("location", "address", "physical", part.Type), part.Value)
				}
			}
		}
	}
}

func (m *Mapper) mapRelatedObjects(doc Document, related []rifcs.RelatedObject) {
	for _, ro := range related {
		for _, rel := range ro.Relations {
			m.mapPath(doc, mapping.Path("relatedObject", rel.Type), ro.Key)
		}
	}
}

// mapSubjects keeps every subject of a person as <field>_<n>, where n is the 1-based position of
// the subject in the element's subject list. For any other classification only the first
// mapped subject per field is considered, even when its value is empty.
func (m *Mapper) mapSubjects(doc Document, subjects []rifcs.Subject, person bool) {
	seen := make(map[string]bool)
	for i, s := range subjects {
		field, ok := m.table.Lookup(mapping.Path("subject", s.Type))
		if !ok {
			continue
		}
		if person {
			doc.put(field+"_"+strconv.Itoa(i+1), s.Value)
			continue
		}
		if !seen[field] {
			seen[field] = true
			doc.put(field, s.Value)
		}
	}
}

func (m *Mapper) mapDescriptions(doc Document, descriptions []rifcs.Description) {
	for _, d := range descriptions {
		m.mapPath(doc, mapping.Path("description", d.Type), d.Value)
	}
}

func (m *Mapper) mapRelatedInfos(doc Document, infos []rifcs.RelatedInfo) {
	for _, ri := range infos {
		path := mapping.Path("relatedInfo", ri.Type)
		if ri.Title != "" {
			path = mapping.Path(path, ri.Title)
		}
		m.mapPath(doc, path, ri.Identifier.Value)
	}
}
