/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapper

import (
	"fmt"
	"log/slog"

	"github.com/suparena/rifcsharvest/errors"
	"github.com/suparena/rifcsharvest/mapping"
	"github.com/suparena/rifcsharvest/rifcs"
)

// Document is the flattened output for one registry object. Values are strings, except for
// optional-category renderings which are maps, slices or strings.
type Document map[string]any

// put writes value under field unless value is empty. A later write replaces an earlier one.
func (d Document) put(field, value string) {
	if value == "" {
		return
	}
	d[field] = value
}

// Mapper converts typed registry objects into Documents using a field-mapping table.
type Mapper struct {
	table      *mapping.Table
	categories mapping.Categories
	logger     *slog.Logger
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithCategories enables rendering of the given optional categories.
func WithCategories(c mapping.Categories) Option {
	return func(m *Mapper) {
		m.categories = c
	}
}

// WithLogger sets the logger used for recoverable field problems.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mapper) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a Mapper. A nil table maps nothing beyond the identity fields.
func New(table *mapping.Table, opts ...Option) *Mapper {
	if table == nil {
		table = mapping.NewTable(nil)
	}
	m := &Mapper{
		table:  table,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Categories returns the enabled optional categories.
func (m *Mapper) Categories() mapping.Categories {
	return m.categories
}

// Map converts a registry object into a Document holding group, key, originatingSource and
// the mapped fields of its class element.
func (m *Mapper) Map(obj *rifcs.RegistryObject) (Document, error) {
	v, err := obj.Variant()
	if err != nil {
		return nil, err
	}

	doc := Document{
		"group":             obj.Group,
		"key":               obj.Key,
		"originatingSource": obj.OriginatingSource,
	}
	if err := m.mapVariant(doc, v); err != nil {
		return nil, fmt.Errorf("registry object %q: %w", obj.Key, err)
	}
	return doc, nil
}

// MapElement converts a single class element into a Document.
func (m *Mapper) MapElement(v rifcs.Variant) (Document, error) {
	doc := Document{}
	if err := m.mapVariant(doc, v); err != nil {
		return nil, err
	}
	return doc, nil
}

func (m *Mapper) mapVariant(doc Document, v rifcs.Variant) error {
	if v.Element == nil {
		return errors.ErrUnsupportedElement
	}

	switch v.Class {
	case rifcs.ClassActivity, rifcs.ClassParty:
		m.mapCommon(doc, v.Element)
	case rifcs.ClassCollection:
		m.mapCommon(doc, v.Element)
		if m.categories.Has(mapping.CategoryCitationInfo) && len(v.CitationInfos) > 0 {
			doc["citationInfo"] = collapse(renderCitationInfos(v.CitationInfos))
		}
	case rifcs.ClassService:
		m.mapCommon(doc, v.Element)
		if m.categories.Has(mapping.CategoryAccessPolicy) && len(v.AccessPolicies) > 0 {
			doc["accessPolicy"] = collapse(renderAccessPolicies(v.AccessPolicies))
		}
	default:
		return errors.ErrUnsupportedElement
	}
	return nil
}

func (m *Mapper) mapCommon(doc Document, el *rifcs.Element) {
	doc.put("type", el.Type)

	m.mapIdentifiers(doc, el.Identifiers)
	m.mapNames(doc, el.Names)
	m.mapLocations(doc, el.Locations)
	m.mapRelatedObjects(doc, el.RelatedObjects)
	m.mapSubjects(doc, el.Subjects, el.Type == "person")
	m.mapDescriptions(doc, el.Descriptions)
	m.mapRelatedInfos(doc, el.RelatedInfos)
	m.mapExistenceDates(doc, el.ExistenceDates)

	if m.categories.Has(mapping.CategoryCoverage) && len(el.Coverages) > 0 {
		doc["coverage"] = collapse(renderCoverages(el.Coverages))
	}
	if m.categories.Has(mapping.CategoryRights) && len(el.Rights) > 0 {
		doc["right"] = collapse(renderRights(el.Rights))
	}
}
