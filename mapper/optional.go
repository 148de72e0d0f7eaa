/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapper

import (
	"github.com/suparena/rifcsharvest/rifcs"
)

// collapse returns the only element of a one-element list, otherwise the list itself.
func collapse(items []any) any {
	if len(items) == 1 {
		return items[0]
	}
	return items
}

// object is a rendering helper that drops empty string values.
type object map[string]any

func (o object) set(key, value string) object {
	if value != "" {
		o[key] = value
	}
	return o
}

func (o object) setList(key string, items []any) object {
	if len(items) > 0 {
		o[key] = collapse(items)
	}
	return o
}

func renderCoverages(coverages []rifcs.Coverage) []any {
	out := make([]any, 0, len(coverages))
	for _, c := range coverages {
		temporals := make([]any, 0, len(c.Temporals))
		for _, t := range c.Temporals {
			temporals = append(temporals, renderTemporal(t))
		}
		out = append(out, map[string]any(object{}.
			setList("temporal", temporals).
			setList("spatial", renderSpatials(c.Spatials))))
	}
	return out
}

func renderTemporal(t rifcs.Temporal) map[string]any {
	dates := make([]any, 0, len(t.Dates))
	for _, d := range t.Dates {
		dates = append(dates, map[string]any(object{}.
			set("type", d.Type).
			set("dateFormat", d.DateFormat).
			set("value", d.Value)))
	}
	texts := make([]any, 0, len(t.Texts))
	for _, text := range t.Texts {
		texts = append(texts, text)
	}
	return object{}.setList("date", dates).setList("text", texts)
}

func renderSpatials(spatials []rifcs.Spatial) []any {
	out := make([]any, 0, len(spatials))
	for _, s := range spatials {
		out = append(out, map[string]any(object{}.set("type", s.Type).set("value", s.Value)))
	}
	return out
}

func renderRights(rights []rifcs.Right) []any {
	out := make([]any, 0, len(rights))
	for _, r := range rights {
		o := object{}
		if r.RightsStatement != nil {
			o["rightsStatement"] = map[string]any(object{}.
				set("rightsUri", r.RightsStatement.RightsURI).
				set("value", r.RightsStatement.Value))
		}
		if r.Licence != nil {
			o["licence"] = renderTypedRights(r.Licence)
		}
		if r.AccessRights != nil {
			o["accessRights"] = renderTypedRights(r.AccessRights)
		}
		out = append(out, map[string]any(o))
	}
	return out
}

func renderTypedRights(r *rifcs.RightsTypedInfo) map[string]any {
	return object{}.set("type", r.Type).set("rightsUri", r.RightsURI).set("value", r.Value)
}

func renderCitationInfos(infos []rifcs.CitationInfo) []any {
	out := make([]any, 0, len(infos))
	for _, ci := range infos {
		o := object{}
		if ci.FullCitation != nil {
			o["fullCitation"] = map[string]any(object{}.
				set("style", ci.FullCitation.Style).
				set("value", ci.FullCitation.Value))
		}
		if ci.CitationMetadata != nil {
			o["citationMetadata"] = renderCitationMetadata(ci.CitationMetadata)
		}
		out = append(out, map[string]any(o))
	}
	return out
}

func renderCitationMetadata(cm *rifcs.CitationMetadata) map[string]any {
	contributors := make([]any, 0, len(cm.Contributors))
	for _, c := range cm.Contributors {
		contributors = append(contributors, renderContributor(c))
	}
	dates := make([]any, 0, len(cm.Dates))
	for _, d := range cm.Dates {
		dates = append(dates, map[string]any(object{}.set("type", d.Type).set("value", d.Value)))
	}

	o := object{}
	if cm.Identifier.Value != "" {
		o["identifier"] = map[string]any(object{}.
			set("type", cm.Identifier.Type).
			set("value", cm.Identifier.Value))
	}
	return o.
		setList("contributor", contributors).
		set("title", cm.Title).
		set("edition", cm.Edition).
		set("publisher", cm.Publisher).
		set("placePublished", cm.PlacePublished).
		setList("date", dates).
		set("url", cm.URL).
		set("context", cm.Context)
}

// renderContributor writes a lone untyped name part as a plain string.
func renderContributor(c rifcs.Contributor) map[string]any {
	o := object{}.set("seq", c.Seq)
	if len(c.NameParts) == 1 && c.NameParts[0].Type == "" {
		return o.set("namePart", c.NameParts[0].Value)
	}
	parts := make([]any, 0, len(c.NameParts))
	for _, np := range c.NameParts {
		parts = append(parts, map[string]any(object{}.set("type", np.Type).set("value", np.Value)))
	}
	return o.setList("namePart", parts)
}

func renderAccessPolicies(policies []rifcs.AccessPolicy) []any {
	out := make([]any, 0, len(policies))
	for _, p := range policies {
		out = append(out, p.Value)
	}
	return out
}
