/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package rifcs holds the typed element tree for RIF-CS 1.3 registry descriptions and decodes it
from XML.

A document is a list of RegistryObject values. Each one carries a group, a key, an
originating source and exactly one class element: activity, collection, party or service.
RegistryObject.Variant returns that element as a tagged Variant so callers can switch on
Class instead of probing four optional fields:

	doc, err := rifcs.ReadFile("people.xml")
	if err != nil {
		return err
	}
	for i := range doc.RegistryObjects {
		v, err := doc.RegistryObjects[i].Variant()
		if err != nil {
			return err // errors.ErrUnsupportedElement
		}
		switch v.Class {
		case rifcs.ClassCollection:
			// v.CitationInfos
		case rifcs.ClassService:
			// v.AccessPolicies
		}
	}

Only the sub-elements the harvester maps are modelled. Schema validation is not performed.
*/
package rifcs
