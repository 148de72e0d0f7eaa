/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package mapper flattens RIF-CS class elements into JSON-ready documents.

Every sub-element is turned into a path key (see package mapping) and looked up in the
field-mapping table. Unmapped paths and empty values are dropped, and a later value for the
same output field replaces an earlier one, with two exceptions:

  - Subjects of a "person" are all kept, as <field>_1, <field>_2, ... per field.
    Subjects of anything else keep only the first value per field.
  - Existence dates are summarised to the year of the earliest start and the latest end.

Coverage, rights, citation info and access policies are only rendered when enabled with
WithCategories. They are written under "coverage", "right", "citationInfo" and "accessPolicy"
as a single value when there is one entry and as an array otherwise.

	m := mapper.New(table, mapper.WithCategories(mapping.AllCategories))
	doc, err := m.Map(&objects.RegistryObjects[0])
*/
package mapper
