/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mapping holds the field-mapping table that turns RIF-CS path keys into output field
// names, and the optional category set that gates coverage, rights, citation and access policy
// rendering.
//
// Path keys are built from element names and type attributes:
//
//	identifier.<type>
//	name.<nameType>[.<namePartType>]
//	location.address.electronic.<type>
//	location.address.physical.<addressPartType>
//	relatedObject.<relationType>
//	subject.<type>
//	description.<type>
//	relatedInfo.<type>[.<title>]
//	existenceDates.startDate | existenceDates.endDate
package mapping
