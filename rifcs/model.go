/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package rifcs

import (
	"encoding/xml"
	"fmt"

	"github.com/suparena/rifcsharvest/errors"
)

// RegistryObjects is the root of a RIF-CS record set.
type RegistryObjects struct {
	XMLName         xml.Name         `xml:"registryObjects"`
	RegistryObjects []RegistryObject `xml:"registryObject"`
}

// RegistryObject is one described resource. A well-formed object carries exactly one of
// Activities, Collections, Parties or Services; Variant enforces that.
type RegistryObject struct {
	Group             string       `xml:"group,attr"`
	Key               string       `xml:"key"`
	OriginatingSource string       `xml:"originatingSource"`
	Activities        []Activity   `xml:"activity"`
	Collections       []Collection `xml:"collection"`
	Parties           []Party      `xml:"party"`
	Services          []Service    `xml:"service"`
}

// Class tags the variant carried by a registry object.
type Class int

const (
	ClassUnknown Class = iota
	ClassActivity
	ClassCollection
	ClassParty
	ClassService
)

func (c Class) String() string {
	switch c {
	case ClassActivity:
		return "activity"
	case ClassCollection:
		return "collection"
	case ClassParty:
		return "party"
	case ClassService:
		return "service"
	default:
		return "unknown"
	}
}

// Variant is the tagged union over the four registry object classes. Element is always set;
// CitationInfos is only populated for collections and AccessPolicies only for services.
type Variant struct {
	Class          Class
	Element        *Element
	CitationInfos  []CitationInfo
	AccessPolicies []AccessPolicy
}

// Variant returns the single class payload of the registry object. Objects with no payload or
// more than one payload yield errors.ErrUnsupportedElement.
func (r *RegistryObject) Variant() (Variant, error) {
	count := len(r.Activities) + len(r.Collections) + len(r.Parties) + len(r.Services)
	if count != 1 {
		return Variant{}, fmt.Errorf("registry object %q has %d class elements: %w", r.Key, count, errors.ErrUnsupportedElement)
	}
	switch {
	case len(r.Activities) == 1:
		return Variant{Class: ClassActivity, Element: &r.Activities[0].Element}, nil
	case len(r.Collections) == 1:
		c := &r.Collections[0]
		return Variant{Class: ClassCollection, Element: &c.Element, CitationInfos: c.CitationInfos}, nil
	case len(r.Parties) == 1:
		return Variant{Class: ClassParty, Element: &r.Parties[0].Element}, nil
	default:
		s := &r.Services[0]
		return Variant{Class: ClassService, Element: &s.Element, AccessPolicies: s.AccessPolicies}, nil
	}
}

// Activity describes a project, program or other undertaking.
type Activity struct {
	Element
}

// Collection describes an aggregation of data or objects.
type Collection struct {
	Element
	CitationInfos []CitationInfo `xml:"citationInfo"`
}

// Party describes a person or group.
type Party struct {
	Element
}

// Service describes a system that provides access to a collection.
type Service struct {
	Element
	AccessPolicies []AccessPolicy `xml:"accessPolicy"`
}

// Element is the shape shared by all four classes.
type Element struct {
	Type           string          `xml:"type,attr"`
	DateModified   string          `xml:"dateModified,attr"`
	Identifiers    []Identifier    `xml:"identifier"`
	Names          []Name          `xml:"name"`
	Locations      []Location      `xml:"location"`
	RelatedObjects []RelatedObject `xml:"relatedObject"`
	Subjects       []Subject       `xml:"subject"`
	Descriptions   []Description   `xml:"description"`
	Coverages      []Coverage      `xml:"coverage"`
	RelatedInfos   []RelatedInfo   `xml:"relatedInfo"`
	Rights         []Right         `xml:"rights"`
	ExistenceDates []ExistenceDate `xml:"existenceDates"`
}

type Identifier struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type Name struct {
	Type      string     `xml:"type,attr"`
	DateFrom  string     `xml:"dateFrom,attr"`
	DateTo    string     `xml:"dateTo,attr"`
	NameParts []NamePart `xml:"namePart"`
}

type NamePart struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type Location struct {
	Type      string    `xml:"type,attr"`
	DateFrom  string    `xml:"dateFrom,attr"`
	DateTo    string    `xml:"dateTo,attr"`
	Addresses []Address `xml:"address"`
	Spatials  []Spatial `xml:"spatial"`
}

type Address struct {
	Electronics []Electronic `xml:"electronic"`
	Physicals   []Physical   `xml:"physical"`
}

type Electronic struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value"`
	Args  []Arg  `xml:"arg"`
}

// Arg is a parameter of an electronic (service) address.
type Arg struct {
	Type     string `xml:"type,attr"`
	Required string `xml:"required,attr"`
	Use      string `xml:"use,attr"`
	Value    string `xml:",chardata"`
}

type Physical struct {
	Type         string        `xml:"type,attr"`
	AddressParts []AddressPart `xml:"addressPart"`
}

type AddressPart struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type Spatial struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type RelatedObject struct {
	Key       string     `xml:"key"`
	Relations []Relation `xml:"relation"`
}

type Relation struct {
	Type        string `xml:"type,attr"`
	Description string `xml:"description"`
	URL         string `xml:"url"`
}

type Subject struct {
	Type           string `xml:"type,attr"`
	TermIdentifier string `xml:"termIdentifier,attr"`
	Value          string `xml:",chardata"`
}

type Description struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type Coverage struct {
	Temporals []Temporal `xml:"temporal"`
	Spatials  []Spatial  `xml:"spatial"`
}

type Temporal struct {
	Dates []TemporalDate `xml:"date"`
	Texts []string       `xml:"text"`
}

type TemporalDate struct {
	Type       string `xml:"type,attr"`
	DateFormat string `xml:"dateFormat,attr"`
	Value      string `xml:",chardata"`
}

// RelatedInfo points at a resource outside the registry; Identifier is its resolvable id.
type RelatedInfo struct {
	Type       string     `xml:"type,attr"`
	Identifier Identifier `xml:"identifier"`
	Title      string     `xml:"title"`
	Notes      string     `xml:"notes"`
}

type Right struct {
	RightsStatement *RightsInfo      `xml:"rightsStatement"`
	Licence         *RightsTypedInfo `xml:"licence"`
	AccessRights    *RightsTypedInfo `xml:"accessRights"`
}

type RightsInfo struct {
	RightsURI string `xml:"rightsUri,attr"`
	Value     string `xml:",chardata"`
}

type RightsTypedInfo struct {
	Type      string `xml:"type,attr"`
	RightsURI string `xml:"rightsUri,attr"`
	Value     string `xml:",chardata"`
}

type ExistenceDate struct {
	StartDate *DateElement `xml:"startDate"`
	EndDate   *DateElement `xml:"endDate"`
}

// StartValue returns the raw start date, or "" when absent.
func (e ExistenceDate) StartValue() string {
	if e.StartDate == nil {
		return ""
	}
	return e.StartDate.Value
}

// EndValue returns the raw end date, or "" when absent.
func (e ExistenceDate) EndValue() string {
	if e.EndDate == nil {
		return ""
	}
	return e.EndDate.Value
}

type DateElement struct {
	DateFormat string `xml:"dateFormat,attr"`
	Value      string `xml:",chardata"`
}

type CitationInfo struct {
	FullCitation     *FullCitation     `xml:"fullCitation"`
	CitationMetadata *CitationMetadata `xml:"citationMetadata"`
}

type FullCitation struct {
	Style string `xml:"style,attr"`
	Value string `xml:",chardata"`
}

type CitationMetadata struct {
	Identifier     Identifier     `xml:"identifier"`
	Contributors   []Contributor  `xml:"contributor"`
	Title          string         `xml:"title"`
	Edition        string         `xml:"edition"`
	Publisher      string         `xml:"publisher"`
	PlacePublished string         `xml:"placePublished"`
	Dates          []CitationDate `xml:"date"`
	URL            string         `xml:"url"`
	Context        string         `xml:"context"`
}

type Contributor struct {
	Seq       string     `xml:"seq,attr"`
	NameParts []NamePart `xml:"namePart"`
}

type CitationDate struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type AccessPolicy struct {
	Value string `xml:",chardata"`
}
