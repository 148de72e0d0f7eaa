/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package rifcs

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/rifcsharvest/errors"
)

func fixture(name string) string {
	return filepath.Join("..", "testdata", name)
}

func TestReadFile_Party(t *testing.T) {
	doc, err := ReadFile(fixture("parties_people.xml"))
	require.NoError(t, err)
	require.Len(t, doc.RegistryObjects, 1)

	obj := doc.RegistryObjects[0]
	assert.Equal(t, "Macquarie University", obj.Group)
	assert.Equal(t, "mq.edu.au/party/MQ12345678", obj.Key)
	assert.Equal(t, "http://www.mq.edu.au", obj.OriginatingSource)

	v, err := obj.Variant()
	require.NoError(t, err)
	assert.Equal(t, ClassParty, v.Class)
	assert.Equal(t, "person", v.Element.Type)
	require.Len(t, v.Element.Identifiers, 5)
	assert.Equal(t, Identifier{Type: "local", Value: "MQ12345678"}, v.Element.Identifiers[0])
	require.Len(t, v.Element.Names, 3)
	assert.Equal(t, "primary", v.Element.Names[0].Type)
	assert.Equal(t, NamePart{Type: "given", Value: "James"}, v.Element.Names[0].NameParts[1])
	require.Len(t, v.Element.Subjects, 3)
	assert.Equal(t, "0602", v.Element.Subjects[2].Value)

	electronic := v.Element.Locations[0].Addresses[0].Electronics[0]
	assert.Equal(t, "email", electronic.Type)
	assert.Equal(t, "james.smith@mq.edu.au", electronic.Value)

	related := v.Element.RelatedInfos[0]
	assert.Equal(t, "website", related.Type)
	assert.Equal(t, "Personal Homepage", related.Title)
	assert.Equal(t, "http://www.facebook.com/john.smith99", related.Identifier.Value)
}

func TestReadFile_ServiceArgsAndPolicies(t *testing.T) {
	doc, err := ReadFile(fixture("service.xml"))
	require.NoError(t, err)

	v, err := doc.RegistryObjects[0].Variant()
	require.NoError(t, err)
	assert.Equal(t, ClassService, v.Class)
	require.Len(t, v.AccessPolicies, 1)
	assert.Equal(t, "http://data.mq.edu.au/policy", v.AccessPolicies[0].Value)

	electronic := v.Element.Locations[0].Addresses[0].Electronics[0]
	require.Len(t, electronic.Args, 1)
	assert.Equal(t, Arg{Type: "string", Required: "true", Use: "inline", Value: "dataset"}, electronic.Args[0])
}

func TestReadFile_CollectionOptionalElements(t *testing.T) {
	doc, err := ReadFile(fixture("collection.xml"))
	require.NoError(t, err)

	v, err := doc.RegistryObjects[0].Variant()
	require.NoError(t, err)
	assert.Equal(t, ClassCollection, v.Class)
	require.Len(t, v.CitationInfos, 2)
	assert.NotNil(t, v.CitationInfos[0].FullCitation)
	assert.Nil(t, v.CitationInfos[0].CitationMetadata)
	require.NotNil(t, v.CitationInfos[1].CitationMetadata)
	assert.Len(t, v.CitationInfos[1].CitationMetadata.Contributors, 2)

	require.Len(t, v.Element.Coverages, 1)
	assert.Len(t, v.Element.Coverages[0].Temporals[0].Dates, 2)
	assert.Equal(t, []string{"School terms only"}, v.Element.Coverages[0].Temporals[0].Texts)

	require.Len(t, v.Element.Rights, 1)
	assert.Equal(t, "CC-BY", v.Element.Rights[0].Licence.Type)

	require.Len(t, v.Element.ExistenceDates, 2)
	assert.Equal(t, "2009-01-01", v.Element.ExistenceDates[0].StartValue())
	assert.Equal(t, "2010-12-31", v.Element.ExistenceDates[1].EndValue())
}

func TestExistenceDate_MissingBounds(t *testing.T) {
	var ed ExistenceDate
	assert.Empty(t, ed.StartValue())
	assert.Empty(t, ed.EndValue())
}

func TestVariant_Unsupported(t *testing.T) {
	doc, err := ReadFile(fixture("error.xml"))
	require.NoError(t, err)
	require.Len(t, doc.RegistryObjects, 2)

	_, err = doc.RegistryObjects[0].Variant()
	require.NoError(t, err)

	_, err = doc.RegistryObjects[1].Variant()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnsupportedElement)
}

func TestVariant_MoreThanOneClass(t *testing.T) {
	obj := RegistryObject{
		Key:        "two",
		Parties:    []Party{{}},
		Activities: []Activity{{}},
	}
	_, err := obj.Variant()
	assert.ErrorIs(t, err, errors.ErrUnsupportedElement)
}

func TestRead_Malformed(t *testing.T) {
	_, err := Read(strings.NewReader("<registryObjects><registryObject>"))
	assert.Error(t, err)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(fixture("does-not-exist.xml"))
	assert.Error(t, err)
}

func TestClassString(t *testing.T) {
	tests := []struct {
		class Class
		want  string
	}{
		{ClassActivity, "activity"},
		{ClassCollection, "collection"},
		{ClassParty, "party"},
		{ClassService, "service"},
		{ClassUnknown, "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.class.String())
	}
}
