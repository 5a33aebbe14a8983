package nft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMetadata(t *testing.T) {
	metadata := NewMetadata("ipfs://QmImage", AttributeFields{
		VegetationCoverage: "87",
		Hectares:           "120",
		SpecificAttributes: "old growth",
		WaterBodies:        "3",
		Springs:            "2",
		Projects:           "reforestation",
		CarRegistry:        "CAR-123",
	})

	assert.Equal(t, "Preservation Certificate", metadata.Name)
	assert.Equal(t, "NFT certifying the preservation of a protected area.", metadata.Description)
	assert.Equal(t, "ipfs://QmImage", metadata.Image)

	// The attribute slots and their order are part of the certificate format
	assert.Len(t, metadata.Attributes, 7)
	assert.Equal(t, []Attribute{
		{TraitType: "Vegetation Coverage (%)", Value: "87"},
		{TraitType: "Number of Hectares", Value: "120"},
		{TraitType: "Specific Attributes", Value: "old growth"},
		{TraitType: "Number of Water Bodies", Value: "3"},
		{TraitType: "Number of Springs", Value: "2"},
		{TraitType: "Projects in Development", Value: "reforestation"},
		{TraitType: "CAR Registry", Value: "CAR-123"},
	}, metadata.Attributes)
}

func TestNewMetadataKeepsEmptyValues(t *testing.T) {
	metadata := NewMetadata("ipfs://QmImage", AttributeFields{})

	assert.Len(t, metadata.Attributes, 7)
	for _, attribute := range metadata.Attributes {
		assert.Empty(t, attribute.Value)
	}
}
