package nft

const (
	certificateName        = "Preservation Certificate"
	certificateDescription = "NFT certifying the preservation of a protected area."
)

type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Metadata document pinned to IPFS and referenced by the minted NFT
type Metadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Attributes  []Attribute `json:"attributes"`
}

// Form fields describing the preserved area
type AttributeFields struct {
	VegetationCoverage string
	Hectares           string
	SpecificAttributes string
	WaterBodies        string
	Springs            string
	Projects           string
	CarRegistry        string
}

// Builds the certificate document. The name and description are fixed,
// the seven attribute slots and their order are part of the certificate
// format and never change.
func NewMetadata(imageURI string, fields AttributeFields) *Metadata {
	return &Metadata{
		Name:        certificateName,
		Description: certificateDescription,
		Image:       imageURI,
		Attributes: []Attribute{
			{TraitType: "Vegetation Coverage (%)", Value: fields.VegetationCoverage},
			{TraitType: "Number of Hectares", Value: fields.Hectares},
			{TraitType: "Specific Attributes", Value: fields.SpecificAttributes},
			{TraitType: "Number of Water Bodies", Value: fields.WaterBodies},
			{TraitType: "Number of Springs", Value: fields.Springs},
			{TraitType: "Projects in Development", Value: fields.Projects},
			{TraitType: "CAR Registry", Value: fields.CarRegistry},
		},
	}
}
