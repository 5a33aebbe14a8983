package response

import (
	"github.com/forestledger/backend/src/utils/xrpl"
)

type Mint struct {
	Message      string         `json:"message"`
	MetadataURI  string         `json:"metadataURI"`
	MintResponse *xrpl.TxResult `json:"mintResponse"`
}

type PendingOffers struct {
	Address string          `json:"address"`
	Offers  []xrpl.NFTOffer `json:"offers"`
}

type OfferStatus struct {
	OfferId string `json:"offerId"`
	Status  string `json:"status"`
}
