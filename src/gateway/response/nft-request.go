package response

import (
	"github.com/forestledger/backend/src/nft"
	"github.com/forestledger/backend/src/utils/model"
	"github.com/forestledger/backend/src/utils/xrpl"
)

type CreateRequest struct {
	Message string            `json:"message"`
	Request *model.NFTRequest `json:"request"`
}

type RejectRequest struct {
	Message string            `json:"message"`
	Request *model.NFTRequest `json:"request"`
}

type ApproveRequest struct {
	Message     string            `json:"message"`
	MetadataURI string            `json:"metadataURI"`
	NFTokenID   string            `json:"nft_id"`
	MintTx      *xrpl.TxResult    `json:"mint_tx"`
	OfferTx     *xrpl.TxResult    `json:"offer_tx"`
	Request     *model.NFTRequest `json:"request"`
}

func ApprovalToResponse(approval *nft.ApprovalResult) *ApproveRequest {
	return &ApproveRequest{
		Message:     "NFT request approved and minted successfully!",
		MetadataURI: approval.MetadataURI,
		NFTokenID:   approval.NFTokenID,
		MintTx:      approval.MintTx,
		OfferTx:     approval.OfferTx,
		Request:     approval.Request,
	}
}
