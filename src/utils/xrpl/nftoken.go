package xrpl

import (
	"encoding/json"
	"errors"
)

// The mint response doesn't carry the new token id as a first class field
// on older rippled versions. Decoding therefore falls back from the
// dedicated meta field to scanning the transaction's ledger-state diff for
// the NFTokenPage that was created or modified by the mint and taking the
// most recently appended token.

type nftokenPageFields struct {
	NFTokens []struct {
		NFToken struct {
			NFTokenID string `json:"NFTokenID"`
		} `json:"NFToken"`
	} `json:"NFTokens"`
}

type affectedNode struct {
	CreatedNode *struct {
		LedgerEntryType string            `json:"LedgerEntryType"`
		NewFields       nftokenPageFields `json:"NewFields"`
	} `json:"CreatedNode,omitempty"`

	ModifiedNode *struct {
		LedgerEntryType string            `json:"LedgerEntryType"`
		FinalFields     nftokenPageFields `json:"FinalFields"`
	} `json:"ModifiedNode,omitempty"`
}

type txMeta struct {
	NFTokenID         string         `json:"nftoken_id"`
	TransactionResult string         `json:"TransactionResult"`
	AffectedNodes     []affectedNode `json:"AffectedNodes"`
}

var ErrNFTokenIDNotFound = errors.New("could not find minted NFTokenID in transaction metadata")

func NFTokenIDFromMeta(meta json.RawMessage) (id string, err error) {
	var parsed txMeta
	err = json.Unmarshal(meta, &parsed)
	if err != nil {
		return
	}

	if parsed.NFTokenID != "" {
		id = parsed.NFTokenID
		return
	}

	for _, node := range parsed.AffectedNodes {
		var fields *nftokenPageFields

		switch {
		case node.CreatedNode != nil && node.CreatedNode.LedgerEntryType == "NFTokenPage":
			fields = &node.CreatedNode.NewFields
		case node.ModifiedNode != nil && node.ModifiedNode.LedgerEntryType == "NFTokenPage":
			fields = &node.ModifiedNode.FinalFields
		default:
			continue
		}

		if len(fields.NFTokens) == 0 {
			continue
		}

		id = fields.NFTokens[len(fields.NFTokens)-1].NFToken.NFTokenID
		return
	}

	err = ErrNFTokenIDNotFound
	return
}
