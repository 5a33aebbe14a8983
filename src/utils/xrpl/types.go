package xrpl

import (
	"encoding/json"
)

type rpcRequest struct {
	Method string        `json:"method"`
	Params []interface{} `json:"params,omitempty"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
}

// Common part of every rippled result
type resultBase struct {
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// NFT owned by an account, as reported by account_nfts
type AccountNFT struct {
	Flags        uint32 `json:"Flags"`
	Issuer       string `json:"Issuer"`
	NFTokenID    string `json:"NFTokenID"`
	NFTokenTaxon uint32 `json:"NFTokenTaxon"`
	URI          string `json:"URI"`
	Serial       uint32 `json:"nft_serial"`
}

type accountNFTsResult struct {
	resultBase
	Account     string       `json:"account"`
	AccountNFTs []AccountNFT `json:"account_nfts"`
}

// Trust line as reported by account_lines
type AccountLine struct {
	Account  string `json:"account"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
	Limit    string `json:"limit"`
}

type accountLinesResult struct {
	resultBase
	Lines []AccountLine `json:"lines"`
}

type accountInfoResult struct {
	resultBase
	AccountData struct {
		Balance  string `json:"Balance"`
		Sequence uint32 `json:"Sequence"`
	} `json:"account_data"`
}

type feeResult struct {
	resultBase
	Drops struct {
		BaseFee       string `json:"base_fee"`
		OpenLedgerFee string `json:"open_ledger_fee"`
	} `json:"drops"`
}

type ledgerCurrentResult struct {
	resultBase
	LedgerCurrentIndex uint32 `json:"ledger_current_index"`
}

type ledgerEntryResult struct {
	resultBase
	Index string          `json:"index"`
	Node  json.RawMessage `json:"node"`
}

// NFT offer living on the ledger. Normalized from both the
// account_objects and the nft_sell_offers representation.
type NFTOffer struct {
	Index       string      `json:"index"`
	NFTokenID   string      `json:"nft_id"`
	Amount      interface{} `json:"amount,omitempty"`
	Owner       string      `json:"owner,omitempty"`
	Destination string      `json:"destination,omitempty"`
}

type accountObjectsResult struct {
	resultBase
	AccountObjects []struct {
		LedgerEntryType string      `json:"LedgerEntryType"`
		Amount          interface{} `json:"Amount"`
		Destination     string      `json:"Destination"`
		NFTokenID       string      `json:"NFTokenID"`
		Owner           string      `json:"Owner"`
		Index           string      `json:"index"`
	} `json:"account_objects"`
}

type nftSellOffersResult struct {
	resultBase
	NFTokenID string `json:"nft_id"`
	Offers    []struct {
		Amount      interface{} `json:"amount"`
		Destination string      `json:"destination"`
		Index       string      `json:"nft_offer_index"`
		Owner       string      `json:"owner"`
	} `json:"offers"`
}

type submitResult struct {
	resultBase
	EngineResult        string `json:"engine_result"`
	EngineResultMessage string `json:"engine_result_message"`
	TxJson              struct {
		Hash string `json:"hash"`
	} `json:"tx_json"`
}

type txResult struct {
	resultBase
	Hash        string          `json:"hash"`
	LedgerIndex uint32          `json:"ledger_index"`
	Validated   bool            `json:"validated"`
	Meta        json.RawMessage `json:"meta"`
}

// Outcome of a validated transaction, kept raw enough to be returned to
// API clients unchanged
type TxResult struct {
	Hash         string          `json:"hash"`
	LedgerIndex  uint32          `json:"ledger_index"`
	Validated    bool            `json:"validated"`
	EngineResult string          `json:"engine_result"`
	Meta         json.RawMessage `json:"meta,omitempty"`
}

type faucetRequest struct {
	Destination string `json:"destination"`
}

type FaucetResponse struct {
	Account struct {
		Address string `json:"address"`
	} `json:"account"`
	Balance int64 `json:"balance"`
}
