package response

import (
	"github.com/forestledger/backend/src/token"
	"github.com/forestledger/backend/src/utils/xrpl"
)

type SetupToken struct {
	Message string                 `json:"message"`
	Result  *token.ProvisionResult `json:"result"`
}

type TokenBalance struct {
	Address  string `json:"address"`
	Currency string `json:"currency"`
	Issuer   string `json:"issuer"`
	Balance  string `json:"balance"`
}

type TokenTransaction struct {
	Message     string         `json:"message"`
	Transaction *xrpl.TxResult `json:"transaction"`
}
