package report

import (
	"go.uber.org/atomic"
)

type LedgerErrors struct {
	SubmitError  atomic.Int64 `json:"submit"`
	QueryError   atomic.Int64 `json:"query"`
	TxExpired    atomic.Int64 `json:"tx_expired"`
	SigningError atomic.Int64 `json:"signing"`
}

type LedgerState struct {
	NFTsMinted        atomic.Uint64 `json:"nfts_minted"`
	SellOffersCreated atomic.Uint64 `json:"sell_offers_created"`
	TrustLinesSet     atomic.Uint64 `json:"trust_lines_set"`
	TokenPayments     atomic.Uint64 `json:"token_payments"`

	AverageSubmitErrorsPerMinute atomic.Float64 `json:"average_submit_errors_per_minute"`
}

type LedgerReport struct {
	State  LedgerState  `json:"state"`
	Errors LedgerErrors `json:"errors"`
}
