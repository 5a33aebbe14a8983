package report

import (
	"go.uber.org/atomic"
)

type XummErrors struct {
	PayloadError atomic.Int64 `json:"payload"`
}

type XummState struct {
	SignInPayloadsCreated atomic.Uint64 `json:"sign_in_payloads_created"`
	OfferPayloadsCreated  atomic.Uint64 `json:"offer_payloads_created"`
}

type XummReport struct {
	State  XummState  `json:"state"`
	Errors XummErrors `json:"errors"`
}
