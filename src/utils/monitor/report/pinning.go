package report

import (
	"go.uber.org/atomic"
)

type PinningErrors struct {
	PinError   atomic.Int64 `json:"pin"`
	FetchError atomic.Int64 `json:"fetch"`
}

type PinningState struct {
	FilesPinned     atomic.Uint64 `json:"files_pinned"`
	DocumentsPinned atomic.Uint64 `json:"documents_pinned"`
}

type PinningReport struct {
	State  PinningState  `json:"state"`
	Errors PinningErrors `json:"errors"`
}
