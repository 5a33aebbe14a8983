package report

import (
	"go.uber.org/atomic"
)

type RequestsErrors struct {
	DbError     atomic.Int64 `json:"db"`
	UploadError atomic.Int64 `json:"upload"`
}

type RequestsState struct {
	RequestsCreated  atomic.Uint64 `json:"requests_created"`
	RequestsApproved atomic.Uint64 `json:"requests_approved"`
	RequestsRejected atomic.Uint64 `json:"requests_rejected"`

	AverageRequestsPerMinute atomic.Float64 `json:"average_requests_per_minute"`
}

type RequestsReport struct {
	State  RequestsState  `json:"state"`
	Errors RequestsErrors `json:"errors"`
}
