package model

import (
	"time"

	"github.com/jackc/pgtype"
)

const (
	TableNFTRequest = "nft_requests"
)

// Lifecycle states of a preservation certificate request.
// Pending requests may be approved or rejected by an admin, approval mints
// the NFT and creates a directed sell offer. The final transfer happens
// outside of this service, when the requester accepts the offer.
// "minted" is a legacy value still used in status filters.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusMinted   = "minted"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected, StatusMinted:
		return true
	}
	return false
}

type NFTRequest struct {
	ID            int          `json:"id" gorm:"primaryKey"`
	UserId        string       `json:"user_id"`
	WalletAddress string       `json:"wallet_address"`
	Metadata      pgtype.JSONB `json:"metadata" gorm:"type:jsonb"`
	Status        string       `json:"status" gorm:"default:pending"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (NFTRequest) TableName() string {
	return TableNFTRequest
}
