package xrpl

import (
	"errors"
	"fmt"
)

var (
	// Account does not exist on the ledger or is not funded
	ErrAccountNotFound = errors.New("account not found")

	// Requested ledger entry does not exist
	ErrEntryNotFound = errors.New("ledger entry not found")

	// Destination cannot hold the issued currency
	ErrNoTrustLine = errors.New("destination has no trust line for currency")

	// Transaction was submitted but not validated before its
	// LastLedgerSequence passed
	ErrTxExpired = errors.New("transaction not validated before expiry")

	// Local signing failed, nothing reached the ledger
	ErrSigningFailed = errors.New("transaction signing failed")
)

// Error reported by rippled in the result envelope
type RPCError struct {
	Code    string
	Message string
}

func (self *RPCError) Error() string {
	return fmt.Sprintf("rippled error: %s: %s", self.Code, self.Message)
}

func mapRPCError(code, message string) error {
	switch code {
	case "actNotFound":
		return ErrAccountNotFound
	case "entryNotFound":
		return ErrEntryNotFound
	default:
		return &RPCError{Code: code, Message: message}
	}
}
