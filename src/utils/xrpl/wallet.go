package xrpl

import (
	"github.com/Peersyst/xrpl-go/pkg/crypto"
	"github.com/Peersyst/xrpl-go/xrpl/wallet"
)

// Derives a wallet from a family seed
func WalletFromSeed(seed string) (w wallet.Wallet, err error) {
	return wallet.FromSeed(seed, "")
}

// Generates a fresh ed25519 keypair.
// The resulting account does not exist on the ledger until funded.
func GenerateWallet() (w wallet.Wallet, err error) {
	return wallet.New(crypto.ED25519())
}
