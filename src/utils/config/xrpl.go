package config

import (
	"time"

	"github.com/spf13/viper"
)

type Xrpl struct {
	// JSON-RPC endpoint of a rippled node
	NodeUrl string

	// Testnet faucet used to activate freshly generated accounts
	FaucetUrl string

	// Seed of the NFT issuing account. Required for the serve command.
	IssuerSeed string

	// Max duration of a single JSON-RPC call
	RequestTimeout time.Duration

	// How long a submitted transaction is polled for validation
	SubmitTimeout time.Duration

	// Interval between validation polls
	SubmitPollInterval time.Duration

	// How many ledgers ahead of the current one a transaction stays valid
	LedgerOffset uint32

	// Outgoing requests per second
	RateLimit float64
}

func setXrplDefaults() {
	viper.SetDefault("Xrpl.NodeUrl", "https://s.altnet.rippletest.net:51234")
	viper.SetDefault("Xrpl.FaucetUrl", "https://faucet.altnet.rippletest.net/accounts")
	viper.SetDefault("Xrpl.IssuerSeed", "")
	viper.SetDefault("Xrpl.RequestTimeout", "30s")
	viper.SetDefault("Xrpl.SubmitTimeout", "60s")
	viper.SetDefault("Xrpl.SubmitPollInterval", "1s")
	viper.SetDefault("Xrpl.LedgerOffset", "20")
	viper.SetDefault("Xrpl.RateLimit", "10")
}
