package config

import (
	"github.com/spf13/viper"
)

type Token struct {
	// Currency code of the issued fungible token
	Currency string

	// Issuer (cold) wallet seed, generated when empty
	ColdWalletSeed string

	// Operational (hot) wallet seed, generated when empty
	HotWalletSeed string

	// Domain advertised on the issuer account
	Domain string

	// Trust line limit from the hot wallet to the issuer
	TrustLineLimit string

	// Amount issued to the hot wallet during provisioning
	InitialSupply string

	// Order book tick size set on the issuer
	TickSize uint8
}

func setTokenDefaults() {
	viper.SetDefault("Token.Currency", "FLT")
	viper.SetDefault("Token.ColdWalletSeed", "")
	viper.SetDefault("Token.HotWalletSeed", "")
	viper.SetDefault("Token.Domain", "forestledger.org")
	viper.SetDefault("Token.TrustLineLimit", "1000000000")
	viper.SetDefault("Token.InitialSupply", "500000000")
	viper.SetDefault("Token.TickSize", "5")
}
