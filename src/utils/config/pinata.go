package config

import (
	"time"

	"github.com/spf13/viper"
)

type Pinata struct {
	// Pinning API url
	Url string

	// Public IPFS gateway used when resolving ipfs:// metadata
	GatewayUrl string

	ApiKey       string
	SecretApiKey string

	// Max duration of a single pinning call
	RequestTimeout time.Duration

	// Outgoing requests per second
	RateLimit float64

	// How long resolved metadata documents are cached
	MetadataCacheTtl time.Duration
}

func setPinataDefaults() {
	viper.SetDefault("Pinata.Url", "https://api.pinata.cloud")
	viper.SetDefault("Pinata.GatewayUrl", "https://gateway.pinata.cloud/ipfs")
	viper.SetDefault("Pinata.ApiKey", "")
	viper.SetDefault("Pinata.SecretApiKey", "")
	viper.SetDefault("Pinata.RequestTimeout", "60s")
	viper.SetDefault("Pinata.RateLimit", "3")
	viper.SetDefault("Pinata.MetadataCacheTtl", "10m")
}
