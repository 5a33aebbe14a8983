package config

import (
	"time"

	"github.com/spf13/viper"
)

type Gateway struct {
	// REST API address
	RESTListenAddress string

	// Max time a single request may take
	ServerRequestTimeout time.Duration

	// Directory multipart uploads are buffered in before pinning
	UploadDir string

	// Max accepted size of an uploaded image
	MaxUploadSize int64

	// Allowed CORS origin, * by default
	CorsAllowOrigin string

	// When enabled, approve/reject is only allowed on pending requests.
	// The permissive default matches the historical behaviour where e.g.
	// an already approved request could still be rejected.
	StrictStatusTransitions bool
}

func setGatewayDefaults() {
	viper.SetDefault("Gateway.RESTListenAddress", "0.0.0.0:3000")
	viper.SetDefault("Gateway.ServerRequestTimeout", "30s")
	viper.SetDefault("Gateway.UploadDir", "uploads")
	viper.SetDefault("Gateway.MaxUploadSize", "10485760")
	viper.SetDefault("Gateway.CorsAllowOrigin", "*")
	viper.SetDefault("Gateway.StrictStatusTransitions", "false")
}
