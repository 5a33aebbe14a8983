package config

import (
	"time"

	"github.com/spf13/viper"
)

type Xumm struct {
	// XUMM platform API url
	Url string

	ApiKey    string
	ApiSecret string

	// Max duration of a single bridge call
	RequestTimeout time.Duration
}

func setXummDefaults() {
	viper.SetDefault("Xumm.Url", "https://xumm.app/api/v1/platform")
	viper.SetDefault("Xumm.ApiKey", "")
	viper.SetDefault("Xumm.ApiSecret", "")
	viper.SetDefault("Xumm.RequestTimeout", "30s")
}
