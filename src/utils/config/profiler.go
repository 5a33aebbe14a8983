package config

import (
	"github.com/spf13/viper"
)

type Profiler struct {
	// Enables pprof endpoints on the gateway
	Enabled bool

	BlockProfileRate int
	MutexProfileRate int
}

func setProfilerDefaults() {
	viper.SetDefault("Profiler.Enabled", "false")
	viper.SetDefault("Profiler.BlockProfileRate", "0")
	viper.SetDefault("Profiler.MutexProfileRate", "0")
}
