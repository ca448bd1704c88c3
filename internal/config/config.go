package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	DataDir  string
	LogLevel string
	Watch    bool
}

// Load reads configuration from the environment. Every key has a usable
// default, so running with no environment at all works.
func Load() Config {
	v := viper.New()
	v.SetEnvPrefix("POS")
	v.AutomaticEnv()

	v.SetDefault("DATA_DIR", defaultDataDir())
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("WATCH", false)

	return Config{
		DataDir:  v.GetString("DATA_DIR"),
		LogLevel: v.GetString("LOG_LEVEL"),
		Watch:    v.GetBool("WATCH"),
	}
}

// defaultDataDir is the per-user application data directory, falling back to
// the working directory when the platform has no config dir.
func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "GroceryStore"
	}
	return filepath.Join(base, "GroceryStore")
}
