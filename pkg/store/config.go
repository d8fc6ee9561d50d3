package store

import (
	"errors"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the ledger on disk.
type Config interface {
	BasePath() string
}

// LoadConfig reads .mistakes.yaml and MISTAKES_* environment variables.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.mistakes")
	viper.SetDefault("verbose", false)
	viper.SetConfigName(".mistakes") // .yaml is implicit
	viper.SetEnvPrefix("MISTAKES")
	viper.AutomaticEnv()

	if override := os.Getenv("MISTAKES_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, err
	}
	return &fileConfig{Path: path}, nil
}

// Verbose reports whether debug logging was requested through config.
func Verbose() bool {
	return viper.GetBool("verbose")
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}
