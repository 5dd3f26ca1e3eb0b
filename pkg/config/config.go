// Package config loads runtime settings from an optional yaml file with
// environment variable overrides.
package config

import (
	"errors"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog/log"
)

// Config holds the runtime settings for the app.
type Config struct {
	DBFile      string `yaml:"db_file" env:"TASKREMINDER_DB_FILE" env-default:"tasks.sqlite"`
	LogFile     string `yaml:"log_file" env:"TASKREMINDER_LOG_FILE" env-default:"taskreminder.log"`
	LogLevel    string `yaml:"log_level" env:"TASKREMINDER_LOG_LEVEL" env-default:"info"`
	ChannelID   string `yaml:"channel_id" env:"TASKREMINDER_CHANNEL_ID" env-default:"1"`
	ChannelName string `yaml:"channel_name" env:"TASKREMINDER_CHANNEL_NAME" env-default:"Default Channel"`
}

// MustLoad reads configuration from the given yaml file. A missing file
// falls back to environment-only; any other failure exits the process.
func MustLoad(configPath string) Config {
	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatal().Err(err).Msg("cannot read env")
		}

		return cfg
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				log.Fatal().Err(err).Msg("cannot read env")
			}

			return cfg
		}

		log.Fatal().Err(err).Msgf("cannot read config %q", configPath)
	}

	return cfg
}
