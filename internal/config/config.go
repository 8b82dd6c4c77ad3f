package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env-default:"info"`
	Game     Game    `yaml:"game"`
	Storage  Storage `yaml:"storage"`
}

type Game struct {
	PlayerX     string `yaml:"player-x" env-default:"human"`
	PlayerO     string `yaml:"player-o" env-default:"bot"`
	BotStrategy string `yaml:"bot-strategy" env-default:"first-empty"`
}

type Storage struct {
	ResultsPath string `yaml:"results-path" env-default:"results.csv"`
	SQLitePath  string `yaml:"sqlite-path" env-default:"tictactoe.db"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}
