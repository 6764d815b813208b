package main

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

type Config struct {
	Extract struct {
		Source  string `yaml:"source" validate:"required"`
		Output  string `yaml:"output" validate:"required"`
		Profile string `yaml:"profile" validate:"omitempty,oneof=driving"`
		GeoJSON bool   `yaml:"geojson"`
		Spill   struct {
			Enabled   bool   `yaml:"enabled"`
			Directory string `yaml:"directory"`
			Budget    int    `yaml:"budget" validate:"gte=0"`
		} `yaml:"spill"`
	} `yaml:"extract"`
	Debug bool `yaml:"debug"`
}

func ReadConfig(file string) (Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config file")
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse config file")
	}
	v := validator.New()
	if err := v.Struct(config); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}
	if config.Extract.Profile == "" {
		config.Extract.Profile = "driving"
	}
	if config.Extract.Spill.Budget == 0 {
		config.Extract.Spill.Budget = 1000000
	}
	if config.Extract.Spill.Directory == "" {
		config.Extract.Spill.Directory = os.TempDir()
	}
	return config, nil
}
