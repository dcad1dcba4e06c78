package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const configFilePath = "config.json"

// Config represents the application's configuration structure.
type Config struct {
	WorkerId          string `json:"worker-id" mapstructure:"worker-id"`
	MiddlewareAddress string `json:"middleware-address" mapstructure:"middleware-address"`
	InputName         string `json:"input-name" mapstructure:"input-name"`
	OutputName        string `json:"output-name" mapstructure:"output-name"`
	DatasetPath       string `json:"dataset-path" mapstructure:"dataset-path"`
	LogLevel          string `json:"log-level" mapstructure:"log-level"`
	CurrencyPrefix    string `json:"currency-prefix" mapstructure:"currency-prefix"`

	// Defaults applied to requests that omit the corresponding parameter.
	TrendWindowDays    int     `json:"trend-window-days" mapstructure:"trend-window-days"`
	StockThresholdDays float64 `json:"stock-threshold-days" mapstructure:"stock-threshold-days"`
}

var requiredFields = []string{
	"worker-id",
	"middleware-address",
	"input-name",
	"output-name",
	"dataset-path",
}

// field: default value
var optionalFields = map[string]interface{}{
	"log-level":            "INFO",
	"currency-prefix":      "RM",
	"trend-window-days":    7,
	"stock-threshold-days": 3,
}

// InitConfig reads configuration from a JSON file and environment variables.
// Environment variables take precedence over the config file.
func InitConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configFilePath)
	v.SetConfigType("json")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	for _, field := range requiredFields {
		v.BindEnv(field)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	for _, field := range requiredFields {
		if !v.IsSet(field) {
			return nil, fmt.Errorf("missing required config field: %s", field)
		}
	}

	for optField, defaultValue := range optionalFields {
		if !v.IsSet(optField) {
			v.Set(optField, defaultValue)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	return &config, nil
}
