package internal

import (
	"fmt"

	"github.com/spf13/viper"
)

type MemtableConfig struct {
	AppName string `mapstructure:"app_name"`

	Data struct {
		// Path to the CSV file loaded at startup.
		File string `mapstructure:"file"`
	} `mapstructure:"data"`

	Server struct {
		Port  int  `mapstructure:"port"`
		Debug bool `mapstructure:"debug"`
	} `mapstructure:"server"`

	Logging struct {
		// Optional Seq ingestion endpoint; empty = console only.
		SeqURL string `mapstructure:"seq_url"`
	} `mapstructure:"logging"`
}

func LoadConfig(path string) (*MemtableConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg MemtableConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
