package core

import (
	"fmt"
	"strings"
)

type TableConfig struct {
	Name         string `koanf:"name" mapstructure:"name"`
	KeyAttribute string `koanf:"key_attribute" mapstructure:"key_attribute"`
}

type ProbeConfig struct {
	Disabled    bool `koanf:"disabled" mapstructure:"disabled"`
	SampleLimit int  `koanf:"sample_limit" mapstructure:"sample_limit"`
}

type StoreConfig struct {
	Driver string `koanf:"driver" mapstructure:"driver"`
	DSN    string `koanf:"dsn" mapstructure:"dsn"`
}

type Config struct {
	ServiceName string      `koanf:"service_name" mapstructure:"service_name"`
	Table       TableConfig `koanf:"table" mapstructure:"table"`
	Probe       ProbeConfig `koanf:"probe" mapstructure:"probe"`
	Store       StoreConfig `koanf:"store" mapstructure:"store"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "leave-lookup",
		Table: TableConfig{
			Name:         "leaveBalance",
			KeyAttribute: "empID",
		},
		Probe: ProbeConfig{
			SampleLimit: 5,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if strings.TrimSpace(c.Table.Name) == "" {
		return fmt.Errorf("core: table.name is required")
	}
	if strings.TrimSpace(c.Table.KeyAttribute) == "" {
		return fmt.Errorf("core: table.key_attribute is required")
	}
	if c.Probe.SampleLimit < 0 {
		return fmt.Errorf("core: probe.sample_limit must be >= 0")
	}
	return nil
}
