package station

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the station-side configuration: where the production store
// lives, the bearer token, and the prefixes used for locally generated
// batch, lot and fallback serial numbers.
type Config struct {
	BaseURL      string `yaml:"base_url"`
	Token        string `yaml:"token"`
	EmpName      string `yaml:"emp_name"`
	BatchPrefix  string `yaml:"batch_prefix"`
	LotPrefix    string `yaml:"lot_prefix"`
	SerialPrefix string `yaml:"serial_prefix"`
}

// LoadConfig loads station config from env, with an optional yaml file
// pointed at by STATION_CONFIG overriding the defaults.
func LoadConfig() (Config, error) {
	cfg := Config{
		BaseURL:      getenvDefault("STATION_BASE_URL", "http://localhost:8080"),
		Token:        os.Getenv("STATION_TOKEN"),
		EmpName:      os.Getenv("STATION_EMP_NAME"),
		BatchPrefix:  getenvDefault("STATION_BATCH_PREFIX", "TIA/BATCH"),
		LotPrefix:    getenvDefault("STATION_LOT_PREFIX", "TIA/LOT"),
		SerialPrefix: getenvDefault("STATION_SERIAL_PREFIX", "TIA"),
	}

	if path := os.Getenv("STATION_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.BaseURL == "" {
		return cfg, errors.New("station: base url required")
	}
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
