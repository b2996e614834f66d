// Package config loads the engine's typed configuration, adapted from the
// teacher's config.ReadConfig: same OCP_ENV/CONFIG_PATH path-resolution
// rule, but unmarshaling into a fixed EngineConfig struct instead of a
// map[string]interface{}, since the engine's config surface is small and
// known ahead of time (SPEC_FULL.md A.2).
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// EngineConfig is the engine's full runtime configuration: where the
// reference CDI/Savings data files live, what address the HTTP delivery
// wrapper binds to, and where logs get written.
type EngineConfig struct {
	CDIDataPath     string `json:"cdi_data_path"`
	SavingsDataPath string `json:"savings_data_path"`
	ServerAddr      string `json:"server_addr"`
	LogDir          string `json:"log_dir"`
}

// defaultConfig is used for any field left unset by the loaded file.
func defaultConfig() EngineConfig {
	return EngineConfig{
		CDIDataPath:     "",
		SavingsDataPath: "",
		ServerAddr:      ":8080",
		LogDir:          "./logs",
	}
}

// ReadConfig resolves the config file path the same way the teacher does
// (OCP_ENV unset → ./config.json; otherwise CONFIG_PATH + config.json) and
// unmarshals it into an EngineConfig, falling back to defaultConfig for any
// field the file omits.
func ReadConfig() (EngineConfig, error) {
	ocpEnv := os.Getenv("OCP_ENV")
	configPath := os.Getenv("CONFIG_PATH")

	configPathFile := "./config.json"
	if ocpEnv != "" {
		configPathFile = configPath + "config.json"
	}

	log.Println("Reading in config from:", configPathFile)
	file, err := os.Open(configPathFile)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	cfg := defaultConfig()
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}
