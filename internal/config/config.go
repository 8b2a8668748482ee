package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file auszug looks for.
const DefaultFileName = "auszug.yaml"

// apiKeyEnv is the environment variable holding the Gemini API key.
// The key never lives in the YAML file.
const apiKeyEnv = "GEMINI_API_KEY"

// Config represents the top-level auszug.yaml configuration.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Model  ModelConfig  `yaml:"model"`
}

// OutputConfig controls where group CSV files are written.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	DefaultName string `yaml:"default_name"` // CSV for files directly under the scan root
}

// ModelConfig selects the extraction model.
type ModelConfig struct {
	Name        string  `yaml:"name"`
	Temperature float32 `yaml:"temperature"`
}

// Load reads an auszug.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the stock settings.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:         ".",
			DefaultName: "kontoauszuege.csv",
		},
		Model: ModelConfig{
			Name:        "gemini-1.5-flash",
			Temperature: 0,
		},
	}
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Output.Dir == "" {
		c.Output.Dir = d.Output.Dir
	}
	if c.Output.DefaultName == "" {
		c.Output.DefaultName = d.Output.DefaultName
	}
	if c.Model.Name == "" {
		c.Model.Name = d.Model.Name
	}
}

// APIKey resolves the Gemini API key from the environment, loading a
// .env file first if one is present.
func APIKey() (string, error) {
	_ = godotenv.Load()

	key := os.Getenv(apiKeyEnv)
	if key == "" {
		return "", fmt.Errorf("%s environment variable not set", apiKeyEnv)
	}
	return key, nil
}
