package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

type ExplorerConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	ChainID string `yaml:"chain_id"`
}

type AIConfig struct {
	Provider       string `yaml:"provider"`
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite 或 postgres
	Path   string `yaml:"path"`   // sqlite file path
	DSN    string `yaml:"dsn"`    // postgres DSN
}

type AppConfig struct {
	Explorer  ExplorerConfig `yaml:"explorer"`
	AI        AIConfig       `yaml:"ai"`
	Database  DatabaseConfig `yaml:"database"`
	DataDir   string         `yaml:"data_dir"`
	ReportDir string         `yaml:"report_dir"`
}

var GlobalConfig *AppConfig
var loadOnce sync.Once
var loadedConfig *AppConfig
var loadedErr error

// LoadConfig 加载 YAML 配置，找不到配置文件时回退到默认值
func LoadConfig() (*AppConfig, error) {
	loadOnce.Do(func() {
		config := defaultConfig()

		configPath := findConfigFile()
		if configPath != "" {
			data, err := os.ReadFile(configPath)
			if err != nil {
				loadedErr = fmt.Errorf("failed to read configuration file: %w", err)
				return
			}
			config, loadedErr = Parse(data)
			if loadedErr != nil {
				return
			}
		} else {
			applyDefaults(config)
		}

		if key := os.Getenv("ETHERSCAN_API_KEY"); key != "" {
			config.Explorer.APIKey = key
		}

		loadedConfig = config
		GlobalConfig = loadedConfig
	})

	if loadedErr != nil {
		return nil, loadedErr
	}
	return loadedConfig, nil
}

// Parse decodes a YAML settings document and fills in defaults for anything
// it leaves unset.
func Parse(data []byte) (*AppConfig, error) {
	config := defaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}
	applyDefaults(config)
	return config, nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Explorer: ExplorerConfig{
			BaseURL: "https://api.etherscan.io/v2/api",
			ChainID: "1", // Ethereum Mainnet
		},
		AI: AIConfig{
			Provider:       "ollama",
			Model:          "phi3",
			TimeoutSeconds: 120,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   "data/solscope.db",
		},
		DataDir:   "data",
		ReportDir: "reports",
	}
}

func applyDefaults(c *AppConfig) {
	d := defaultConfig()
	if c.Explorer.BaseURL == "" {
		c.Explorer.BaseURL = d.Explorer.BaseURL
	}
	if c.Explorer.ChainID == "" {
		c.Explorer.ChainID = d.Explorer.ChainID
	}
	if c.AI.Provider == "" {
		c.AI.Provider = d.AI.Provider
	}
	if c.AI.Model == "" {
		c.AI.Model = d.AI.Model
	}
	if c.AI.TimeoutSeconds <= 0 {
		c.AI.TimeoutSeconds = d.AI.TimeoutSeconds
	}
	if c.Database.Driver == "" {
		c.Database.Driver = d.Database.Driver
	}
	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		c.Database.Path = d.Database.Path
	}
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.ReportDir == "" {
		c.ReportDir = d.ReportDir
	}
}

func (c *AppConfig) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

func findConfigFile() string {
	possiblePaths := []string{
		"config/settings.yaml",
		"settings.yaml",
		"../config/settings.yaml",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
