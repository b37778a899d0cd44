package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/CIDgravity/snakelet"
	"github.com/Scalingo/sclng-top-languages/model"
)

// config structure
type Config struct {
	API    APIConfig    `mapstructure:"API"`
	Tasks  TasksConfig  `mapstructure:"TASKS"`
	Logs   LogsConfig   `mapstructure:"LOGS"`
	Github GithubConfig `mapstructure:"GITHUB"`
	Gitlab GitlabConfig `mapstructure:"GITLAB"`
}

type APIConfig struct {
	ListenPort string `mapstructure:"ListenPort"`
}

type TasksConfig struct {
	MaxParallelTasksAllowed int     `mapstructure:"MaxParallelTasksAllowed"`
	RequestsPerSecond       float64 `mapstructure:"RequestsPerSecond"`
}

type LogsConfig struct {
	Level            string `mapstructure:"Level"` // error | warn | info | debug - case insensitive
	OutputLogsAsJSON bool   `mapstructure:"OutputLogsAsJson"`
}

type GithubConfig struct {
	Token   string `mapstructure:"Token"`
	BaseURL string `mapstructure:"BaseURL"` // empty means api.github.com
}

type GitlabConfig struct {
	Token   string `mapstructure:"Token"`
	BaseURL string `mapstructure:"BaseURL"`
}

const configFileName = "config/config.toml"

// Load returns the default configuration merged with config/config.toml when one exists
// next to the binary or in the working directory, then applies the environment overrides
func Load() (*Config, error) {
	cfg := GetDefault()

	configFilePath, err := findConfigFile()
	if err != nil {
		return nil, err
	}

	// no config file is fine for the cli, defaults and environment are enough
	if configFilePath != "" {
		if _, err := snakelet.InitAndLoad(cfg, configFilePath); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnvironment()
	return cfg, nil
}

func findConfigFile() (string, error) {
	dir, err := filepath.Abs(filepath.Dir(os.Args[0]))
	if err != nil {
		return "", err
	}

	for _, candidate := range []string{filepath.Join(dir, configFileName), configFileName} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}

	return "", nil
}

// ApplyEnvironment overrides tokens and API urls with the environment variables when set
func (c *Config) ApplyEnvironment() {
	overrides := map[string]*string{
		"GITHUB_TOKEN":   &c.Github.Token,
		"GITLAB_TOKEN":   &c.Gitlab.Token,
		"GITHUB_API_URL": &c.Github.BaseURL,
		"GITLAB_API_URL": &c.Gitlab.BaseURL,
	}

	for name, target := range overrides {
		if value, ok := os.LookupEnv(name); ok && value != "" {
			*target = value
		}
	}
}

// Validate checks both platform tokens are present
// both are required even if only one platform will be queried
func (c Config) Validate() error {
	if c.Github.Token == "" || c.Gitlab.Token == "" {
		return model.ErrMissingCredentials
	}

	return nil
}

// GetDefault
func GetDefault() *Config {
	return &Config{
		API: APIConfig{
			ListenPort: "5000",
		},
		Tasks: TasksConfig{
			MaxParallelTasksAllowed: 8,
			RequestsPerSecond:       10,
		},
		Logs: LogsConfig{
			Level:            "info",
			OutputLogsAsJSON: false,
		},
		Gitlab: GitlabConfig{
			BaseURL: "https://gitlab.com",
		},
	}
}
