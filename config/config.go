package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultUserID  = "demo-user"
	DefaultTimeout = 30 * time.Second
)

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	API     APIConfig     `yaml:"api"`
	// UserID stands in for a signed-in customer; there is no authentication.
	UserID string `yaml:"user_id"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

func Default() AppConfig {
	return AppConfig{
		Logging: LoggingConfig{Level: "info", File: "shopchat.log"},
		API:     APIConfig{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout},
		UserID:  DefaultUserID,
	}
}

// Load reads the config file at path, or the nearest config.yaml above the
// working directory when path is empty. A missing file is not an error:
// defaults are used. A .env next to the config file is loaded first, and
// environment variables override file values.
func Load(path string) (AppConfig, error) {
	cfg := Default()

	if path == "" {
		if base := GetBasePath(); base != "" {
			path = filepath.Join(base, CONFIG_FILE)
		}
	}

	envDir := "."
	if path != "" {
		envDir = filepath.Dir(path)
	}
	// .env is optional
	_ = godotenv.Load(filepath.Join(envDir, ENV_FILE))

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	fillDefaults(&cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("SHOPCHAT_API_BASE"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("SHOPCHAT_USER_ID"); v != "" {
		cfg.UserID = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("SHOPCHAT_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
}

func fillDefaults(cfg *AppConfig) {
	def := Default()
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = def.API.BaseURL
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = def.API.Timeout
	}
	if cfg.UserID == "" {
		cfg.UserID = def.UserID
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = def.Logging.File
	}
}

// GetBasePath walks up from the working directory to the first directory
// holding config.yaml. It returns "" when there is none.
func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
