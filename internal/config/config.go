package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultBaseURL — регион US по умолчанию.
const DefaultBaseURL = "https://us2.make.com/api/v2"

// Ошибки валидации настроек.
var (
	// ErrMissingToken — не задан API-токен.
	ErrMissingToken = errors.New("MAKE_API_TOKEN is required")

	// ErrMissingScope — не задан ни team ID, ни organization ID.
	ErrMissingScope = errors.New("either MAKE_TEAM_ID or MAKE_ORGANIZATION_ID is required")

	// ErrAmbiguousScope — заданы и team ID, и organization ID.
	ErrAmbiguousScope = errors.New("cannot specify both MAKE_TEAM_ID and MAKE_ORGANIZATION_ID")

	// ErrInvalidBaseURL — базовый URL без схемы http(s).
	ErrInvalidBaseURL = errors.New("base URL must start with http:// or https://")
)

// Config — настройки подключения к Make.com API.
type Config struct {
	APIToken       string `toml:"api_token"`
	BaseURL        string `toml:"base_url"`
	TeamID         int    `toml:"team_id"`
	OrganizationID int    `toml:"organization_id"`
}

// DefaultPath возвращает путь конфиг-файла по умолчанию.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "makeblueprint", "config.toml")
}

// Load собирает настройки из TOML-файла и переменных окружения.
//
// path — явный путь к файлу (пустой — DefaultPath; отсутствие файла по
// умолчанию не ошибка, отсутствие явно заданного — ошибка). Переменные
// окружения перекрывают значения файла. Результат валидируется.
func Load(path string) (*Config, error) {
	cfg := &Config{BaseURL: DefaultBaseURL}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := loadFile(path, cfg, explicit); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MAKE_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	// Зона — короткая форма базового URL; явный MAKE_API_BASE_URL сильнее
	if v := os.Getenv("MAKE_ZONE"); v != "" {
		cfg.BaseURL = fmt.Sprintf("https://%s.make.com/api/v2", v)
	}
	if v := os.Getenv("MAKE_API_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("MAKE_TEAM_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			cfg.TeamID = id
		}
	}
	if v := os.Getenv("MAKE_ORGANIZATION_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			cfg.OrganizationID = id
		}
	}
}

// Validate проверяет настройки и нормализует базовый URL.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIToken) == "" {
		return ErrMissingToken
	}
	if c.TeamID == 0 && c.OrganizationID == 0 {
		return ErrMissingScope
	}
	if c.TeamID != 0 && c.OrganizationID != 0 {
		return ErrAmbiguousScope
	}

	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return ErrInvalidBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	return nil
}

// IsTeamBased сообщает, идёт ли доступ от имени команды.
func (c *Config) IsTeamBased() bool { return c.TeamID != 0 }

// IsOrganizationBased сообщает, идёт ли доступ от имени организации.
func (c *Config) IsOrganizationBased() bool { return c.OrganizationID != 0 }

// String — представление без утечки токена.
func (c *Config) String() string {
	token := "***"
	if len(c.APIToken) > 8 {
		token = c.APIToken[:8] + "..."
	}
	if c.OrganizationID != 0 {
		return fmt.Sprintf("Config(organization_id=%d, token=%s)", c.OrganizationID, token)
	}
	return fmt.Sprintf("Config(team_id=%d, token=%s)", c.TeamID, token)
}
