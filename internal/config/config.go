package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Config описывает параметры оболочки.
type Config struct {
	Shell struct {
		Prompt string `yaml:"prompt"`
		Banner string `yaml:"banner"`
		// Home переопределяет $HOME для раскрытия "~".
		Home string `yaml:"home"`
		// Allow, если задан, ограничивает набор команд; Deny запрещает команды.
		Allow []string `yaml:"allow"`
		Deny  []string `yaml:"deny"`
	} `yaml:"shell"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Audit struct {
		Enabled    bool   `yaml:"enabled"`
		SQLitePath string `yaml:"sqlite_path"`
		QueryLimit int    `yaml:"query_limit"`
	} `yaml:"audit"`
}

// Default возвращает конфигурацию по умолчанию.
func Default() Config {
	var cfg Config
	cfg.Shell.Prompt = "> "
	cfg.Shell.Banner = "Hello, shell!"
	cfg.Log.Level = "info"
	cfg.Audit.Enabled = false
	cfg.Audit.SQLitePath = "/var/lib/mshell/audit.db"
	cfg.Audit.QueryLimit = 50
	return cfg
}

// Load читает конфиг из файла YAML, поверх значений по умолчанию.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- путь к конфигу задается оператором.
	if err != nil {
		return cfg, err
	}
	if len(data) == 0 {
		return cfg, errors.New("config file is empty")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
