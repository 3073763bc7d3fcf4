package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config — корневая структура конфигурации песочницы.

type Config struct {
	Terrain       TerrainConfig       `yaml:"terrain"`
	Input         InputConfig         `yaml:"input"`
	Movement      MovementConfig      `yaml:"movement"`
	EventBus      EventBusConfig      `yaml:"eventbus"`
	Server        ServerConfig        `yaml:"server"`
	Observability ObservabilityConfig `yaml:"observability"`
}

type TerrainConfig struct {
	Preset     string `yaml:"preset"`      // wave | noise
	BaseOffset int    `yaml:"base_offset"` // Базовая высота колонны (0 — значение по умолчанию)
	Seed       int64  `yaml:"seed"`
	XMin       int    `yaml:"x_min"`
	XMax       int    `yaml:"x_max"`
	ZMin       int    `yaml:"z_min"`
	ZMax       int    `yaml:"z_max"`
}

type InputConfig struct {
	Sensitivity float64 `yaml:"sensitivity"` // Радианы на единицу дельты указателя
}

type MovementConfig struct {
	Speed float64 `yaml:"speed"` // Блоки в секунду
}

type EventBusConfig struct {
	URL       string `yaml:"url"` // Пусто — in-memory шина
	Stream    string `yaml:"stream"`
	Retention int    `yaml:"retention_hours"`
	Buffer    int    `yaml:"buffer"`
}

type ServerConfig struct {
	RESTPort int `yaml:"rest_port"`
	TickRate int `yaml:"tick_rate"` // Тиков в секунду
}

type ObservabilityConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// GetRESTPort возвращает REST API порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "SANDBOX_REST_PORT", 8088)
}

// GetTickRate возвращает частоту тиков, по умолчанию 60
func (s *ServerConfig) GetTickRate() int {
	if s.TickRate > 0 {
		return s.TickRate
	}
	return 60
}

// GetSensitivity возвращает чувствительность указателя, по умолчанию 0.002
func (i *InputConfig) GetSensitivity() float64 {
	if i.Sensitivity > 0 {
		return i.Sensitivity
	}
	return 0.002
}

// GetSpeed возвращает скорость перемещения, по умолчанию 6 блоков в секунду
func (m *MovementConfig) GetSpeed() float64 {
	if m.Speed > 0 {
		return m.Speed
	}
	return 6.0
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	// Используем дефолтное значение
	return defaultPort
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV SANDBOX_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("SANDBOX_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
