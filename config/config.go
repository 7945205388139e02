package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"
)

type Config struct {
	Airbase  AirbaseConfig  `yaml:"airbase"`
	Track17  Track17Config  `yaml:"track17"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Redis    RedisConfig    `yaml:"redis"`
	CaseDesk CaseDeskConfig `yaml:"casedesk"`
}

type AirbaseConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	BaseID  string `yaml:"base_id"`
}

type Track17Config struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`

	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type KafkaConfig struct {
	Host                 string `yaml:"host"`
	Port                 int    `yaml:"port"`
	CaseUpdatedTopicName string `yaml:"case_updated_topic_name"`
}

type RedisConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type CaseDeskConfig struct {
	HTTPAddr string `yaml:"http_addr"`

	CatalogCacheTTLSeconds int `yaml:"catalog_cache_ttl_seconds"`

	// Пороги производных статусов. Нули — значения по умолчанию
	// (72h застой трекинга, 24h/48h возраст кейса).
	TrackingStaleHours int `yaml:"tracking_stale_hours"`
	CaseOverdueHours   int `yaml:"case_overdue_hours"`
	CaseCriticalHours  int `yaml:"case_critical_hours"`
}

func (k KafkaConfig) Addr() string {
	return fmt.Sprintf("%s:%d", k.Host, k.Port)
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return &config, nil
}
