package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "SHELTER"

// KafkaConfig holds the intake event stream settings. Empty Brokers disables it.
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// APIConfig holds the shelter API connection settings.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
	Debug   bool
}

// LogConfig holds the optional rolling log file settings.
type LogConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// ServiceConfig holds all configuration for the intake gateway.
type ServiceConfig struct {
	Port            string
	AppEnv          string
	SessionCapacity int
	CORSOrigins     []string
	API             APIConfig
	Kafka           KafkaConfig
	Log             LogConfig
}

// Load reads configuration from SHELTER_* environment variables.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &ServiceConfig{
		Port:            normalizePort(v.GetString("SERVICE_PORT")),
		AppEnv:          v.GetString("APP_ENV"),
		SessionCapacity: v.GetInt("SESSION_CAPACITY"),
		CORSOrigins:     splitList(v.GetString("CORS_ORIGINS")),
		API: APIConfig{
			BaseURL: strings.TrimSpace(v.GetString("API_BASE_URL")),
			Timeout: v.GetDuration("API_TIMEOUT"),
			Debug:   v.GetBool("API_DEBUG"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
			GroupID: v.GetString("KAFKA_GROUP_ID"),
		},
		Log: LogConfig{
			Path:       v.GetString("LOG_PATH"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_PORT", ":8090")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SESSION_CAPACITY", 1024)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("API_BASE_URL", "http://localhost:8001")
	v.SetDefault("API_TIMEOUT", "30s")
	v.SetDefault("API_DEBUG", false)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "shelter.intake.events")
	v.SetDefault("KAFKA_GROUP_ID", "shelter-intake-gateway")
	v.SetDefault("LOG_PATH", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 3)
	v.SetDefault("LOG_MAX_AGE_DAYS", 7)
}

func (c *ServiceConfig) validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%s_API_BASE_URL is required", envPrefix)
	}
	if c.SessionCapacity <= 0 {
		return fmt.Errorf("%s_SESSION_CAPACITY must be positive, got %d", envPrefix, c.SessionCapacity)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%s_API_TIMEOUT must be positive", envPrefix)
	}
	return nil
}

// ConsumerGroupID returns the intake consumer group of one gateway instance.
// Each instance needs its own group so every replica sees every event.
func (c *ServiceConfig) ConsumerGroupID(instanceID string) string {
	return c.Kafka.GroupID + "-" + instanceID
}

// KafkaEnabled reports whether intake events are streamed.
func (c *ServiceConfig) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

func normalizePort(p string) string {
	p = strings.TrimSpace(p)
	if p != "" && !strings.Contains(p, ":") {
		return ":" + p
	}
	return p
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
