package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string   `yaml:"port" env:"SERVER_PORT"`
		Mode           string   `yaml:"mode" env:"SERVER_MODE"`
		AllowedOrigins []string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS"`
	} `yaml:"server"`

	Database struct {
		Host            string        `yaml:"host" env:"DB_HOST"`
		Port            string        `yaml:"port" env:"DB_PORT"`
		User            string        `yaml:"user" env:"DB_USER"`
		Password        string        `yaml:"password" env:"DB_PASSWORD"`
		DBName          string        `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string        `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		QueryTimeout    time.Duration `yaml:"query_timeout" env:"DB_QUERY_TIMEOUT"`
		MigrationsDir   string        `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	Mongo struct {
		URI      string        `yaml:"uri" env:"MONGO_URI"`
		Database string        `yaml:"database" env:"MONGO_DATABASE"`
		Timeout  time.Duration `yaml:"timeout" env:"MONGO_TIMEOUT"`
	} `yaml:"mongo"`

	Redis struct {
		Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
		Password string        `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int           `yaml:"db" env:"REDIS_DB"`
		PostTTL  time.Duration `yaml:"post_ttl" env:"REDIS_POST_TTL"`
	} `yaml:"redis"`

	JWT struct {
		Secret string `yaml:"secret" env:"JWT_SECRET"`
		Issuer string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Notifications struct {
		RetentionDays    int           `yaml:"retention_days" env:"NOTIFICATIONS_RETENTION_DAYS"`
		SweepInterval    time.Duration `yaml:"sweep_interval" env:"NOTIFICATIONS_SWEEP_INTERVAL"`
		DefaultListLimit int           `yaml:"default_list_limit" env:"NOTIFICATIONS_DEFAULT_LIST_LIMIT"`
	} `yaml:"notifications"`

	Feed struct {
		PageSize int `yaml:"page_size" env:"FEED_PAGE_SIZE"`
	} `yaml:"feed"`

	Events struct {
		// ReminderLead is how far ahead of an event its participants are reminded
		ReminderLead     time.Duration `yaml:"reminder_lead" env:"EVENTS_REMINDER_LEAD"`
		ReminderInterval time.Duration `yaml:"reminder_interval" env:"EVENTS_REMINDER_INTERVAL"`
	} `yaml:"events"`
}

// LoadConfig loads configuration from a file and environment variables.
// A .env file next to the working directory is loaded first when present.
func LoadConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "campushub"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = time.Hour
	config.Database.QueryTimeout = 5 * time.Second
	config.Database.MigrationsDir = "migrations"

	config.Mongo.URI = "mongodb://localhost:27017"
	config.Mongo.Database = "campushub"
	config.Mongo.Timeout = 5 * time.Second

	config.Redis.Addr = "localhost:6379"
	config.Redis.PostTTL = 5 * time.Minute

	config.JWT.Issuer = "campushub.app"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Notifications.RetentionDays = 60
	config.Notifications.SweepInterval = 24 * time.Hour
	config.Notifications.DefaultListLimit = 30

	config.Feed.PageSize = 20

	config.Events.ReminderLead = 24 * time.Hour
	config.Events.ReminderInterval = 15 * time.Minute
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.Mongo.URI == "" || config.Mongo.Database == "" {
		return fmt.Errorf("mongo uri and database are required")
	}

	if config.Redis.Addr == "" {
		return fmt.Errorf("redis address is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if config.Database.QueryTimeout <= 0 || config.Mongo.Timeout <= 0 {
		return fmt.Errorf("store timeouts must be positive")
	}

	if config.Redis.PostTTL <= 0 {
		return fmt.Errorf("redis post_ttl must be positive")
	}

	if config.Notifications.RetentionDays <= 0 {
		return fmt.Errorf("notifications retention_days must be positive")
	}

	if config.Notifications.SweepInterval <= 0 {
		return fmt.Errorf("notifications sweep_interval must be positive")
	}

	if config.Feed.PageSize <= 0 {
		return fmt.Errorf("feed page_size must be positive")
	}

	if config.Events.ReminderLead <= 0 || config.Events.ReminderInterval <= 0 {
		return fmt.Errorf("events reminder_lead and reminder_interval must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// NotificationRetention returns how long notifications are kept before the sweep deletes them.
func (c *Config) NotificationRetention() time.Duration {
	return time.Duration(c.Notifications.RetentionDays) * 24 * time.Hour
}
