package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type RESTconfig struct {
	PORT           string
	AllowedOrigins []string
}

// BackendConfig - API, откуда берутся объявления и клиенты.
type BackendConfig struct {
	URL       string
	PageLimit int
	Timeout   time.Duration
}

// Драйверы хранилища статусов брифинга
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type BriefingStorageConfig struct {
	Driver string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type DBconfig struct {
	URL      string
	MaxConns int
}

type RabbitMQConfig struct {
	Enabled  bool
	URL      string
	Exchange string
}

type SessionsConfig struct {
	TTL             time.Duration
	JanitorInterval time.Duration
}

// AuthConfig - пустой секрет означает, что токены проверяет только API Gateway.
type AuthConfig struct {
	JWTSecret string
}

type MetricsConfig struct {
	Enabled bool
}

type StdoutLogConfig struct {
	Level  string
	IsJSON bool
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName         string
	Rest            RESTconfig
	Backend         BackendConfig
	BriefingStorage BriefingStorageConfig
	Redis           RedisConfig
	Database        DBconfig
	RabbitMQ        RabbitMQConfig
	Sessions        SessionsConfig
	Auth            AuthConfig
	Metrics         MetricsConfig
	FluentBit       FluentBitConfig
	StdoutLogger    StdoutLogConfig
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Файл .env необязателен: без него берутся переменные процесса.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v. Using process environment.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "briefing-service")

	cfg.Rest.PORT = getEnvAsString("PORT", "8090")
	cfg.Rest.AllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS")

	cfg.Backend.URL = strings.TrimRight(os.Getenv("BACKEND_URL"), "/")
	if cfg.Backend.URL == "" {
		return nil, fmt.Errorf("BACKEND_URL environment variable is required")
	}
	cfg.Backend.PageLimit = getEnvAsInt("BACKEND_PAGE_LIMIT", 500)
	cfg.Backend.Timeout = getEnvAsDuration("BACKEND_TIMEOUT", 15*time.Second)

	cfg.BriefingStorage.Driver = strings.ToLower(getEnvAsString("BRIEFING_STORAGE", StorageMemory))
	switch cfg.BriefingStorage.Driver {
	case StorageMemory:
	case StorageRedis:
		cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
		if cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("REDIS_ADDR environment variable is required for redis storage")
		}
		cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
		cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)
		cfg.Redis.TTL = getEnvAsDuration("REDIS_TTL", 0)
	case StoragePostgres:
		cfg.Database.URL = os.Getenv("DATABASE_URL")
		if cfg.Database.URL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required for postgres storage")
		}
		cfg.Database.MaxConns = getEnvAsInt("DATABASE_MAX_CONNS", 0)
	default:
		return nil, fmt.Errorf("unknown BRIEFING_STORAGE driver %q", cfg.BriefingStorage.Driver)
	}

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			log.Println("WARNING: RABBITMQ_ENABLED is true, but RABBITMQ_URL is not set. Disabling RabbitMQ.")
			cfg.RabbitMQ.Enabled = false
		}
		cfg.RabbitMQ.Exchange = getEnvAsString("RABBITMQ_EXCHANGE", "briefing_events")
	}

	cfg.Sessions.TTL = getEnvAsDuration("SESSION_TTL", 2*time.Hour)
	cfg.Sessions.JanitorInterval = getEnvAsDuration("SESSION_JANITOR_INTERVAL", time.Minute)

	cfg.Auth.JWTSecret = os.Getenv("AUTH_JWT_SECRET")

	cfg.Metrics.Enabled = getEnvAsBool("METRICS_ENABLED", true)

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")
	cfg.StdoutLogger.IsJSON = getEnvAsBool("STDOUT_LOG_JSON", false)

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists || valStr == "" {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists || valStr == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvAsList - значения через запятую, пустые элементы отбрасываются.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
