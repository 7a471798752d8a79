package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, TTLs, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	DB     DBConfig
	CORS   CORSConfig
	Log    LogConfig
	JWT    JWTConfig
	Cache  CacheConfig
	Cart   CartConfig
	Redis  RedisConfig
	Kafka  KafkaConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

// JWTConfig describes the bearer tokens minted by the identity provider.
// An empty Issuer skips the iss check.
type JWTConfig struct {
	Secret        string        `envconfig:"JWT_SECRET" required:"true"`
	Issuer        string        `envconfig:"JWT_ISSUER"`
	Leeway        time.Duration `envconfig:"JWT_LEEWAY" default:"30s"`
	TokenDuration time.Duration `envconfig:"JWT_TOKEN_DURATION" default:"1h"`
}

// CacheConfig holds the TTL policy of the reference-data read-through cache.
type CacheConfig struct {
	CollectionTTL time.Duration `envconfig:"CACHE_COLLECTION_TTL" default:"5m"`
	ProfileTTL    time.Duration `envconfig:"CACHE_PROFILE_TTL" default:"60s"`
	// expired entries stay this long as the stale fallback
	StaleRetention time.Duration `envconfig:"CACHE_STALE_RETENTION" default:"1h"`
	SweepInterval  time.Duration `envconfig:"CACHE_SWEEP_INTERVAL" default:"5m"`
}

type CartConfig struct {
	// redis | postgres | memory
	StoreBackend    string        `envconfig:"CART_STORE_BACKEND" default:"redis"`
	PersistDebounce time.Duration `envconfig:"CART_PERSIST_DEBOUNCE" default:"300ms"`
	IdleEviction    time.Duration `envconfig:"CART_IDLE_EVICTION" default:"30m"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type KafkaConfig struct {
	// empty disables publishing; receipts are only logged
	Brokers      []string `envconfig:"KAFKA_BROKERS"`
	ReceiptTopic string   `envconfig:"KAFKA_RECEIPT_TOPIC" default:"order-receipts"`
}

const (
	CartStoreRedis    = "redis"
	CartStorePostgres = "postgres"
	CartStoreMemory   = "memory"
)

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	switch cfg.Cart.StoreBackend {
	case CartStoreRedis, CartStorePostgres, CartStoreMemory:
	default:
		return Config{}, fmt.Errorf("unsupported CART_STORE_BACKEND %q", cfg.Cart.StoreBackend)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret:        "test-secret",
			Issuer:        "unicart-test",
			TokenDuration: time.Hour,
		},
		Cache: CacheConfig{
			CollectionTTL:  5 * time.Minute,
			ProfileTTL:     60 * time.Second,
			StaleRetention: time.Hour,
			SweepInterval:  5 * time.Minute,
		},
		Cart: CartConfig{
			StoreBackend:    CartStorePostgres,
			PersistDebounce: 10 * time.Millisecond,
			IdleEviction:    30 * time.Minute,
		},
		Kafka: KafkaConfig{
			ReceiptTopic: "order-receipts",
		},
	}
}
