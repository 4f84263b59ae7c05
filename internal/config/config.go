package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers
const (
	StoreFile    = "file"
	StoreMongoDB = "mongodb"
	StoreRedis   = "redis"
	StoreSQLite  = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	SQLite    SQLiteConfig
	JWT       JWTConfig
	Auth      AuthConfig
	Draw      DrawConfig
	LogLevel  string
	LogFormat string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
	Mode         string // gin mode: debug, release or test
}

// StoreConfig selects the persistence backend
type StoreConfig struct {
	Driver string
	Path   string // directory of the file store
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// SQLiteConfig holds the SQLite database location
type SQLiteConfig struct {
	Path string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// AuthConfig holds the admin account guarding mutating routes
type AuthConfig struct {
	Enabled      bool
	Username     string
	PasswordHash string // bcrypt
}

// DrawConfig holds draw timing and randomness
type DrawConfig struct {
	SuspenseDelay time.Duration
	Seed          int64 // 0 seeds from the clock
	TimeZone      string
}

// Load loads configuration from config.yaml in . or ./config and the environment
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	return load(v)
}

// LoadFile loads configuration from an explicit file and the environment
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "4000")
	v.SetDefault("Server.AllowedHosts", []string{"http://localhost:3000"})
	v.SetDefault("Server.Mode", "release")
	v.SetDefault("Store.Driver", StoreFile)
	v.SetDefault("Store.Path", "./data")
	v.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	v.SetDefault("MongoDB.Database", "nebula_luck")
	v.SetDefault("MongoDB.Collection", "lottery_slots")
	v.SetDefault("MongoDB.Timeout", 10*time.Second)
	v.SetDefault("Redis.Addr", "localhost:6379")
	v.SetDefault("Redis.DB", 0)
	v.SetDefault("Redis.Prefix", "nebula:")
	v.SetDefault("SQLite.Path", "./data/lottery.db")
	v.SetDefault("JWT.ExpiresIn", 12*60*60) // 12 hours
	v.SetDefault("Auth.Enabled", false)
	v.SetDefault("Auth.Username", "admin")
	v.SetDefault("Draw.SuspenseDelay", 3*time.Second)
	v.SetDefault("Draw.Seed", 0)
	v.SetDefault("Draw.TimeZone", "Local")
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogFormat", "json")
}

// Validate checks the settings that cannot be defaulted
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreFile:
		if c.Store.Path == "" {
			return errors.New("store.path is required for the file store")
		}
	case StoreMongoDB:
		if c.MongoDB.URI == "" || c.MongoDB.Database == "" {
			return errors.New("mongodb.uri and mongodb.database are required for the mongodb store")
		}
	case StoreRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis.addr is required for the redis store")
		}
	case StoreSQLite:
		if c.SQLite.Path == "" {
			return errors.New("sqlite.path is required for the sqlite store")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Draw.SuspenseDelay < 0 {
		return errors.New("draw.suspenseDelay must not be negative")
	}
	if c.Auth.Enabled {
		if c.JWT.Secret == "" {
			return errors.New("jwt.secret is required when auth is enabled")
		}
		if c.Auth.PasswordHash == "" {
			return errors.New("auth.passwordHash is required when auth is enabled")
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Draw.TimeZone
func (c *Config) Location() (*time.Location, error) {
	if c.Draw.TimeZone == "" || c.Draw.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Draw.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid draw.timeZone: %w", err)
	}
	return loc, nil
}
