package config

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// MinJWTSecretLength is the shortest signing key accepted at startup.
// HS384 wants at least as many key bytes as its output size.
const MinJWTSecretLength = 32

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")
var ErrWeakJWTSecret = fmt.Errorf("JWT_SECRET must be at least %d bytes", MinJWTSecretLength)

type Argon2Config struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
	// Maximum number of hash computations running at once
	Workers int
}

type TokenConfig struct {
	TTL        time.Duration
	CookieName string
}

type RedisSettings struct {
	Address  string
	Password string
	DB       int
}

type Config struct {
	// Server port
	Port      string
	AppEnv    string
	LogLevel  string
	JWTSecret string
	Token     TokenConfig
	Argon2    Argon2Config
	// sqlite3, redis or memory. Selects the credential store.
	DatabaseDriver string
	// sqlite DSN, also used for the package registry
	DatabaseDSN   string
	RedisSettings RedisSettings
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TOKEN_TTL_SECONDS", 3600)
	v.SetDefault("TOKEN_COOKIE_NAME", "auth_token")
	// argon2id defaults match the reference parameters (m=19456, t=2, p=1)
	v.SetDefault("ARGON2_MEMORY_KIB", 19*1024)
	v.SetDefault("ARGON2_ITERATIONS", 2)
	v.SetDefault("ARGON2_PARALLELISM", 1)
	v.SetDefault("ARGON2_SALT_LENGTH", 16)
	v.SetDefault("ARGON2_KEY_LENGTH", 32)
	v.SetDefault("HASH_WORKERS", runtime.NumCPU())
	v.SetDefault("DATABASE_DRIVER", "sqlite3")
	v.SetDefault("DATABASE_DSN", "file:packages.db?_fk=1")
	v.SetDefault("REDIS_ADDRESS", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
}

// LoadConfig reads .env from the working directory (or ./config) and the process environment.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Info().Msg("Config file not found, using defaults and environment variables")
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	jwtSecret := v.GetString("JWT_SECRET")
	if jwtSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	if len(jwtSecret) < MinJWTSecretLength {
		return nil, ErrWeakJWTSecret
	}

	ttlSeconds := v.GetInt64("TOKEN_TTL_SECONDS")
	if ttlSeconds <= 0 {
		log.Warn().Int64("ttl", ttlSeconds).Msg("Invalid TOKEN_TTL_SECONDS, defaulting to 3600")
		ttlSeconds = 3600
	}

	workers := v.GetInt("HASH_WORKERS")
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	parallelism := v.GetUint32("ARGON2_PARALLELISM")
	if parallelism == 0 || parallelism > 255 {
		return nil, fmt.Errorf("ARGON2_PARALLELISM must be between 1 and 255, got %d", parallelism)
	}

	argon := Argon2Config{
		MemoryKiB:   v.GetUint32("ARGON2_MEMORY_KIB"),
		Iterations:  v.GetUint32("ARGON2_ITERATIONS"),
		Parallelism: uint8(parallelism),
		SaltLength:  v.GetUint32("ARGON2_SALT_LENGTH"),
		KeyLength:   v.GetUint32("ARGON2_KEY_LENGTH"),
		Workers:     workers,
	}
	if argon.MemoryKiB == 0 || argon.Iterations == 0 || argon.SaltLength < 8 || argon.KeyLength < 16 {
		return nil, fmt.Errorf("invalid argon2 parameters: %+v", argon)
	}

	driver := v.GetString("DATABASE_DRIVER")
	switch driver {
	case "sqlite3", "redis", "memory":
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", driver)
	}

	return &Config{
		Port:      v.GetString("APP_PORT"),
		AppEnv:    v.GetString("APP_ENV"),
		LogLevel:  v.GetString("LOG_LEVEL"),
		JWTSecret: jwtSecret,
		Token: TokenConfig{
			TTL:        time.Duration(ttlSeconds) * time.Second,
			CookieName: v.GetString("TOKEN_COOKIE_NAME"),
		},
		Argon2:         argon,
		DatabaseDriver: driver,
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		RedisSettings: RedisSettings{
			Address:  v.GetString("REDIS_ADDRESS"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
	}, nil
}
