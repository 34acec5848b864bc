package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Custody    CustodyConfig    `mapstructure:"custody"`
	Ledger     LedgerConfig     `mapstructure:"ledger"`
	Settlement SettlementConfig `mapstructure:"settlement"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"` // debug, release, test
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres, memory
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type CustodyConfig struct {
	// Key is either 64 hex chars (raw AES-256 key) or a passphrase that is
	// stretched with HKDF-SHA256.
	Key string `mapstructure:"key"`
}

type LedgerConfig struct {
	RPCURL      string        `mapstructure:"rpc_url"` // empty runs the gateway offline
	FaucetKey   string        `mapstructure:"faucet_key"`
	Decimals    int32         `mapstructure:"decimals"`
	CallTimeout time.Duration `mapstructure:"call_timeout"`
}

type SettlementConfig struct {
	InitialBonus         string        `mapstructure:"initial_bonus"`
	FundingInitialDelay  time.Duration `mapstructure:"funding_initial_delay"`
	FundingPollAttempts  int           `mapstructure:"funding_poll_attempts"`
	FundingPollInterval  time.Duration `mapstructure:"funding_poll_interval"`
	DepositSettleDelay   time.Duration `mapstructure:"deposit_settle_delay"`
	SystemWalletEnvelope string        `mapstructure:"system_wallet_envelope"`
	IdempotencyTTL       time.Duration `mapstructure:"idempotency_ttl"`
}

// Bonus parses InitialBonus.
func (s SettlementConfig) Bonus() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s.InitialBonus))
	if err != nil {
		return decimal.Zero, fmt.Errorf("settlement.initial_bonus: %w", err)
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("settlement.initial_bonus must not be negative")
	}
	return d, nil
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: CASINO_.
// Nested keys use underscore: CASINO_DATABASE_HOST, CASINO_CUSTODY_KEY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "casino_wallet")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("custody.key", "")
	v.SetDefault("ledger.rpc_url", "")
	v.SetDefault("ledger.faucet_key", "")
	v.SetDefault("ledger.decimals", 18)
	v.SetDefault("ledger.call_timeout", "10s")
	v.SetDefault("settlement.initial_bonus", "100")
	v.SetDefault("settlement.funding_initial_delay", "1s")
	v.SetDefault("settlement.funding_poll_attempts", 3)
	v.SetDefault("settlement.funding_poll_interval", "500ms")
	v.SetDefault("settlement.deposit_settle_delay", "500ms")
	v.SetDefault("settlement.system_wallet_envelope", "")
	v.SetDefault("settlement.idempotency_ttl", "24h")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// CASINO_DATABASE_HOST -> database.host
	v.SetEnvPrefix("CASINO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env")
// into the process environment. Missing files are ignored; variables already
// set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("loading dotenv: %w", err)
	}
	return nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive, got %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q is not one of debug, release, test", c.Server.Mode)
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("database.driver %q is not supported", c.Database.Driver)
	}
	if strings.TrimSpace(c.Custody.Key) == "" {
		return errors.New("custody.key is required")
	}
	if _, err := c.Settlement.Bonus(); err != nil {
		return err
	}
	if c.Settlement.FundingPollAttempts < 1 {
		return errors.New("settlement.funding_poll_attempts must be at least 1")
	}
	if c.Ledger.Decimals < 0 {
		return errors.New("ledger.decimals must not be negative")
	}
	return nil
}
