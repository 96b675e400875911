// Package config loads per-binary configuration from YAML files and
// TASTEFUN_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle
}

// NATSConfig holds the NATS connection and JetStream settings
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	AckWait        time.Duration `mapstructure:"ack_wait"`
	MaxDeliver     int           `mapstructure:"max_deliver"`
}

// SolanaConfig holds the chain endpoints and monitored programs
type SolanaConfig struct {
	RPCURL       string `mapstructure:"rpc_url"`
	WebSocketURL string `mapstructure:"websocket_url"`
	// CoreProgram is the idea/vote lifecycle program address
	CoreProgram string `mapstructure:"core_program"`
	// SettlementProgram is the settlement and withdrawal program address
	SettlementProgram string `mapstructure:"settlement_program"`
	// TokenProgram is the theme token bonding-curve program address
	TokenProgram string `mapstructure:"token_program"`
	// KeypairPath points to the service identity used to sign the
	// image-confirmation instruction
	KeypairPath string `mapstructure:"keypair_path"`
}

// SyncConfig tunes the historical gap sync
type SyncConfig struct {
	MinSlotGap uint64        `mapstructure:"min_slot_gap"`
	Interval   time.Duration `mapstructure:"interval"`
	PageDelay  time.Duration `mapstructure:"page_delay"`
}

// GenerationConfig holds the image-generation service settings
type GenerationConfig struct {
	Endpoint    string        `mapstructure:"endpoint"`
	Model       string        `mapstructure:"model"`
	Width       int           `mapstructure:"width"`
	Height      int           `mapstructure:"height"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	ReadTimeout int    `mapstructure:"read_timeout"` // in seconds
	IdleTimeout int    `mapstructure:"idle_timeout"` // in seconds
}

// PoolConfig holds worker pool configuration
type PoolConfig struct {
	PoolSize int `mapstructure:"pool_size"`
}

// IndexerConfig holds configuration for the indexer binary
type IndexerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Solana     SolanaConfig   `mapstructure:"solana"`
	Sync       SyncConfig     `mapstructure:"sync"`
}

// GatewayConfig holds configuration for the gateway binary
type GatewayConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
}

// WorkerConfig holds configuration for the worker binary
type WorkerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig   `mapstructure:"database"`
	NATS       NATSConfig       `mapstructure:"nats"`
	Solana     SolanaConfig     `mapstructure:"solana"`
	Generation GenerationConfig `mapstructure:"generation"`
	Worker     PoolConfig       `mapstructure:"worker"`
}

// LoadIndexerConfig loads configuration for the indexer binary
func LoadIndexerConfig(configFile string, envPath string) (*IndexerConfig, error) {
	v := configureViper("indexer", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setNATSDefaults(v, "indexer")
	v.SetDefault("solana.rpc_url", "https://api.mainnet-beta.solana.com")
	v.SetDefault("solana.websocket_url", "wss://api.mainnet-beta.solana.com")
	v.SetDefault("sync.min_slot_gap", 100)
	v.SetDefault("sync.interval", "5m")
	v.SetDefault("sync.page_delay", "200ms")

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config IndexerConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Solana.CoreProgram == "" && config.Solana.SettlementProgram == "" && config.Solana.TokenProgram == "" {
		return nil, errors.New("at least one program address is required")
	}

	return &config, nil
}

// LoadGatewayConfig loads configuration for the gateway binary
func LoadGatewayConfig(configFile string, envPath string) (*GatewayConfig, error) {
	v := configureViper("gateway", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setNATSDefaults(v, "gateway")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config GatewayConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadWorkerConfig loads configuration for the worker binary
func LoadWorkerConfig(configFile string, envPath string) (*WorkerConfig, error) {
	v := configureViper("worker", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setNATSDefaults(v, "worker")
	v.SetDefault("solana.rpc_url", "https://api.mainnet-beta.solana.com")
	v.SetDefault("generation.model", "flux-schnell")
	v.SetDefault("generation.width", 1024)
	v.SetDefault("generation.height", 1024)
	v.SetDefault("generation.http_timeout", "120s")
	v.SetDefault("worker.pool_size", 5)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config WorkerConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Generation.Endpoint == "" {
		return nil, errors.New("generation.endpoint is required")
	}

	return &config, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
}

func setNATSDefaults(v *viper.Viper, service string) {
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.stream_name", "GENERATION_JOBS")
	v.SetDefault("nats.consumer_name", "generation-worker")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", "tf-"+service)
	v.SetDefault("nats.ack_wait", "5m")
	v.SetDefault("nats.max_deliver", 5)
}

func readInConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/indexer/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("TASTEFUN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// This is required for viper to map env vars to config struct fields
// when no config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		// Solana
		"solana.rpc_url",
		"solana.websocket_url",
		"solana.core_program",
		"solana.settlement_program",
		"solana.token_program",
		"solana.keypair_path",
		// Sync
		"sync.min_slot_gap",
		"sync.interval",
		"sync.page_delay",
		// Generation
		"generation.endpoint",
		"generation.model",
		"generation.width",
		"generation.height",
		"generation.http_timeout",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.idle_timeout",
		// Worker pool
		"worker.pool_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
