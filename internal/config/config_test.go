package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadIndexerConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
debug: true
database:
  host: localhost
  user: indexer
  password: secret
  dbname: tastefun
nats:
  url: nats://queue:4222
solana:
  rpc_url: https://rpc.example.com
  websocket_url: wss://rpc.example.com
  core_program: TasteCoreProgram111111111111111111111111111
  settlement_program: TasteSettlement1111111111111111111111111111
  token_program: TasteToken222222222222222222222222222222222
sync:
  min_slot_gap: 50
`)

	cfg, err := LoadIndexerConfig(path, t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "localhost", cfg.Database.Host)
	// Defaults fill what the file leaves out
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "nats://queue:4222", cfg.NATS.URL)
	assert.Equal(t, "GENERATION_JOBS", cfg.NATS.StreamName)
	assert.Equal(t, uint64(50), cfg.Sync.MinSlotGap)
	assert.Equal(t, 5*time.Minute, cfg.Sync.Interval)
}

func TestLoadIndexerConfigRequiresPrograms(t *testing.T) {
	path := writeConfigFile(t, `
database:
  host: localhost
`)

	_, err := LoadIndexerConfig(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "program address")
}

func TestLoadIndexerConfigFromEnvironment(t *testing.T) {
	t.Setenv("TASTEFUN_DATABASE_HOST", "db.internal")
	t.Setenv("TASTEFUN_SOLANA_CORE_PROGRAM", "TasteCoreProgram111111111111111111111111111")
	t.Setenv("TASTEFUN_SYNC_MIN_SLOT_GAP", "250")

	// No config file on the search path; everything comes from env
	cfg, err := LoadIndexerConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "TasteCoreProgram111111111111111111111111111", cfg.Solana.CoreProgram)
	assert.Equal(t, uint64(250), cfg.Sync.MinSlotGap)
}

func TestLoadGatewayConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, `
database:
  host: localhost
`)

	cfg, err := LoadGatewayConfig(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, "tf-gateway", cfg.NATS.ConnectionName)
}

func TestLoadWorkerConfigRequiresEndpoint(t *testing.T) {
	path := writeConfigFile(t, `
database:
  host: localhost
`)

	_, err := LoadWorkerConfig(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation.endpoint")
}

func TestLoadWorkerConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, `
database:
  host: localhost
generation:
  endpoint: https://generate.example.com/v1/images
`)

	cfg, err := LoadWorkerConfig(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "flux-schnell", cfg.Generation.Model)
	assert.Equal(t, 1024, cfg.Generation.Width)
	assert.Equal(t, 120*time.Second, cfg.Generation.HTTPTimeout)
	assert.Equal(t, 5, cfg.Worker.PoolSize)
	assert.Equal(t, 5, cfg.NATS.MaxDeliver)
	assert.Equal(t, 5*time.Minute, cfg.NATS.AckWait)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "indexer",
		Password: "secret",
		DBName:   "tastefun",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=indexer password=secret dbname=tastefun sslmode=disable",
		cfg.DSN())
}
