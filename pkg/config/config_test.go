package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-relief/pkg/config"
)

// chdir cambia el directorio de trabajo durante el test y lo restaura al
// terminar (equivalente a t.Chdir, disponible solo desde Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "stock-relief", cfg.App.Name)
	assert.Equal(t, config.StoragePostgres, cfg.App.Storage)
	assert.False(t, cfg.App.Demo)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Empty(t, cfg.Telemetry.Endpoint)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_DEMO", "true")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.Demo)
	assert.Equal(t, config.StorageMemory, cfg.App.Storage)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "collector:4318", cfg.Telemetry.Endpoint)
}

func TestLoad_DriverInvalido(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "tester", Password: "p@ss:123", DBName: "inventory", SSLMode: "disable"}
	assert.Equal(t, "postgres://tester:p%40ss%3A123@db:5432/inventory?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgresql://u:p@h/db"
	assert.Equal(t, "postgresql://u:p@h/db", c.ConnectionString())
}
