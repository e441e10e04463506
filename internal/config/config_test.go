package config_test

import (
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/hestia/internal/config"

	"github.com/stretchr/testify/assert"
)

const yamlConfig = `
env: development
postgres:
  host: filehost
  port: "6543"
  user: fileuser
  password: filepass
  db_name: filedb
http:
  port: 7000
  read_timeout: 3s
monitoring:
  port: 7001
shutdown_timeout: 20s
`

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("HESTIA_ENV", "local")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")
	t.Setenv("HESTIA_HTTP_PORT", "8081")
	t.Setenv("HESTIA_SHUTDOWN_TIMEOUT", "30s")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "testHost", cfg.Postgres.Host)
	assert.Equal(t, "12345", cfg.Postgres.Port)
	assert.Equal(t, "admin", cfg.Postgres.User)
	assert.Equal(t, "adminpass", cfg.Postgres.Password)
	assert.Equal(t, "testName", cfg.Postgres.Dbname)
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, 9090, cfg.Monitoring.Port)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "migrations", cfg.MigrationsDir)
}

func Test_MustLoadFromFile(t *testing.T) {
	defer filet.CleanUp(t)

	file := filet.TmpFile(t, "", yamlConfig)

	t.Setenv("CONFIG_PATH", file.Name())
	t.Setenv("DB_HOST", "envHost")

	cfg := config.MustLoad()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "envHost", cfg.Postgres.Host, "environment must take precedence over the file")
	assert.Equal(t, "6543", cfg.Postgres.Port)
	assert.Equal(t, "fileuser", cfg.Postgres.User)
	assert.Equal(t, "filepass", cfg.Postgres.Password)
	assert.Equal(t, "filedb", cfg.Postgres.Dbname)
	assert.Equal(t, 7000, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 7001, cfg.Monitoring.Port)
	assert.Equal(t, 20*time.Second, cfg.ShutdownTimeout)
}

func TestMustLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/definitely/not/here.yaml")

	assert.PanicsWithValue(t, "config file does not exist: /definitely/not/here.yaml", func() {
		config.MustLoad()
	})
}

func TestMustLoad_ShutdownTimeoutError(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("HESTIA_SHUTDOWN_TIMEOUT", "error_value")

	assert.PanicsWithValue(t, "failed to parse shutdown timeout from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_HTTPPortError(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("HESTIA_HTTP_PORT", "not_a_port")

	assert.PanicsWithValue(t, "failed to parse http port from configuration", func() {
		config.MustLoad()
	})
}
