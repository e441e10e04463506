package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env             string           // Env is the current environment: local, development, production.
	Postgres        PostgresConfig   // Postgres holds the database configuration.
	HTTP            HTTPConfig       // HTTP holds the employee API server configuration.
	Monitoring      MonitoringConfig // Monitoring holds the metrics and health server configuration.
	ShutdownTimeout time.Duration    // ShutdownTimeout bounds graceful shutdown of both servers.
	MigrationsDir   string           // MigrationsDir is the directory with goose migrations.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Dbname   string // Dbname is the name of the database.
}

// HTTPConfig struct holds the listener settings of the employee API.
type HTTPConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// MonitoringConfig struct holds the listener settings of the /metrics and /healthz server.
type MonitoringConfig struct {
	Port int
}

// MustLoad loads the configuration and panics if it is invalid.
//
// Values are taken from the environment first, then from a .env file in the
// working directory, then from the optional YAML file pointed to by CONFIG_PATH,
// and finally from defaults.
func MustLoad() *Config {
	// a missing .env file is not an error, the environment may be complete already
	_ = godotenv.Load()

	vpr := viper.New()
	setDefaults(vpr)
	bindEnv(vpr)

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			panic("config file does not exist: " + configPath)
		}

		vpr.SetConfigFile(configPath)
		vpr.SetConfigType("yaml")
		if err := vpr.ReadInConfig(); err != nil {
			panic("config error: " + err.Error())
		}
	}

	httpPort := vpr.GetInt("http.port")
	if httpPort <= 0 {
		panic("failed to parse http port from configuration")
	}

	monitoringPort := vpr.GetInt("monitoring.port")
	if monitoringPort <= 0 {
		panic("failed to parse monitoring port from configuration")
	}

	return &Config{
		Env: vpr.GetString("env"),
		Postgres: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Dbname:   vpr.GetString("postgres.db_name"),
		},
		HTTP: HTTPConfig{
			Port:         httpPort,
			ReadTimeout:  mustDuration(vpr, "http.read_timeout", "failed to parse http read timeout from configuration"),
			WriteTimeout: mustDuration(vpr, "http.write_timeout", "failed to parse http write timeout from configuration"),
		},
		Monitoring: MonitoringConfig{
			Port: monitoringPort,
		},
		ShutdownTimeout: mustDuration(vpr, "shutdown_timeout", "failed to parse shutdown timeout from configuration"),
		MigrationsDir:   vpr.GetString("migrations_dir"),
	}
}

func setDefaults(vpr *viper.Viper) {
	vpr.SetDefault("env", "local")
	vpr.SetDefault("postgres.host", "localhost")
	vpr.SetDefault("postgres.port", "5432")
	vpr.SetDefault("http.port", 8080)
	vpr.SetDefault("http.read_timeout", "10s")
	vpr.SetDefault("http.write_timeout", "10s")
	vpr.SetDefault("monitoring.port", 9090)
	vpr.SetDefault("shutdown_timeout", "10s")
	vpr.SetDefault("migrations_dir", "migrations")
}

func bindEnv(vpr *viper.Viper) {
	envs := map[string]string{
		"env":                "HESTIA_ENV",
		"postgres.host":      "DB_HOST",
		"postgres.port":      "DB_PORT",
		"postgres.user":      "DB_USERNAME",
		"postgres.password":  "DB_PASSWORD",
		"postgres.db_name":   "DB_NAME",
		"http.port":          "HESTIA_HTTP_PORT",
		"http.read_timeout":  "HESTIA_HTTP_READ_TIMEOUT",
		"http.write_timeout": "HESTIA_HTTP_WRITE_TIMEOUT",
		"monitoring.port":    "HESTIA_MONITORING_PORT",
		"shutdown_timeout":   "HESTIA_SHUTDOWN_TIMEOUT",
		"migrations_dir":     "HESTIA_MIGRATIONS_DIR",
	}

	for key, env := range envs {
		// BindEnv only fails when called without arguments
		_ = vpr.BindEnv(key, env)
	}
}

// mustDuration reads a duration key and panics with msg when it can not be parsed.
// viper.GetDuration silently returns zero on garbage, so the raw value is parsed here.
func mustDuration(vpr *viper.Viper, key, msg string) time.Duration {
	duration, err := time.ParseDuration(vpr.GetString(key))
	if err != nil {
		panic(msg)
	}

	return duration
}
