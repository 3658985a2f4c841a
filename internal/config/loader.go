package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/tmorrell/whisk/internal/db"
)

// Server holds the HTTP boundary configuration.
type Server struct {
	Addr           string
	AllowedOrigins []string
	// DefaultActorID is the boundary-level fallback identity used when a
	// request carries no X-Actor-ID header. Zero disables the fallback and
	// makes the header mandatory.
	DefaultActorID int64
}

// Log holds structured logging configuration.
type Log struct {
	Level  string
	Format string
}

// Config is the full application configuration.
type Config struct {
	Server   Server
	Database db.Config
	Log      Log
}

// Load reads config.yaml from configPath, with environment overrides
// prefixed WHISK (WHISK_DATABASE_HOST, WHISK_SERVER_ADDR, ...).
func Load(configPath string) (Config, error) {
	cfg := Config{
		Server: Server{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: db.DefaultConfig(),
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("WHISK")

	v.BindEnv("server.addr")
	v.BindEnv("server.default_actor_id")
	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")
	v.BindEnv("log.level")
	v.BindEnv("log.format")

	if err := v.ReadInConfig(); err != nil {
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	if v.IsSet("server.addr") {
		cfg.Server.Addr = v.GetString("server.addr")
	}
	if v.IsSet("server.allowed_origins") {
		cfg.Server.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	}
	if v.IsSet("server.default_actor_id") {
		cfg.Server.DefaultActorID = v.GetInt64("server.default_actor_id")
	}
	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}
	if v.IsSet("log.level") {
		cfg.Log.Level = v.GetString("log.level")
	}
	if v.IsSet("log.format") {
		cfg.Log.Format = v.GetString("log.format")
	}

	return cfg, nil
}
