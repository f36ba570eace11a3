package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	JWTSecret   string

	Metrics struct {
		Username string
		Password string
	}

	DB struct {
		MaxConns int32
		MinConns int32
	}
}

// Load reads configuration from the environment (a .env file, if present, is
// loaded by main before this runs).
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", "production")
	v.SetDefault("PORT", "3333")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)

	var c Config
	c.Env = v.GetString("ENV")
	c.Port = v.GetString("PORT")
	c.DatabaseURL = v.GetString("DATABASE_URL")
	c.JWTSecret = v.GetString("JWT_SECRET")
	c.Metrics.Username = v.GetString("METRICS_USERNAME")
	c.Metrics.Password = v.GetString("METRICS_PASSWORD")
	c.DB.MaxConns = v.GetInt32("DB_MAX_CONNS")
	c.DB.MinConns = v.GetInt32("DB_MIN_CONNS")

	if c.DatabaseURL == "" {
		return c, fmt.Errorf("DATABASE_URL is not set")
	}
	if c.JWTSecret == "" {
		return c, fmt.Errorf("JWT_SECRET is not set")
	}
	return c, nil
}
