// Package config charge les valeurs par défaut de la CLI depuis l'environnement
// (et un fichier .env optionnel). Les flags de la ligne de commande priment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config contient tous les paramètres lisibles depuis l'environnement.
type Config struct {
	// Base source (URL MariaDB/MySQL ou DSN natif)
	DSN string `env:"METRICS_DSN"`

	// Tables
	OrdersTable     string `env:"METRICS_ORDERS_TABLE" envDefault:"orders"`
	OrderItemsTable string `env:"METRICS_ORDER_ITEMS_TABLE" envDefault:"order_items"`
	EventsTable     string `env:"METRICS_EVENTS_TABLE" envDefault:"storefront_events"`

	// Rapport
	Periods      string        `env:"METRICS_PERIODS" envDefault:"7days,30days"`
	Output       string        `env:"METRICS_OUTPUT" envDefault:"text"`
	QueryTimeout time.Duration `env:"METRICS_QUERY_TIMEOUT" envDefault:"30s"`

	// Logs
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load lit dotenvPath s'il existe, puis parse l'environnement.
// Les variables déjà définies dans l'environnement l'emportent sur le fichier.
func Load(dotenvPath string) (*Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", dotenvPath, err)
		}
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
