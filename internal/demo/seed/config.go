package seed

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type LookupFunc func(string) (string, bool)

type Config struct {
	Driver    string
	DSN       string
	Months    int
	Customers int
	Products  int
	Seed      int64
}

func DefaultConfig() Config {
	return Config{
		Driver:    "sqlite3",
		DSN:       "./northwind.db",
		Months:    24,
		Customers: 40,
		Products:  12,
		Seed:      time.Now().UTC().UnixNano(),
	}
}

func LoadConfigFromEnv(lookup LookupFunc) (Config, error) {
	if lookup == nil {
		return Config{}, fmt.Errorf("lookup function is required")
	}

	cfg := DefaultConfig()
	if err := applyString(lookup, "QUERYDECK_SEED_DRIVER", &cfg.Driver); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "QUERYDECK_SEED_DSN", &cfg.DSN); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "QUERYDECK_SEED_MONTHS", &cfg.Months); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "QUERYDECK_SEED_CUSTOMERS", &cfg.Customers); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "QUERYDECK_SEED_PRODUCTS", &cfg.Products); err != nil {
		return Config{}, err
	}
	if err := applyInt64(lookup, "QUERYDECK_SEED_SEED", &cfg.Seed); err != nil {
		return Config{}, err
	}

	if cfg.Months <= 0 {
		return Config{}, fmt.Errorf("months must be positive")
	}
	if cfg.Customers <= 0 || cfg.Products <= 0 {
		return Config{}, fmt.Errorf("customers and products must be positive")
	}
	return cfg, nil
}

func applyString(lookup LookupFunc, key string, dst *string) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	*dst = strings.TrimSpace(raw)
	return nil
}

func applyInt(lookup LookupFunc, key string, dst *int) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyInt64(lookup LookupFunc, key string, dst *int64) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}
