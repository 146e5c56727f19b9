package storage

import (
	"fmt"

	"carrental-client/internal/config"
)

// NewFromConfig builds the preference store selected by configuration
func NewFromConfig(cfg config.PreferencesConfig) (KVStore, error) {
	switch cfg.Type {
	case "file":
		return NewFileStore(cfg.Path)
	case "redis":
		return NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, "carrental:prefs:"), nil
	default:
		return nil, fmt.Errorf("unsupported preferences type: %s", cfg.Type)
	}
}
