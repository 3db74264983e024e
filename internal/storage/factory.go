package storage

import (
	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
)

// NewStore builds an uninitialized store for the driver name
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, svmerrors.NewConfigurationError("storage", "new store",
			"unsupported store backend: %s", kind)
	}
}
