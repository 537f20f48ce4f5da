package store

import (
	"fmt"
	"log/slog"
)

// NewStore creates an artifact store of the given type and ensures its
// schema exists.
func NewStore(storeType, connectionString string) (Store, error) {
	var s Store
	var err error

	switch storeType {
	case "sqlite":
		s, err = NewSQLiteStore(connectionString)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", storeType)
	}

	slog.Debug("initializing artifact store schema", "type", storeType)
	if err = s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize artifact store: %w", err)
	}

	return s, nil
}
