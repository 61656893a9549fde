package session

import (
	"fmt"
	"io"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the store for driver ("sqlite", "postgres" or "memory") and a
// closer for its underlying resources.
func Open(driver, sqlitePath, postgresURL string) (Store, io.Closer, error) {
	switch driver {
	case "sqlite":
		store, err := OpenSQLiteStore(sqlitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case "postgres":
		store, err := OpenPostgresStore(postgresURL)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case "memory":
		return NewMemoryStore(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session driver %q", driver)
	}
}
