package whatsapp

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	waLog "go.mau.fi/whatsmeow/util/log"
	_ "modernc.org/sqlite"
)

// deviceStore holds the paired device keys in SQLite
type deviceStore struct {
	db        *sql.DB
	container *sqlstore.Container
}

// openDeviceStore opens (or creates) the device database at path
func openDeviceStore(ctx context.Context, path string, log waLog.Logger) (*deviceStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open device database: %w", err)
	}
	db.SetMaxOpenConns(1)

	container := sqlstore.NewWithDB(db, "sqlite3", log)
	if err := container.Upgrade(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to upgrade device database: %w", err)
	}

	return &deviceStore{db: db, container: container}, nil
}

// firstDevice returns the stored device, or a fresh one waiting to be paired
func (s *deviceStore) firstDevice(ctx context.Context) (*store.Device, error) {
	device, err := s.container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load device: %w", err)
	}
	return device, nil
}

func (s *deviceStore) close() error {
	return s.db.Close()
}
