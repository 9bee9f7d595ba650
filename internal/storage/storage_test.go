package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hearth/internal/config"
	"github.com/prn-tf/hearth/internal/domain"
)

func TestOpenMemory(t *testing.T) {
	backend, err := Open(context.Background(), config.DatabaseConfig{Driver: "memory"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer backend.Close()

	account := domain.NewAccount("Ana", "Horvat", "ana@example.com", "hash")
	if err := backend.Accounts.Add(context.Background(), account); err != nil {
		t.Fatalf("Accounts.Add() error = %v", err)
	}
	if _, err := backend.Accounts.Get(context.Background(), account.ID); err != nil {
		t.Errorf("Accounts.Get() error = %v", err)
	}
}

func TestOpenSQLite(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	}

	backend, err := Open(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer backend.Close()

	if backend.Tx == nil {
		t.Error("Tx = nil, want a transaction manager")
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle"}, zerolog.Nop()); err == nil {
		t.Fatal("Open() succeeded with an unknown driver")
	}
}
