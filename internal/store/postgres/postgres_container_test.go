package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/notesapp/notes-backend/internal/store"
	"github.com/notesapp/notes-backend/internal/store/storetest"
)

// TestPostgresStore_Container spins up a throwaway postgres container and runs
// the compliance suite against it. Requires a Docker daemon; opt in with
// NOTES_BACKEND_TEST_CONTAINERS=1.
func TestPostgresStore_Container(t *testing.T) {
	if os.Getenv("NOTES_BACKEND_TEST_CONTAINERS") == "" {
		t.Skip("NOTES_BACKEND_TEST_CONTAINERS not set; skipping container-backed postgres test")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "notes",
			"POSTGRES_PASSWORD": "notes",
			"POSTGRES_DB":       "notes",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://notes:notes@%s:%s/notes?sslmode=disable", host, port.Port())

	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("postgres open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := EnsureSchema(ctx, db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	storetest.Run(t, func(t *testing.T) store.Store { return NewWithDB(db) })
}
