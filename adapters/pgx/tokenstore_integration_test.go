package pgx

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestStore_Integration connects to a real PostgreSQL via DATABASE_URL
// and verifies the load/save/clear round trip including upsert behavior.
func TestStore_Integration(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL is empty; set it to a live PostgreSQL to run integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect pool: %v", err)
	}
	defer pool.Close()

	subject := fmt.Sprintf("it-%d", time.Now().UnixNano())
	store := New(pool, subject)
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(),
			`DELETE FROM authgate_tokens WHERE subject = $1`, subject)
	})

	// Empty subject has no token
	token, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if token != "" {
		t.Errorf("Load() on fresh subject = %q, want empty", token)
	}

	// Save then load
	if err := store.Save(ctx, "token-one"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if token, _ = store.Load(ctx); token != "token-one" {
		t.Errorf("Load() = %q, want token-one", token)
	}

	// Save again upserts rather than duplicating
	if err := store.Save(ctx, "token-two"); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}
	if token, _ = store.Load(ctx); token != "token-two" {
		t.Errorf("Load() after upsert = %q, want token-two", token)
	}

	var rows int
	if err := pool.QueryRow(ctx,
		`SELECT count(*) FROM authgate_tokens WHERE subject = $1`, subject,
	).Scan(&rows); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Errorf("rows for subject = %d, want 1", rows)
	}

	// Clear removes the row
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if token, _ = store.Load(ctx); token != "" {
		t.Errorf("Load() after Clear = %q, want empty", token)
	}
}
