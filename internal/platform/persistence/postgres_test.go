package persistence

import (
	"log/slog"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

// Pool construction needs a live database, so only the accessor is covered
// here; repository behavior is tested against pgxmock in internal/data.
func TestPostgresDB_Pool(t *testing.T) {
	var pool *pgxpool.Pool
	db := &PostgresDB{
		pool:   pool,
		logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}

	assert.Equal(t, pool, db.Pool())
}
