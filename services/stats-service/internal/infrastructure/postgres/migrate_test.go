package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/stats?sslmode=disable", pgx5URL("postgres://u:p@db:5432/stats?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/stats", pgx5URL("postgresql://u@db/stats"))
	assert.Equal(t, "pgx5://already", pgx5URL("pgx5://already"))
}
