package postgres

import (
	"testing"

	"job-board/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN_QuotesAndSkipsEmpty(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		DBHost:     "db.internal",
		DBPort:     "5432",
		DBUser:     "board",
		DBPassword: `it's s3cret`,
		DBName:     "jobs",
		DBSSLMode:  "disable",
	})

	assert.Equal(t, `host='db.internal' port='5432' user='board' password='it\'s s3cret' dbname='jobs' sslmode='disable'`, dsn)

	pcfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	assert.Equal(t, "it's s3cret", pcfg.ConnConfig.Password)
	assert.Equal(t, "jobs", pcfg.ConnConfig.Database)
}

func TestDSN_OmitsBlankFields(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{DBHost: "localhost", DBName: "jobs"})
	assert.Equal(t, `host='localhost' dbname='jobs'`, dsn)
}
