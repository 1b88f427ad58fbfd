package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolConfig(t *testing.T) {
	const dsn = "postgres://u:p@localhost:5432/db?pool_max_conns=7"

	t.Run("zero options keep the dsn", func(t *testing.T) {
		cfg, err := poolConfig(dsn, PoolOptions{})
		require.NoError(t, err)
		assert.EqualValues(t, 7, cfg.MaxConns)
	})

	t.Run("options override", func(t *testing.T) {
		cfg, err := poolConfig(dsn, PoolOptions{
			MaxConns:          20,
			MinConns:          2,
			MaxConnLifetime:   30 * time.Minute,
			HealthCheckPeriod: 15 * time.Second,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 20, cfg.MaxConns)
		assert.EqualValues(t, 2, cfg.MinConns)
		assert.Equal(t, 30*time.Minute, cfg.MaxConnLifetime)
		assert.Equal(t, 15*time.Second, cfg.HealthCheckPeriod)
	})

	t.Run("min never exceeds max", func(t *testing.T) {
		cfg, err := poolConfig(dsn, PoolOptions{MinConns: 50})
		require.NoError(t, err)
		assert.EqualValues(t, 7, cfg.MinConns)
	})

	t.Run("bad dsn", func(t *testing.T) {
		_, err := poolConfig("postgres://%zz", PoolOptions{})
		assert.ErrorContains(t, err, "parse pgx config")
	})
}
