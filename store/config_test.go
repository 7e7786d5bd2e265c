package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("Defaults to embedded store", func(t *testing.T) {
		t.Setenv("MARTSQL_DRIVER", "")
		t.Setenv("MARTSQL_SQLITE_PATH", "")
		t.Setenv("MARTSQL_DATA_DIR", "")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, DriverSQLite, cfg.Driver)
		assert.Equal(t, "martsql.db", cfg.SQLitePath)
		assert.Equal(t, "data", cfg.DataDir)
	})

	t.Run("Postgres from environment", func(t *testing.T) {
		t.Setenv("MARTSQL_DRIVER", "postgres")
		t.Setenv("MARTSQL_DB_HOST", "db.internal")
		t.Setenv("MARTSQL_DB_PORT", "5433")
		t.Setenv("MARTSQL_DB_USER", "analyst")
		t.Setenv("MARTSQL_DB_PASSWORD", "secret")
		t.Setenv("MARTSQL_DB_NAME", "retail")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, DriverPostgres, cfg.Driver)
		assert.Equal(t, "db.internal", cfg.Host)
		assert.Equal(t, "5433", cfg.Port)
		assert.Equal(t, "retail", cfg.DBName)
	})

	t.Run("Unknown driver", func(t *testing.T) {
		t.Setenv("MARTSQL_DRIVER", "oracle")

		_, err := FromEnv()
		assert.ErrorIs(t, err, ErrUnknownDriver)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "valid sqlite",
			cfg:  Config{Driver: DriverSQLite, SQLitePath: "x.db"},
		},
		{
			name:    "sqlite without path",
			cfg:     Config{Driver: DriverSQLite},
			wantErr: ErrInvalidConfig,
		},
		{
			name: "valid postgres",
			cfg:  Config{Driver: DriverPostgres, DBName: "retail"},
		},
		{
			name:    "postgres without dbname",
			cfg:     Config{Driver: DriverPostgres},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "unknown driver",
			cfg:     Config{Driver: "mysql"},
			wantErr: ErrUnknownDriver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfig_postgresDSN(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Driver:   DriverPostgres,
		Host:     "localhost",
		Port:     "5432",
		User:     "analyst",
		Password: "secret",
		DBName:   "retail",
		SSLMode:  "disable",
	}
	want := "host=localhost port=5432 user=analyst password=secret dbname=retail sslmode=disable"
	assert.Equal(t, want, cfg.postgresDSN())
}
