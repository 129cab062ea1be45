package database

import (
	"lms_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	cases := []struct {
		name   string
		driver string
		want   string
	}{
		{"default is mysql", "", "mysql"},
		{"mysql", "mysql", "mysql"},
		{"postgres", "postgres", "postgres"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Dialector(&config.DatabaseConfig{Driver: tc.driver, Host: "db", Port: 1, DBName: "lms"})
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.Name())
		})
	}
}

func TestDialectorUnknownDriver(t *testing.T) {
	_, err := Dialector(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestInitRedisDisabled(t *testing.T) {
	rdb, err := InitRedis(&config.RedisConfig{Enabled: false})
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}
