package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "postgres", cfg.Activity.Sink)
	assert.Equal(t, "visits:activity", cfg.Activity.Stream)
	assert.Equal(t, 2000, cfg.Activity.TimeoutMS)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxPhotoBytes)
	assert.Equal(t, "visit-photos", cfg.Storage.Bucket)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ACTIVITY_SINK", "redis")
	t.Setenv("STORAGE_USE_SSL", "true")
	t.Setenv("APP_TIMEZONE", "America/Bogota")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "redis", cfg.Activity.Sink)
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, "America/Bogota", cfg.App.Location().String())
}

func TestLoad_Invalido(t *testing.T) {
	t.Setenv("ACTIVITY_SINK", "kafka")
	_, err := Load()
	assert.ErrorContains(t, err, "ACTIVITY_SINK")

	t.Setenv("ACTIVITY_SINK", "postgres")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestAppConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, AppConfig{}.Location())
	assert.Equal(t, time.UTC, AppConfig{Timezone: "Mars/Olympus"}.Location())
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "visits", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/visits?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgresql://x@y/z"
	assert.Equal(t, "postgresql://x@y/z", c.ConnectionString())
}
