package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boomerhub/boomerhub/internal/infrastructure/config"
	sharedConfig "github.com/boomerhub/boomerhub/internal/shared/config"
)

func TestMapEnvToGinMode(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"production", "release"},
		{"prod", "release"},
		{"test", "test"},
		{"development", "debug"},
		{"", "debug"},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, MapEnvToGinMode(tt.env))
		})
	}
}

func TestBackendNeeds(t *testing.T) {
	cfg := &config.Config{}
	cfg.Usage.Backend = sharedConfig.UsageBackendDatabase
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.Backend = "memory"
	assert.True(t, NeedsDatabase(cfg))
	assert.False(t, NeedsRedis(cfg))

	cfg.Usage.Backend = sharedConfig.UsageBackendRedis
	assert.False(t, NeedsDatabase(cfg))
	assert.True(t, NeedsRedis(cfg))

	cfg.Usage.Backend = sharedConfig.UsageBackendMemory
	cfg.RateLimit.Backend = "redis"
	assert.True(t, NeedsRedis(cfg))

	cfg.RateLimit.Enabled = false
	assert.False(t, NeedsRedis(cfg))
}

func TestResolveEnv(t *testing.T) {
	t.Setenv("ENV", "production")
	flags := &Flags{Env: "development"}
	assert.Equal(t, "production", flags.ResolveEnv())
}
