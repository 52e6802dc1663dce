package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 60, cfg.JWT.ExpireMinutes)
	assert.Equal(t, "", cfg.Notify.Backend)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_KEY", "k")
	t.Setenv("JWT_EXPIRE_MINUTES", "15")
	t.Setenv("NOTIFY_BACKEND", "webhook")
	t.Setenv("WEBHOOK_LOGIN_EVENT_URL", "http://localhost:8089/hooks/login")
	t.Setenv("RABBITMQ_QUEUE_DURABLE", "false")

	cfg := LoadConfig()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "k", cfg.JWT.Key)
	assert.Equal(t, 15, cfg.JWT.ExpireMinutes)
	assert.Equal(t, "webhook", cfg.Notify.Backend)
	assert.Equal(t, "http://localhost:8089/hooks/login", cfg.Notify.Webhook.LoginEventURL)
	assert.False(t, cfg.Notify.RabbitMQ.QueueDurable)
}

func TestValidate_RequiresJWTKey(t *testing.T) {
	cfg := Config{}
	assert.Error(t, cfg.Validate())

	cfg.JWT.Key = "secret"
	assert.NoError(t, cfg.Validate())
}
