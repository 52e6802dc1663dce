package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort int
	Database   DatabaseConfig
	JWT        JWTConfig
	Notify     NotifyConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

// JWTConfig holds the token signing parameters. Key is required; the
// server refuses to start without it.
type JWTConfig struct {
	Key           string
	Issuer        string
	Audience      string
	ExpireMinutes int
}

// NotifyConfig selects and configures the login-event sink. Backend is one
// of "webhook", "rabbitmq", "pubsub", or empty to disable notifications.
type NotifyConfig struct {
	Backend  string
	Webhook  WebhookConfig
	RabbitMQ RabbitMQConfig
	PubSub   PubSubConfig
}

type WebhookConfig struct {
	LoginEventURL string
}

type RabbitMQConfig struct {
	URL             string
	Queue           string
	QueueDurable    bool
	QueueAutoDelete bool
}

type PubSubConfig struct {
	ProjectID       string
	Topic           string
	CredentialsFile string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "accounts"),
		Password: getEnv("DB_PASSWORD", "password"),
		DBName:   getEnv("DB_NAME", "accounts_db"),
		UseSSL:   getEnvBool("DB_USE_SSL", false),
	}

	jwtConfig := JWTConfig{
		Key:           getEnv("JWT_KEY", ""),
		Issuer:        getEnv("JWT_ISSUER", "accounts-api"),
		Audience:      getEnv("JWT_AUDIENCE", "accounts-api"),
		ExpireMinutes: getEnvInt("JWT_EXPIRE_MINUTES", 60),
	}

	notifyConfig := NotifyConfig{
		Backend: getEnv("NOTIFY_BACKEND", ""),
		Webhook: WebhookConfig{
			LoginEventURL: getEnv("WEBHOOK_LOGIN_EVENT_URL", ""),
		},
		RabbitMQ: RabbitMQConfig{
			URL:             getEnv("RABBITMQ_URL", ""),
			Queue:           getEnv("RABBITMQ_QUEUE", "login-events"),
			QueueDurable:    getEnvBool("RABBITMQ_QUEUE_DURABLE", true),
			QueueAutoDelete: getEnvBool("RABBITMQ_QUEUE_AUTO_DELETE", false),
		},
		PubSub: PubSubConfig{
			ProjectID:       getEnv("PUBSUB_PROJECT_ID", ""),
			Topic:           getEnv("PUBSUB_TOPIC", "login-events"),
			CredentialsFile: getEnv("PUBSUB_CREDENTIALS_FILE", ""),
		},
	}

	return Config{
		ServerPort: getEnvInt("SERVER_PORT", 8080),
		Database:   dbConfig,
		JWT:        jwtConfig,
		Notify:     notifyConfig,
	}
}

// Validate reports configuration the server cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWT.Key) == "" {
		return errors.New("JWT_KEY is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(strings.TrimSpace(valueStr)) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultValue
}
