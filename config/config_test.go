package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("CACHE_TTL", "not-a-duration")
	t.Setenv("TIMEZONE", "")
	t.Setenv("KAFKA_BROKER", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg := Load()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 8*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, time.Local, cfg.Location)
	assert.Equal(t, "order-changes", cfg.OrderChangesTopic)
	assert.Equal(t, "8083", cfg.AnalyticsPort)
	assert.Equal(t, "8080", cfg.GatewayPort)
	assert.False(t, cfg.KafkaEnabled())
	assert.NotEmpty(t, cfg.SessionSecret)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "staff")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "orders")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("KAFKA_BROKER", "kafka:9092")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("TIMEZONE", "Africa/Djibouti")
	t.Setenv("TRUSTED_PROXIES", "10.1.0.0/16, ,172.18.0.2/32")

	cfg := Load()

	assert.Equal(t, "host=db port=5433 user=staff password=secret dbname=orders sslmode=disable", cfg.PostgresDSN())
	assert.Equal(t, "cache:6380", cfg.RedisAddr())
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
	assert.Equal(t, "Africa/Djibouti", cfg.Location.String())
	assert.Equal(t, []string{"10.1.0.0/16", "172.18.0.2/32"}, cfg.TrustedProxies)
}

func TestNewKafkaWriter(t *testing.T) {
	writer := NewKafkaWriter(Config{KafkaBroker: "kafka:9092"}, "order-changes")
	defer writer.Close()

	assert.Equal(t, "order-changes", writer.Topic)
	assert.Equal(t, "kafka:9092", writer.Addr.String())
}
