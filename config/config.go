package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string

	RedisHost string
	RedisPort string

	KafkaBroker       string
	OrderChangesTopic string

	Port            string
	AnalyticsPort   string
	GatewayPort     string
	FrontendDir     string
	PublicBaseURL   string
	SessionSecret   string
	SessionTTL      time.Duration
	CacheTTL        time.Duration
	RestaurantName  string
	AdminDefaultPIN string
	SecurityDefPIN  string
	Location        *time.Location

	OrderSvcURL     string
	AnalyticsSvcURL string

	// CIDRs whose X-Forwarded-For order-svc honours. Empty keeps the
	// loopback and private defaults.
	TrustedProxies []string
}

// Load reads a .env file when present and fills the config from the
// environment, applying defaults for everything optional.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not read .env: %v", err)
	}

	cfg := Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "tableside"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),

		RedisHost: getEnv("REDIS_HOST", "localhost"),
		RedisPort: getEnv("REDIS_PORT", "6379"),

		KafkaBroker:       os.Getenv("KAFKA_BROKER"),
		OrderChangesTopic: getEnv("ORDER_CHANGES_TOPIC", "order-changes"),

		Port:            getEnv("PORT", "8081"),
		AnalyticsPort:   getEnv("ANALYTICS_PORT", "8083"),
		GatewayPort:     getEnv("GATEWAY_PORT", "8080"),
		FrontendDir:     getEnv("FRONTEND_DIR", "./frontend"),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		SessionTTL:      getDuration("SESSION_TTL", 8*time.Hour),
		CacheTTL:        getDuration("CACHE_TTL", 30*time.Second),
		RestaurantName:  getEnv("RESTAURANT_NAME", "Restaurant"),
		AdminDefaultPIN: getEnv("ADMIN_DEFAULT_PIN", "1234"),
		SecurityDefPIN:  getEnv("SECURITY_DEFAULT_PIN", "0000"),
		Location:        getLocation("TIMEZONE"),

		OrderSvcURL:     getEnv("ORDER_SVC_URL", "http://localhost:8081"),
		AnalyticsSvcURL: getEnv("ANALYTICS_SVC_URL", "http://localhost:8083"),

		TrustedProxies: getList("TRUSTED_PROXIES"),
	}
	if cfg.SessionSecret == "" {
		log.Println("Warning: SESSION_SECRET is not set, admin sessions will not survive a restart")
		cfg.SessionSecret = strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return cfg
}

func (c Config) PostgresDSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=disable"
}

func (c Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func (c Config) KafkaEnabled() bool {
	return c.KafkaBroker != ""
}

func MustInitPostgres(cfg Config) *sql.DB {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

// MustListen opens a dedicated LISTEN connection on channel. pq reconnects
// on its own; reconnects are logged here.
func MustListen(cfg Config, channel string) *pq.Listener {
	listener := pq.NewListener(cfg.PostgresDSN(), 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventDisconnected:
			log.Printf("Postgres listener disconnected: %v", err)
		case pq.ListenerEventReconnected:
			log.Println("Postgres listener reconnected")
		case pq.ListenerEventConnectionAttemptFailed:
			log.Printf("Postgres listener reconnect failed: %v", err)
		}
	})
	if err := listener.Listen(channel); err != nil {
		log.Fatal("Failed to listen on "+channel+":", err)
	}
	return listener
}

func NewKafkaReader(cfg Config, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(cfg Config, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBroker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getLocation(key string) *time.Location {
	name := os.Getenv(key)
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Warning: unknown %s=%q, using local time", key, name)
		return time.Local
	}
	return loc
}
