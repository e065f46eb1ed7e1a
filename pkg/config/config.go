package config

import (
	"github.com/kelseyhightower/envconfig"
)

// API holds configuration for the booking REST service.
type API struct {
	// DB
	PGBookingDSN string `envconfig:"PG_BOOKING_DSN" required:"true"`
	// JWT
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`
	// Network
	APIHTTPAddr string `envconfig:"API_HTTP_ADDR" default:":8080"`
	// RabbitMQ for publishing booking lifecycle events
	RabbitURL       string `envconfig:"RABBIT_URL" required:"true"`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"booking.exchange"`
}

// Webhook holds configuration for the WhatsApp webhook service.
type Webhook struct {
	// DB (read-side lookups: restaurants, clients, managers)
	PGBookingDSN string `envconfig:"PG_BOOKING_DSN" required:"true"`
	// Network
	WebhookHTTPAddr string `envconfig:"WEBHOOK_HTTP_ADDR" default:":8081"`
	// Booking API base URL for confirm/status calls
	BookingAPIBase string `envconfig:"BOOKING_API_BASE" default:"http://api:8080"`
	// Handshake secret checked by the GET verification endpoint
	VerifyToken string `envconfig:"WA_VERIFY_TOKEN" required:"true"`
	// Redis for provider-message-id dedup
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"redis:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	DedupTTLMin   int    `envconfig:"WA_DEDUP_TTL_MIN" default:"60"`

	// Outbound providers
	MetaGraphBase   string `envconfig:"META_GRAPH_BASE" default:"https://graph.facebook.com/v18.0"`
	MetaPhoneID     string `envconfig:"META_PHONE_ID" default:""`
	MetaAccessToken string `envconfig:"META_ACCESS_TOKEN" default:""`
	ChatAPIBase     string `envconfig:"CHAT_API_BASE" default:""`
	ChatAPIToken    string `envconfig:"CHAT_API_TOKEN" default:""`
	RestFormBase    string `envconfig:"REST_FORM_BASE" default:""`
	RestFormAPIKey  string `envconfig:"REST_FORM_API_KEY" default:""`
}

// Notify holds configuration for the ops-notification worker.
type Notify struct {
	RabbitURL       string `envconfig:"RABBIT_URL" required:"true"`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"booking.exchange"`
	NotifyQueue     string `envconfig:"NOTIFY_QUEUE" default:"booking.notify.q"`
	Prefetch        int    `envconfig:"NOTIFY_PREFETCH" default:"16"`
}

func LoadAPI() (API, error) {
	var c API
	err := envconfig.Process("", &c)
	return c, err
}

func LoadWebhook() (Webhook, error) {
	var c Webhook
	err := envconfig.Process("", &c)
	return c, err
}

func LoadNotify() (Notify, error) {
	var c Notify
	err := envconfig.Process("", &c)
	return c, err
}
