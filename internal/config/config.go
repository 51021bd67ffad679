package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is built once in main and handed to the components that need
// it. No package keeps its own os.Getenv calls.
type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBCharset  string

	InteraktAPIKey     string
	InteraktBaseURL    string
	TemplateName       string
	TemplateLang       string
	DefaultCountryCode string
	WebhookSecret      string

	RabbitMQUser string
	RabbitMQPass string
	RabbitMQHost string
	RabbitMQPort string

	MailHost    string
	MailPort    int
	MailUser    string
	MailPass    string
	ReportEmail string

	// Zero disables the background automation worker.
	AutomationInterval time.Duration
	AutomationDaysBack int
}

func Load() *Config {
	return &Config{
		Port: getenv("PORT", "8080"),

		DBHost:     getenv("DB_HOST", "127.0.0.1"),
		DBUser:     getenv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBCharset:  getenv("DB_CHARSET", "utf8mb4"),

		InteraktAPIKey:     os.Getenv("INTERAKT_API_KEY"),
		InteraktBaseURL:    getenv("INTERAKT_BASE_URL", "https://api.interakt.ai"),
		TemplateName:       getenv("INTERAKT_TEMPLATE_NAME", "insearch_of_order_id"),
		TemplateLang:       getenv("INTERAKT_TEMPLATE_LANG", "en"),
		DefaultCountryCode: getenv("DEFAULT_COUNTRY_CODE", "+91"),
		WebhookSecret:      os.Getenv("WEBHOOK_SECRET"),

		RabbitMQUser: getenv("RABBITMQ_USER", "guest"),
		RabbitMQPass: getenv("RABBITMQ_PASS", "guest"),
		RabbitMQHost: os.Getenv("RABBITMQ_HOST"),
		RabbitMQPort: getenv("RABBITMQ_PORT", "5672"),

		MailHost:    os.Getenv("MAIL_HOST"),
		MailPort:    getenvInt("MAIL_PORT", 587),
		MailUser:    os.Getenv("MAIL_USER"),
		MailPass:    os.Getenv("MAIL_PASS"),
		ReportEmail: os.Getenv("REPORT_EMAIL"),

		AutomationInterval: getenvDuration("AUTOMATION_INTERVAL", 0),
		AutomationDaysBack: getenvInt("AUTOMATION_DAYS_BACK", 7),
	}
}

// DSN builds the MySQL connection string for the OpenCart database.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=false",
		c.DBUser, c.DBPassword, c.DBHost, c.DBName, c.DBCharset)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
