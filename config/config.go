package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// GreenAPI WhatsApp gateway.
	GreenAPIURL           string `mapstructure:"GREEN_API_URL"`
	GreenAPIIDInstance    string `mapstructure:"GREEN_API_ID_INSTANCE"`
	GreenAPITokenInstance string `mapstructure:"GREEN_API_TOKEN_INSTANCE"`
	GreenAPIWebhookURL    string `mapstructure:"GREEN_API_WEBHOOK_URL"`
	GreenAPIWebhookToken  string `mapstructure:"GREEN_API_WEBHOOK_TOKEN"`
	GreenAPIPolling       bool   `mapstructure:"GREEN_API_POLLING"`

	// Language model.
	LLMProvider          string `mapstructure:"LLM_PROVIDER"`
	OpenAIAPIKey         string `mapstructure:"OPENAI_API_KEY"`
	OpenAIOrganizationID string `mapstructure:"OPENAI_ORGANIZATION_ID"`
	OpenAIModel          string `mapstructure:"OPENAI_MODEL"`
	GeminiAPIKey         string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel          string `mapstructure:"GEMINI_MODEL"`
	HistoryLimit         int    `mapstructure:"HISTORY_LIMIT"`
	PromptWindow         int    `mapstructure:"PROMPT_WINDOW"`

	// Google APIs.
	PageSpeedAPIKey          string `mapstructure:"PAGESPEED_API_KEY"`
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`
	GoogleCalendarID         string `mapstructure:"GOOGLE_CALENDAR_ID"`
	GoogleMeetLinks          bool   `mapstructure:"GOOGLE_MEET_LINKS"`
	SpeechLanguage           string `mapstructure:"SPEECH_LANGUAGE"`
	TimeZone                 string `mapstructure:"TIMEZONE"`

	// Outgoing mail.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SenderEmail  string `mapstructure:"SENDER_EMAIL"`
	SenderName   string `mapstructure:"SENDER_NAME"`

	// Booking.
	MeetingDurationMinutes int `mapstructure:"MEETING_DURATION_MINUTES"`
	WelcomeDelayMinutes    int `mapstructure:"WELCOME_DELAY_MINUTES"`

	// Admin API.
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`
}

var AppConfig Config

func LoadConfig() {
	// Values from .env become plain environment variables for viper.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables only")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "3001")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "whatsapp-bot")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("GREEN_API_URL", "https://api.green-api.com")
	v.SetDefault("GREEN_API_ID_INSTANCE", "")
	v.SetDefault("GREEN_API_TOKEN_INSTANCE", "")
	v.SetDefault("GREEN_API_WEBHOOK_URL", "")
	v.SetDefault("GREEN_API_WEBHOOK_TOKEN", "")
	v.SetDefault("GREEN_API_POLLING", false)
	v.SetDefault("LLM_PROVIDER", "openai")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_ORGANIZATION_ID", "")
	v.SetDefault("OPENAI_MODEL", "gpt-3.5-turbo-1106")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-pro")
	v.SetDefault("HISTORY_LIMIT", 10)
	v.SetDefault("PROMPT_WINDOW", 5)
	v.SetDefault("PAGESPEED_API_KEY", "")
	v.SetDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	v.SetDefault("GOOGLE_CALENDAR_ID", "primary")
	v.SetDefault("GOOGLE_MEET_LINKS", false)
	v.SetDefault("SPEECH_LANGUAGE", "he-IL")
	v.SetDefault("TIMEZONE", "Asia/Jerusalem")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SENDER_EMAIL", "")
	v.SetDefault("SENDER_NAME", "")
	v.SetDefault("MEETING_DURATION_MINUTES", 30)
	v.SetDefault("WELCOME_DELAY_MINUTES", 5)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location returns the configured time zone, falling back to UTC.
func Location() *time.Location {
	loc, err := time.LoadLocation(AppConfig.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
