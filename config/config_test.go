package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefaultsUnmarshal(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.DatabaseName != "whatsapp-bot" || cfg.HistoryLimit != 10 || cfg.PromptWindow != 5 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.MeetingDurationMinutes != 30 || cfg.TimeZone != "Asia/Jerusalem" || cfg.LLMProvider != "openai" {
		t.Fatalf("unexpected booking defaults: %+v", cfg)
	}
}

func TestLocation(t *testing.T) {
	prev := AppConfig
	defer func() { AppConfig = prev }()

	AppConfig.TimeZone = "Asia/Jerusalem"
	if got := Location().String(); got != "Asia/Jerusalem" {
		t.Fatalf("Location() = %s", got)
	}

	AppConfig.TimeZone = "Not/AZone"
	if Location() != time.UTC {
		t.Fatal("Location() should fall back to UTC")
	}
}
