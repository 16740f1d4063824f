package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Organization settings governing time reconciliation.
	OrgTimezone           string
	OrgLocation           *time.Location
	FullWorkdayHours      int
	BalanceConsumingTypes []domain.AbsenceType
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "attendance-app")
	viper.SetDefault("ORG_TIMEZONE", "Europe/Madrid")
	viper.SetDefault("FULL_WORKDAY_HOURS", 8)
	viper.SetDefault("BALANCE_CONSUMING_TYPES", "VACATION,PERSONAL_DAY")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "attendance-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.OrgTimezone = viper.GetString("ORG_TIMEZONE")
	loc, err := time.LoadLocation(cfg.OrgTimezone)
	if err != nil {
		log.Printf("Warning: Invalid ORG_TIMEZONE ('%s'). Defaulting to Europe/Madrid.\n", cfg.OrgTimezone)
		cfg.OrgTimezone = "Europe/Madrid"
		loc, err = time.LoadLocation(cfg.OrgTimezone)
		if err != nil {
			return nil, err
		}
	}
	cfg.OrgLocation = loc

	cfg.FullWorkdayHours = viper.GetInt("FULL_WORKDAY_HOURS")
	if cfg.FullWorkdayHours <= 0 || cfg.FullWorkdayHours > 24 {
		log.Printf("Warning: Invalid FULL_WORKDAY_HOURS (%d). Defaulting to 8.\n", cfg.FullWorkdayHours)
		cfg.FullWorkdayHours = 8
	}

	for _, raw := range strings.Split(viper.GetString("BALANCE_CONSUMING_TYPES"), ",") {
		t := domain.AbsenceType(strings.TrimSpace(raw))
		if t == "" {
			continue
		}
		if !t.IsValid() {
			log.Printf("Warning: Ignoring unknown absence type %q in BALANCE_CONSUMING_TYPES.\n", t)
			continue
		}
		cfg.BalanceConsumingTypes = append(cfg.BalanceConsumingTypes, t)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	return cfg, nil
}
