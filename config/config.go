package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Optimizer tunables.
	MinGapMinutes           int `mapstructure:"MIN_GAP_MINUTES"`            // smallest idle window reported as a gap
	MaxGapMinutes           int `mapstructure:"MAX_GAP_MINUTES"`            // largest gap still worth consolidating
	MinBenefitScore         int `mapstructure:"MIN_BENEFIT_SCORE"`          // threshold below which opportunities are dropped
	DayEndMinutes           int `mapstructure:"DAY_END_MINUTES"`            // end-of-day boundary, minutes from midnight
	SuggestionRetentionDays int `mapstructure:"SUGGESTION_RETENTION_DAYS"`  // pending suggestions expire after this many days
	PreferenceHistoryLimit  int `mapstructure:"PREFERENCE_HISTORY_LIMIT"`   // completed bookings sampled for preference scoring

	// Firebase service account for push notifications.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "coachflow")
	viper.SetDefault("MIN_GAP_MINUTES", 30)
	viper.SetDefault("MAX_GAP_MINUTES", 90)
	viper.SetDefault("MIN_BENEFIT_SCORE", 30)
	viper.SetDefault("DAY_END_MINUTES", 1260) // 21:00
	viper.SetDefault("SUGGESTION_RETENTION_DAYS", 7)
	viper.SetDefault("PREFERENCE_HISTORY_LIMIT", 20)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
