package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/dokterku/presensi-backend-go/internal/pkg/geo"
	"github.com/dokterku/presensi-backend-go/internal/pkg/validator"
	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	Timezone string
}

// AttendanceConfig holds the tunables of the validation engine. The tolerance
// defaults only apply when a shift template carries no override of its own.
type AttendanceConfig struct {
	MaxAccuracyMeters             float64
	DefaultToleranceBeforeMinutes int
	DefaultToleranceAfterMinutes  int
	AccuracyToleranceMode         geo.AccuracyMode
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading configuration from environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "dokterku_presensi"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		Timezone: getEnv("APP_TIMEZONE", "Asia/Jakarta"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Attendance validation configuration
	maxAccuracy, err := strconv.ParseFloat(getEnv("ATTENDANCE_MAX_ACCURACY_METERS", "1000"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_MAX_ACCURACY_METERS: %w", err)
	}

	toleranceBefore, err := strconv.Atoi(getEnv("ATTENDANCE_TOLERANCE_BEFORE_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_TOLERANCE_BEFORE_MINUTES: %w", err)
	}

	toleranceAfter, err := strconv.Atoi(getEnv("ATTENDANCE_TOLERANCE_AFTER_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_TOLERANCE_AFTER_MINUTES: %w", err)
	}

	config.Attendance = AttendanceConfig{
		MaxAccuracyMeters:             maxAccuracy,
		DefaultToleranceBeforeMinutes: toleranceBefore,
		DefaultToleranceAfterMinutes:  toleranceAfter,
		AccuracyToleranceMode:         geo.AccuracyMode(getEnv("ATTENDANCE_ACCURACY_TOLERANCE_MODE", string(geo.AccuracyModeStrict))),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.MaxAccuracyMeters <= 0 {
		return fmt.Errorf("ATTENDANCE_MAX_ACCURACY_METERS must be positive")
	}
	if c.Attendance.DefaultToleranceBeforeMinutes < 0 || c.Attendance.DefaultToleranceAfterMinutes < 0 {
		return fmt.Errorf("attendance tolerances must not be negative")
	}
	if !validator.IsInSlice(string(c.Attendance.AccuracyToleranceMode), geo.AccuracyModeValues) {
		return fmt.Errorf("ATTENDANCE_ACCURACY_TOLERANCE_MODE must be one of: strict, accuracy_aware")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
