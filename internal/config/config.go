package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	CORS       CORSConfig
	Payroll    PayrollConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration. Tokens are issued by the external
// identity layer; this service only verifies them.
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration // only used when minting tokens for tooling
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Version  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// PayrollConfig holds the tunables of the monthly payroll computation.
type PayrollConfig struct {
	WorkingDaysPerMonth int
	LatePenaltyFraction decimal.Decimal
}

type AttendanceConfig struct {
	Location       *time.Location
	LateCutoff     time.Duration // offset from local midnight
	AutoMarkAbsent bool

	SiteLatitude     float64
	SiteLongitude    float64
	SiteRadiusMeters float64 // 0 disables the geofence
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "rental_hr"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Version:  getEnv("APP_VERSION", "v1.0.0"),
	}

	accessExp, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION: %w", err)
	}
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExp,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}
	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	}

	payroll, err := loadPayrollConfig()
	if err != nil {
		return nil, err
	}
	config.Payroll = payroll

	attendance, err := loadAttendanceConfig()
	if err != nil {
		return nil, err
	}
	config.Attendance = attendance

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadPayrollConfig() (PayrollConfig, error) {
	workingDays, err := strconv.Atoi(getEnv("PAYROLL_WORKING_DAYS", "26"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid PAYROLL_WORKING_DAYS: %w", err)
	}

	penalty, err := decimal.NewFromString(getEnv("PAYROLL_LATE_PENALTY", "0.10"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid PAYROLL_LATE_PENALTY: %w", err)
	}

	return PayrollConfig{
		WorkingDaysPerMonth: workingDays,
		LatePenaltyFraction: penalty,
	}, nil
}

func loadAttendanceConfig() (AttendanceConfig, error) {
	loc, err := time.LoadLocation(getEnv("ATTENDANCE_TIMEZONE", "Asia/Kolkata"))
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
	}

	cutoff, err := time.Parse("15:04", getEnv("ATTENDANCE_LATE_CUTOFF", "09:15"))
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid ATTENDANCE_LATE_CUTOFF: %w", err)
	}

	autoMark, err := strconv.ParseBool(getEnv("ATTENDANCE_AUTO_MARK_ABSENT", "false"))
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid ATTENDANCE_AUTO_MARK_ABSENT: %w", err)
	}

	lat, err := strconv.ParseFloat(getEnv("ATTENDANCE_SITE_LAT", "0"), 64)
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid ATTENDANCE_SITE_LAT: %w", err)
	}
	lng, err := strconv.ParseFloat(getEnv("ATTENDANCE_SITE_LNG", "0"), 64)
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid ATTENDANCE_SITE_LNG: %w", err)
	}
	radius, err := strconv.ParseFloat(getEnv("ATTENDANCE_SITE_RADIUS_METERS", "0"), 64)
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid ATTENDANCE_SITE_RADIUS_METERS: %w", err)
	}

	return AttendanceConfig{
		Location:         loc,
		LateCutoff:       time.Duration(cutoff.Hour())*time.Hour + time.Duration(cutoff.Minute())*time.Minute,
		AutoMarkAbsent:   autoMark,
		SiteLatitude:     lat,
		SiteLongitude:    lng,
		SiteRadiusMeters: radius,
	}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Payroll.WorkingDaysPerMonth <= 0 {
		return fmt.Errorf("PAYROLL_WORKING_DAYS must be positive")
	}
	if c.Payroll.LatePenaltyFraction.IsNegative() || c.Payroll.LatePenaltyFraction.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("PAYROLL_LATE_PENALTY must be between 0 and 1")
	}
	if c.Attendance.SiteRadiusMeters < 0 {
		return fmt.Errorf("ATTENDANCE_SITE_RADIUS_METERS must not be negative")
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

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
