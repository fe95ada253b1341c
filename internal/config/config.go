package config

import (
	"os"
	"strconv"

	"xraysim/internal/physics"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint         string
	AccessKey        string
	SecretKey        string
	Bucket           string
	UseSSL           bool
	PresignExpirySec int
}

// RenderConfig bounds what the API will render on request.
type RenderConfig struct {
	DefaultWidth  int
	DefaultHeight int
	MaxDimension  int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Timezone string
	Database DatabaseConfig
	MinIO    MinIOConfig
	Render   RenderConfig
	// Physics is the calibration set bound into the attenuation calculator.
	Physics physics.Params
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	def := physics.DefaultParams()

	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"), // default only for non-sensitive value
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:         getEnv("MINIO_ENDPOINT", ""),
			AccessKey:        getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:        getEnv("MINIO_SECRET_KEY", ""),
			Bucket:           getEnv("MINIO_BUCKET", ""),
			UseSSL:           getEnvBool("MINIO_USE_SSL", false),
			PresignExpirySec: getEnvInt("MINIO_PRESIGN_EXPIRY_SEC", 900),
		},
		Render: RenderConfig{
			DefaultWidth:  getEnvInt("RENDER_DEFAULT_WIDTH", 256),
			DefaultHeight: getEnvInt("RENDER_DEFAULT_HEIGHT", 256),
			MaxDimension:  getEnvInt("RENDER_MAX_DIMENSION", 2048),
		},
		Physics: physics.Params{
			FOVX:          getEnvFloat("XRAY_FOV_X_CM", def.FOVX),
			SphereRadius:  getEnvFloat("XRAY_SPHERE_RADIUS_CM", def.SphereRadius),
			SphereCenterX: getEnvFloat("XRAY_SPHERE_CENTER_X_CM", def.SphereCenterX),
			SphereCenterY: getEnvFloat("XRAY_SPHERE_CENTER_Y_CM", def.SphereCenterY),
			MuRef:         getEnvFloat("XRAY_MU_REF", def.MuRef),
			VoltageRef:    getEnvFloat("XRAY_KVP_REF", def.VoltageRef),
			MuPower:       getEnvFloat("XRAY_MU_POWER", def.MuPower),
			MuMin:         getEnvFloat("XRAY_MU_MIN", def.MuMin),
			VoltageFloor:  getEnvFloat("XRAY_KVP_FLOOR", def.VoltageFloor),
			I0Min:         getEnvFloat("XRAY_I0_MIN", def.I0Min),
			I0Max:         getEnvFloat("XRAY_I0_MAX", def.I0Max),
			CurrentLow:    getEnvFloat("XRAY_MA_LOW", def.CurrentLow),
			CurrentHigh:   getEnvFloat("XRAY_MA_HIGH", def.CurrentHigh),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
