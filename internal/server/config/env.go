package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from the process environment. A .env file
// in the working directory is merged in first without clobbering variables
// that are already set.
//
// Recognized variables:
//
//	PORT                     bind address or bare port ("3000" and ":3000" both work)
//	GIN_MODE                 gin engine mode ("debug", "release", "test")
//	DATABASE_DSN             PostgreSQL DSN
//	JWT_SECRET               HMAC secret for access tokens
//	ACCESS_TOKEN_TTL_MIN     access token validity, minutes
//	REFRESH_TOKEN_TTL_MIN    refresh token validity, minutes
//	S3_ACCESS_KEY, S3_SECRET_KEY, S3_BUCKET, S3_REGION, S3_ENDPOINT, S3_PUBLIC_URL
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		if v[0] != ':' {
			v = ":" + v
		}
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("GIN_MODE"); ok && v != "" {
		config.GinMode = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("ACCESS_TOKEN_TTL_MIN"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.AccessTokenValidityDuration = time.Duration(n) * time.Minute
		}
	}
	if v, ok := os.LookupEnv("REFRESH_TOKEN_TTL_MIN"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.RefreshTokenValidityDuration = time.Duration(n) * time.Minute
		}
	}
	if v, ok := os.LookupEnv("S3_ACCESS_KEY"); ok {
		config.S3AccessKey = v
	}
	if v, ok := os.LookupEnv("S3_SECRET_KEY"); ok {
		config.S3SecretKey = v
	}
	if v, ok := os.LookupEnv("S3_BUCKET"); ok {
		config.S3Bucket = v
	}
	if v, ok := os.LookupEnv("S3_REGION"); ok {
		config.S3Region = v
	}
	if v, ok := os.LookupEnv("S3_ENDPOINT"); ok {
		config.S3BaseEndpoint = v
	}
	if v, ok := os.LookupEnv("S3_PUBLIC_URL"); ok {
		config.S3PublicBaseURL = v
	}
}
