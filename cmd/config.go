package cmd

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	DraftQuota int

	// Optional collaborators. Empty values select the in-process fallbacks.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KafkaBrokers  []string
	KafkaTopic    string

	AWSRegion             string
	AWSS3Bucket           string
	AWSAccessKeyID        string
	AWSSecretAccessKey    string
	DocumentRetrySchedule string
	DocumentMaxAttempts   int
	DocumentWorkers       int

	Auth0Domain     string
	Auth0Audience   string
	OpenAPIValidate bool
}

// DSN is the postgres connection string used by both gorm and sqlx.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads an optional .env file and then the environment.
// Environment variables win over the file.
func LoadConfig(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "workshop")
	v.SetDefault("DB_NAME", "workshop")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DRAFT_QUOTA", 5)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("KAFKA_TOPIC", "workshop.events")
	v.SetDefault("AWS_REGION", "eu-central-1")
	v.SetDefault("DOCUMENT_RETRY_SCHEDULE", "0 * * * * *")
	v.SetDefault("DOCUMENT_MAX_ATTEMPTS", 5)
	v.SetDefault("DOCUMENT_WORKERS", 2)
	v.SetDefault("OPENAPI_VALIDATE", true)

	return Config{
		HTTPPort:              v.GetString("HTTP_PORT"),
		DBHost:                v.GetString("DB_HOST"),
		DBPort:                v.GetString("DB_PORT"),
		DBUser:                v.GetString("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBName:                v.GetString("DB_NAME"),
		DBSslMode:             v.GetString("DB_SSLMODE"),
		DraftQuota:            v.GetInt("DRAFT_QUOTA"),
		RedisAddr:             v.GetString("REDIS_ADDR"),
		RedisPassword:         v.GetString("REDIS_PASSWORD"),
		RedisDB:               v.GetInt("REDIS_DB"),
		KafkaBrokers:          splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:            v.GetString("KAFKA_TOPIC"),
		AWSRegion:             v.GetString("AWS_REGION"),
		AWSS3Bucket:           v.GetString("AWS_S3_BUCKET"),
		AWSAccessKeyID:        v.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey:    v.GetString("AWS_SECRET_ACCESS_KEY"),
		DocumentRetrySchedule: v.GetString("DOCUMENT_RETRY_SCHEDULE"),
		DocumentMaxAttempts:   v.GetInt("DOCUMENT_MAX_ATTEMPTS"),
		DocumentWorkers:       v.GetInt("DOCUMENT_WORKERS"),
		Auth0Domain:           v.GetString("AUTH0_DOMAIN"),
		Auth0Audience:         v.GetString("AUTH0_AUDIENCE"),
		OpenAPIValidate:       v.GetBool("OPENAPI_VALIDATE"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
