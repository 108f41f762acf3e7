package config

import (
	"os"
)

type EmailConfig struct {
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	SenderEmail        string
}

type StorageConfig struct {
	AWSRegion   string
	ImageBucket string
}

type ServerConfig struct {
	Addr          string
	SessionSecret string
}

func LoadEmailConfig() EmailConfig {
	return EmailConfig{
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSRegion:          getEnvOrDefault("AWS_REGION", "us-east-1"),
		SenderEmail:        os.Getenv("SENDER_EMAIL"),
	}
}

func LoadStorageConfig() StorageConfig {
	return StorageConfig{
		AWSRegion:   getEnvOrDefault("AWS_REGION", "us-east-1"),
		ImageBucket: os.Getenv("IMAGE_BUCKET"),
	}
}

func LoadServerConfig() ServerConfig {
	return ServerConfig{
		Addr:          getEnvOrDefault("SERVER_ADDR", ":8080"),
		SessionSecret: getEnvOrDefault("SESSION_SECRET", "change-me"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
