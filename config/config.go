package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort    string
	DatabaseDSN   string
	AccessSecret  string
	AccessTTL     time.Duration
	KafkaBroker   string
	KafkaTopic    string
	KafkaUsername string
	KafkaPassword string
	CORSOrigins   string
}

const defaultAccessTTL = 30 * time.Minute

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	ttl := defaultAccessTTL
	if raw := os.Getenv("ACCESS_TTL_MIN"); raw != "" {
		mins, err := strconv.Atoi(raw)
		if err != nil || mins <= 0 {
			log.Printf("invalid ACCESS_TTL_MIN %q, using default", raw)
		} else {
			ttl = time.Duration(mins) * time.Minute
		}
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = ":3000"
	}

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "*"
	}

	return Config{
		ServerPort:    port,
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		AccessSecret:  os.Getenv("ACCESS_SECRET"),
		AccessTTL:     ttl,
		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    os.Getenv("KAFKA_TOPIC"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),
		CORSOrigins:   origins,
	}
}
