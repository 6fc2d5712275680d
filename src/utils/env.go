package utils

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const envFilename = ".env"

// InitEnvironmentVariables loads the optional .env file. Production deploys
// set real environment variables, so a missing file is not an error.
func InitEnvironmentVariables() {
	if os.Getenv("ENV") == "production" {
		log.Info("Running in production environment")
		return
	}

	if err := godotenv.Load(envFilename); err != nil {
		log.Debugf("InitEnvironmentVariables: no %s file loaded: %v", envFilename, err)
	}
}

// GetEnv returns the value of an environment variable or a fallback.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
