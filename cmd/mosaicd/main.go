package main

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/submersibletoaster/mosaic/api"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := api.Config{
		HTTPPort:       getEnv("HTTP_PORT", ":5555"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", api.DefaultMaxUploadBytes)),
		MaxUnits:       getEnvInt("MAX_UNITS", 64),
		Resampler:      getEnv("RESAMPLER", "lanczos"),
		DevMode:        getEnvBool("DEV_MODE", false),
	}
	if config.DevMode {
		log.SetLevel(log.DebugLevel)
	}

	app, err := api.NewApplication(config)
	if err != nil {
		log.Fatalf("Bad configuration: %v", err)
	}

	log.Info("Rubik's mosaic API starting...")
	if err := app.Serve(http.NewServeMux()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		log.Warnf("%s=%q is not an integer, using %d", key, value, defaultValue)
		return defaultValue
	}
	return intVal
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolVal
}

func getEnvSlice(key, defaultValue string) []string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	return strings.Split(value, ",")
}
