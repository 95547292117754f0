package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	JWTSecret  string

	// Backend del taller (la autoridad sobre citas y calendarios).
	UpstreamBaseURL string
	UpstreamToken   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Huso horario del taller, usado para resolver horas de pared.
	Timezone string

	// Vida del snapshot de agenda de una pantalla (minutos).
	SnapshotTTLMin int

	// Jornada laboral para sugerir bloques libres.
	WorkdayStart string
	WorkdayEnd   string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		JWTSecret:       getEnv("JWT_SECRET", "changeme"),
		UpstreamBaseURL: getEnv("UPSTREAM_BASE_URL", "http://localhost:8000/api"),
		UpstreamToken:   getEnv("UPSTREAM_TOKEN", ""),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		Timezone:        getEnv("TALLER_TIMEZONE", "America/La_Paz"),
		SnapshotTTLMin:  getEnvInt("SNAPSHOT_TTL_MIN", 15),
		WorkdayStart:    getEnv("WORKDAY_START", "08:00"),
		WorkdayEnd:      getEnv("WORKDAY_END", "18:00"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}
