package env

import (
	"os"
)

const (
	RedisURL  = "REDIS_URL"
	RedisPass = "REDIS_PASS"
	WebUrl    = "WEB_URL"
	Port      = "PORT"
)

func init() {
	required := []string{
		RedisURL,
		WebUrl,
	}
	for _, key := range required {
		if os.Getenv(key) == "" {
			panic("env: required environment variable not set: " + key)
		}
	}
}

func Get(key string) string {
	return os.Getenv(key)
}

func GetOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func MustGet(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic("env: required environment variable not set: " + key)
	}
	return val
}
