package config

import (
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Executable    string
	Timeout       time.Duration
	LogLevel      string
	LogFile       string
	ProbeResolver string
	ProbeHost     string
	ProbeTarget   string
	UpdateURL     string
	IsDev         bool
}

// Load reads .env (if present) and the environment. isDev comes from the
// --dev flag.
func Load(isDev bool) *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[CONFIG] No .env file found, relying on system env vars")
	}

	return &Config{
		IsDev:         isDev,
		Executable:    getEnv("NETSETUP_BIN", "networksetup"),
		Timeout:       time.Duration(getEnvAsInt("NETSETUP_TIMEOUT_SEC", 0)) * time.Second,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
		ProbeResolver: getEnv("PROBE_RESOLVER", "1.1.1.1:53"),
		ProbeHost:     getEnv("PROBE_HOST", "captive.apple.com"),
		ProbeTarget:   getEnv("PROBE_PING", "1.1.1.1"),
		UpdateURL:     getEnv("UPDATE_URL", ""),
	}
}

// UseRealHardware reports whether networksetup should actually be run.
func (c *Config) UseRealHardware() bool {
	return runtime.GOOS == "darwin" && !c.IsDev
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	val, err := strconv.Atoi(strValue)
	if err != nil || val < 0 {
		log.Printf("[CONFIG] Warning: Invalid integer for %s, using default: %d", key, fallback)
		return fallback
	}
	return val
}
