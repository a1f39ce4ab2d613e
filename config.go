package main

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ServiceName = "admin"
	envPrefix   = "ADMIN_"
)

var ErrNoBackend = errors.New("backend url is required: set ADMIN_API_URL or -api_url")

type Config struct {
	Addr            string
	DiagAddr        string
	APIURL          string
	AuthToken       string
	TokenFile       string
	BackendTimeout  time.Duration
	BackendRPS      float64
	SessionCapacity int
	Debug           bool
	Routes          bool
}

// LoadConfig reads the dotenv file when it exists, then the flags. Every
// flag defaults to its ADMIN_ environment variable.
func LoadConfig(args []string, dotenv string) (Config, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	var c Config

	flags := flag.NewFlagSet(ServiceName, flag.ContinueOnError)
	flags.StringVar(&c.Addr, "addr", getEnv("ADDR", ":3333"), "application address")
	flags.StringVar(&c.DiagAddr, "diag_addr", getEnv("DIAG_ADDR", ":9999"), "diag address")
	flags.StringVar(&c.APIURL, "api_url", getEnv("API_URL", ""), "content backend base url")
	flags.StringVar(&c.AuthToken, "auth_token", getEnv("AUTH_TOKEN", ""), "bearer token for the backend")
	flags.StringVar(&c.TokenFile, "token_file", getEnv("TOKEN_FILE", ""), "yaml file holding authToken")
	flags.DurationVar(&c.BackendTimeout, "backend_timeout", getEnvDuration("BACKEND_TIMEOUT", 10*time.Second), "backend request timeout")
	flags.Float64Var(&c.BackendRPS, "backend_rps", getEnvFloat("BACKEND_RPS", 0), "backend requests per second, 0 is unlimited")
	flags.IntVar(&c.SessionCapacity, "session_capacity", getEnvInt("SESSION_CAPACITY", 1024), "sessions kept in memory")
	flags.BoolVar(&c.Debug, "debug", getEnvBool("DEBUG", false), "development logging")
	flags.BoolVar(&c.Routes, "routes", getEnvBool("ROUTES", false), "Generate router documentation")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	c.APIURL = strings.TrimSpace(c.APIURL)
	if c.APIURL == "" && !c.Routes {
		return Config{}, ErrNoBackend
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}

	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}

	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return v
	}

	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}

	return fallback
}
