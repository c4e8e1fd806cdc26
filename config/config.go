package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all server configuration
type Config struct {
	Port           int
	Mode           string // "console", "websocket", or "both"
	RedisURL       string
	RedisPassword  string
	MaxSessions    int
	SessionTimeout time.Duration
	GeminiAPIKey   string
	GeminiModel    string
	AllowedOrigins []string
	MenuFile       string        // CSV menu file (Category,Item); empty uses the built-in menu
	OrdersFile     string        // Append-only order log (one JSON record per line)
	MaxTranscript  int           // Maximum retained conversation messages per session
	LLMTimeout     time.Duration // Per-call deadline for the LLM collaborator
}

// LoadConfig loads configuration from environment variables with defaults
func LoadConfig() (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	config := &Config{
		Port:           8080,
		Mode:           "console",
		RedisURL:       "localhost:6379",
		RedisPassword:  "",
		MaxSessions:    100,
		SessionTimeout: 30 * time.Minute,
		GeminiModel:    "models/gemini-2.0-flash",
		AllowedOrigins: []string{"*"},
		MenuFile:       "",
		OrdersFile:     "orders.jsonl",
		MaxTranscript:  60,
		LLMTimeout:     15 * time.Second,
	}

	// Required: GEMINI_API_KEY
	config.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	// Optional: GEMINI_MODEL
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		config.GeminiModel = model
	}

	// Optional: PORT
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		config.Port = p
	}

	// Optional: REDIS_URL
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		config.RedisURL = redisURL
	}

	// Optional: REDIS_PASSWORD
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.RedisPassword = redisPassword
	}

	// Optional: MAX_SESSIONS
	if maxSessions := os.Getenv("MAX_SESSIONS"); maxSessions != "" {
		m, err := strconv.Atoi(maxSessions)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_SESSIONS: %w", err)
		}
		config.MaxSessions = m
	}

	// Optional: SESSION_TIMEOUT (in minutes)
	if timeout := os.Getenv("SESSION_TIMEOUT"); timeout != "" {
		t, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TIMEOUT: %w", err)
		}
		config.SessionTimeout = time.Duration(t) * time.Minute
	}

	// Optional: ALLOWED_ORIGINS (comma-separated)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}

	// Optional: MENU_FILE
	if menuFile := os.Getenv("MENU_FILE"); menuFile != "" {
		config.MenuFile = menuFile
	}

	// Optional: ORDERS_FILE
	if ordersFile := os.Getenv("ORDERS_FILE"); ordersFile != "" {
		config.OrdersFile = ordersFile
	}

	// Optional: MAX_TRANSCRIPT (message count)
	if maxTranscript := os.Getenv("MAX_TRANSCRIPT"); maxTranscript != "" {
		m, err := strconv.Atoi(maxTranscript)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_TRANSCRIPT: %w", err)
		}
		config.MaxTranscript = m
	}

	// Optional: LLM_TIMEOUT (in seconds)
	if llmTimeout := os.Getenv("LLM_TIMEOUT"); llmTimeout != "" {
		t, err := strconv.Atoi(llmTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid LLM_TIMEOUT: %w", err)
		}
		config.LLMTimeout = time.Duration(t) * time.Second
	}

	// Optional: MODE ("console", "websocket", or "both")
	if mode := os.Getenv("MODE"); mode != "" {
		switch mode {
		case "console", "websocket", "both":
			config.Mode = mode
		default:
			return nil, fmt.Errorf("invalid MODE: must be 'console', 'websocket', or 'both'")
		}
	}

	return config, nil
}
