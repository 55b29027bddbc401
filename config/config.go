package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// defaultKeywords is the stock keyword list. Deployments override it with the
// KEYWORDS env var (comma-separated).
var defaultKeywords = []string{
	"bug",
	"issue",
	"problem",
	"error",
	"broken",
	"not working",
	"failed",
	"crash",
	"incident",
	"urgent",
	"rattle",
	"deflation",
}

type SlackConfig struct {
	BotToken      string
	SigningSecret string
	TeamID        string
}

// IsConfigured returns true if all required Slack configuration is present
func (c SlackConfig) IsConfigured() bool {
	return c.BotToken != "" && c.SigningSecret != ""
	// Note: TeamID is optional
}

type AppConfig struct {
	Port string // Optional with default "3000"

	// Keywords flagged messages must contain, lower-cased, in report order
	Keywords []string

	// ReplyPageLimit bounds how many thread replies a single analysis fetches.
	// Slack silently truncates the thread at this bound.
	ReplyPageLimit int

	// PostInterval is the minimum pause between consecutive report posts
	PostInterval time.Duration

	// CleanupDelay is the grace period before the status message is deleted
	CleanupDelay time.Duration

	// Location is the time zone used to render message times
	Location *time.Location

	SlackConfig SlackConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	botToken, err := getEnvRequired("SLACK_BOT_TOKEN")
	if err != nil {
		return nil, err
	}

	signingSecret, err := getEnvRequired("SLACK_SIGNING_SECRET")
	if err != nil {
		return nil, err
	}

	keywords, err := ParseKeywords(getEnvWithDefault("KEYWORDS", strings.Join(defaultKeywords, ",")))
	if err != nil {
		return nil, err
	}

	pageLimit, err := strconv.Atoi(getEnvWithDefault("REPLY_PAGE_LIMIT", "1000"))
	if err != nil || pageLimit <= 0 {
		return nil, fmt.Errorf("REPLY_PAGE_LIMIT must be a positive integer")
	}

	postInterval, err := time.ParseDuration(getEnvWithDefault("POST_INTERVAL", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid POST_INTERVAL: %w", err)
	}

	cleanupDelay, err := time.ParseDuration(getEnvWithDefault("CLEANUP_DELAY", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLEANUP_DELAY: %w", err)
	}

	location := time.Local
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		location, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
		}
	}

	config := &AppConfig{
		Port:           getEnvWithDefault("PORT", "3000"),
		Keywords:       keywords,
		ReplyPageLimit: pageLimit,
		PostInterval:   postInterval,
		CleanupDelay:   cleanupDelay,
		Location:       location,
		SlackConfig: SlackConfig{
			BotToken:      botToken,
			SigningSecret: signingSecret,
			TeamID:        os.Getenv("SLACK_TEAM_ID"),
		},
	}

	log.Printf("✅ Loaded configuration - tracking %d keyword(s)", len(config.Keywords))
	return config, nil
}

// ParseKeywords splits a comma-separated keyword list, trimming whitespace
// and lower-casing each entry. The resulting list must be non-empty.
func ParseKeywords(raw string) ([]string, error) {
	var keywords []string
	for _, part := range strings.Split(raw, ",") {
		keyword := strings.ToLower(strings.TrimSpace(part))
		if keyword == "" {
			continue
		}
		keywords = append(keywords, keyword)
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("keyword list must not be empty")
	}
	return keywords, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
