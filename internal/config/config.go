package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the broker.
type Config struct {
	Port string
	Env  string

	// Bearer tokens, one per capability tier. Token is the full-access
	// credential and always has a value; the narrower tiers only exist when
	// their token is configured. AdminToken is carried in a separate header
	// and gates bot deletion only.
	Token         string
	LarvaToken    string
	ReadonlyToken string
	AdminToken    string

	// DataDir holds the JSON snapshot files plus the log/ shard directory.
	DataDir string

	// SkillFile is the markdown document served verbatim at /skill.
	SkillFile string
}

// Load reads configuration from environment variables. In development it
// loads from a .env file if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "9999"),
		Env:           getEnv("ENV", "development"),
		Token:         getEnv("TOKEN", "nerve-cord-default-token"),
		LarvaToken:    os.Getenv("LARVA_TOKEN"),
		ReadonlyToken: os.Getenv("READONLY_TOKEN"),
		AdminToken:    os.Getenv("ADMIN_TOKEN"),
		DataDir:       getEnv("DATA_DIR", "./data"),
		SkillFile:     getEnv("SKILL_FILE", "SKILL.md"),
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
