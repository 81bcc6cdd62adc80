package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnvFile exports the variables of a dotenv file. Variables already set
// in the environment keep their values.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("unable to load env file %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides config values with APP_ADDR (or APP_PORT), DEVELOPMENT,
// LOG_LEVEL and LOG_FILE when they are set.
func applyEnv(c *Config) {
	if addr, ok := os.LookupEnv("APP_ADDR"); ok {
		c.Addr = addr
	} else if port, ok := os.LookupEnv("APP_PORT"); ok {
		c.Addr = ":" + port
	}

	if development, ok := os.LookupEnv("DEVELOPMENT"); ok {
		if development != "0" {
			c.Mode = "development"
		} else {
			c.Mode = "production"
		}
	}

	if level, ok := os.LookupEnv("LOG_LEVEL"); ok {
		c.Log.Level = level
	}
	if file, ok := os.LookupEnv("LOG_FILE"); ok {
		c.Log.File = file
	}
}
