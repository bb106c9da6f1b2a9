// Package config loads process settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ytakahashi/habit-tracker/internal/models"
)

const (
	StoreFirestore = "firestore"
	StoreMemory    = "memory"

	DefaultPort       = "5000"
	DefaultCollection = "tasks"
	DefaultAPIURL     = "http://localhost:5000"
)

// Config holds the settings shared by the server and the terminal client.
type Config struct {
	Port              string
	ProjectID         string
	Store             string
	Collection        string
	AllowOrigins      []string
	Categories        []string
	EnforceCategories bool
	APIURL            string
	Debug             bool
}

// LoadDotEnv reads .env into the environment. It reports whether a file was found.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// FromEnv builds a Config from environment variables, applying defaults.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:         getenv("PORT", DefaultPort),
		ProjectID:    os.Getenv("GOOGLE_CLOUD_PROJECT"),
		Store:        strings.ToLower(getenv("HABITS_STORE", StoreFirestore)),
		Collection:   getenv("HABITS_COLLECTION", DefaultCollection),
		AllowOrigins: splitList(getenv("HABITS_ALLOW_ORIGINS", "*")),
		Categories:   splitList(os.Getenv("HABITS_CATEGORIES")),
		APIURL:       strings.TrimRight(getenv("HABITS_API_URL", DefaultAPIURL), "/"),
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = append([]string(nil), models.DefaultCategories...)
	}

	var err error
	if cfg.EnforceCategories, err = getbool("HABITS_ENFORCE_CATEGORIES"); err != nil {
		return nil, err
	}
	if cfg.Debug, err = getbool("HABITS_DEBUG"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the server needs.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreFirestore:
		if c.ProjectID == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT environment variable is required for the %s store", StoreFirestore)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown HABITS_STORE %q", c.Store)
	}
	if c.Collection == "" {
		return fmt.Errorf("HABITS_COLLECTION must not be empty")
	}
	return nil
}

// Addr is the listen address for the server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getbool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
