package config

import (
	"os"
	"strconv"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	// Server
	Port int

	// WorldFile is the editor's JSON world file holding the asset collection
	WorldFile string

	// EditorSecret is the shared secret an editor UI exchanges for a token
	EditorSecret string

	// JWTSecret signs editor tokens
	JWTSecret string
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		Port:         envInt("SOUNDSTORE_PORT", 8080),
		WorldFile:    envStr("SOUNDSTORE_WORLD_FILE", "world.json"),
		EditorSecret: envStr("SOUNDSTORE_EDITOR_SECRET", ""),
		JWTSecret:    envStr("SOUNDSTORE_JWT_SECRET", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
