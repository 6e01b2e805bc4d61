package config

import (
	"os"
	"strings"
)

// getEnv retrieves an environment variable value, trimmed.
func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// getEnvOrFile retrieves a value from either KEY or the file named by
// KEY_FILE (Docker secrets pattern). The file wins when both are set and
// readable; its contents are trimmed.
func getEnvOrFile(key string) string {
	if path := os.Getenv(key + "_FILE"); path != "" {
		if content, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return getEnv(key)
}

// parseBool accepts true/false, 1/0, yes/no, on/off (case-insensitive) and
// reports whether s was recognised.
func parseBool(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	}
	return false, false
}
