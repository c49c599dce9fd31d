// Package auth loads and checks API keys for the TTS gateway. When no
// key file is configured or found, authentication is disabled and
// every request is allowed through.
package auth

import (
	"bufio"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// KeySet holds the set of valid API keys. A zero-value KeySet (or one
// built from an empty file) has authentication disabled.
type KeySet struct {
	keys map[string]struct{}
}

// Empty returns a KeySet with no keys configured (authentication
// disabled).
func Empty() KeySet {
	return KeySet{}
}

// LoadKeys loads keys following environment-then-default-locations
// precedence: the path named by keyFileEnv (if non-empty and
// readable), then ./api_keys.txt, then $HOME/.tts-gateway/api_keys.txt,
// then /etc/tts-gateway/api_keys.txt. The first location that yields
// at least one key wins. If none do, authentication is disabled.
func LoadKeys(keyFileEnv string) KeySet {
	if keyFileEnv != "" {
		if keys, err := loadFromFile(keyFileEnv); err == nil && len(keys) > 0 {
			return KeySet{keys: keys}
		}
	}

	for _, location := range defaultLocations() {
		if _, err := os.Stat(location); err != nil {
			continue
		}

		if keys, err := loadFromFile(location); err == nil && len(keys) > 0 {
			return KeySet{keys: keys}
		}
	}

	return Empty()
}

func defaultLocations() []string {
	locations := []string{"./api_keys.txt"}

	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".tts-gateway", "api_keys.txt"))
	}

	return append(locations, "/etc/tts-gateway/api_keys.txt")
}

// loadFromFile reads one API key per line, skipping blank lines and
// lines starting with '#'.
func loadFromFile(path string) (map[string]struct{}, error) {
	file, err := os.Open(path) //nolint:gosec // operator-configured path, not request input
	if err != nil {
		return nil, err
	}
	defer file.Close() //nolint:errcheck

	keys := make(map[string]struct{})

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		keys[line] = struct{}{}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}

// Enabled reports whether any keys are configured.
func (s KeySet) Enabled() bool {
	return len(s.keys) > 0
}

// Count returns the number of configured keys.
func (s KeySet) Count() int {
	return len(s.keys)
}

// Valid reports whether key is one of the configured keys.
func (s KeySet) Valid(key string) bool {
	_, ok := s.keys[key]

	return ok
}

// Extract pulls an API key out of request headers, preferring
// X-API-Key over an Authorization: Bearer header. It returns "" if
// neither is present.
func Extract(header http.Header) string {
	if key := header.Get("X-API-Key"); key != "" {
		return key
	}

	if auth := header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	return ""
}
