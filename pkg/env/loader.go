// Package env reads assertctl settings from a .env file and the
// process environment. Process variables take precedence.
package env

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Setting names understood by assertctl.
const (
	KeyNoColor   = "ASSERTCTL_NO_COLOR"
	KeyLogFile   = "ASSERTCTL_LOG_FILE"
	KeyLogLevel  = "ASSERTCTL_LOG_LEVEL"
	KeyReportDir = "ASSERTCTL_REPORT_DIR"
	KeyParallel  = "ASSERTCTL_PARALLEL"

	// KeyInputToken is sent as a bearer token when fetching URL inputs.
	KeyInputToken = "ASSERTCTL_INPUT_TOKEN"
)

// Loader defines the interface for environment variable management.
type Loader interface {
	// Load reads environment variables from a .env file.
	Load(filepath string) error
	// Get retrieves an environment variable value.
	Get(key string) string
	// GetRequired retrieves a required environment variable or returns error.
	GetRequired(key string) (string, error)
	// GetWithDefault retrieves an environment variable with a default fallback.
	GetWithDefault(key, defaultValue string) string
	// GetBool parses a boolean variable; unset or malformed values yield def.
	GetBool(key string, def bool) bool
	// GetInt parses an integer variable; unset or malformed values yield def.
	GetInt(key string, def int) int
	// Set sets an environment variable.
	Set(key, value string) error
	// All returns all loaded environment variables.
	All() map[string]string
}

// DefaultLoader implements Loader with .env file support.
type DefaultLoader struct {
	mu     sync.RWMutex
	vars   map[string]string
	loaded bool
}

// NewLoader creates a new DefaultLoader.
func NewLoader() *DefaultLoader {
	return &DefaultLoader{
		vars: make(map[string]string),
	}
}

func (l *DefaultLoader) Load(filepath string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.Open(filepath)
	if err != nil {
		return fmt.Errorf("open env file %s: %w", filepath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		// Remove surrounding quotes
		value = strings.Trim(value, `"'`)
		l.vars[key] = value
	}

	l.loaded = true
	return scanner.Err()
}

// Loaded reports whether a .env file has been read.
func (l *DefaultLoader) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

func (l *DefaultLoader) Get(key string) string {
	// OS env takes precedence
	if v := os.Getenv(key); v != "" {
		return v
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.vars[key]
}

func (l *DefaultLoader) GetRequired(key string) (string, error) {
	v := l.Get(key)
	if v == "" {
		return "", fmt.Errorf("required environment variable %s is not set", key)
	}
	return v, nil
}

func (l *DefaultLoader) GetWithDefault(key, defaultValue string) string {
	if v := l.Get(key); v != "" {
		return v
	}
	return defaultValue
}

func (l *DefaultLoader) GetBool(key string, def bool) bool {
	b, err := strconv.ParseBool(l.Get(key))
	if err != nil {
		return def
	}
	return b
}

func (l *DefaultLoader) GetInt(key string, def int) int {
	n, err := strconv.Atoi(l.Get(key))
	if err != nil {
		return def
	}
	return n
}

func (l *DefaultLoader) Set(key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.vars[key] = value
	return os.Setenv(key, value)
}

func (l *DefaultLoader) All() map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	result := make(map[string]string, len(l.vars))
	for k, v := range l.vars {
		result[k] = v
	}
	return result
}

// Settings are the environment defaults of assertctl. Command-line
// flags override them.
type Settings struct {
	NoColor   bool
	LogFile   string
	LogLevel  string
	ReportDir string
	Parallel  int

	// InputToken authenticates URL input fetches.
	InputToken string
}

// ReadSettings collects Settings from l.
func ReadSettings(l Loader) Settings {
	return Settings{
		NoColor:    l.GetBool(KeyNoColor, false) || l.Get("NO_COLOR") != "",
		LogFile:    l.Get(KeyLogFile),
		LogLevel:   l.GetWithDefault(KeyLogLevel, "info"),
		ReportDir:  l.Get(KeyReportDir),
		Parallel:   l.GetInt(KeyParallel, 4),
		InputToken: l.Get(KeyInputToken),
	}
}
