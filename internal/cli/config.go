package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Player    string
	StateFile string
	Output    string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("ARCADE_SERVER", "http://localhost:8080"),
		Player:    os.Getenv("ARCADE_PLAYER"),
		StateFile: getEnvOrDefault("ARCADE_STATE_FILE", defaultStateFile()),
		Output:    "text",
	}
}

// LoadMessage loads the last rendered message from the state file, so
// a control on it can be activated in a later invocation
func (c *Config) LoadMessage() (*Message, error) {
	data, err := os.ReadFile(c.StateFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SaveMessage stores a rendered message as the current game message
func (c *Config) SaveMessage(msg Message) error {
	dir := filepath.Dir(c.StateFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return os.WriteFile(c.StateFile, data, 0600)
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pocketarcade/message.json"
	}
	return filepath.Join(home, ".pocketarcade", "message.json")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
