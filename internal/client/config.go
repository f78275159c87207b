package client

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
)

const (
	// DefaultEndpoint is used when no configuration file exists.
	DefaultEndpoint = "http://localhost:5000"

	configfile = ".whisperwall"
)

// A Config holds client's configuration.
type Config struct {
	Endpoint string `json:"endpoint"`
}

// Remove removes the configuration file from the current directory.
func Remove() error {
	return os.Remove(configfile)
}

// Load gets the configuration from the current folder according to `configfile` const.
// A missing file loads as the default configuration.
func Load() (Config, error) {
	cfg := Config{Endpoint: DefaultEndpoint}

	payload, err := os.ReadFile(configfile)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(err, "could not read configuration file")
	}

	err = json.Unmarshal(payload, &cfg)
	return cfg, errors.Wrap(err, "could not parse configuration")
}

// Save stores the configuration in the current folder according to `configfile` const.
func Save(cfg Config) error {
	payload, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not serialize configuration")
	}

	err = os.WriteFile(configfile, payload, 0600)
	return errors.Wrap(err, "could not store configuration")
}

// Configure prompts for the server endpoint and stores it in the current directory.
func Configure() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	rl, err := readline.New(fmt.Sprintf("endpoint [%s]: ", cfg.Endpoint))
	if err != nil {
		return errors.Wrap(err, "could not read endpoint from stdin")
	}
	defer rl.Close()

	line, err := rl.Readline()
	if err != nil {
		return errors.Wrap(err, "could not read endpoint from stdin")
	}
	if line = strings.TrimSpace(line); line != "" {
		cfg.Endpoint = strings.TrimRight(line, "/")
	}

	fmt.Println("Storing configuration in current directory as " + configfile)
	return Save(cfg)
}
