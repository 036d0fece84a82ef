package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Contract address, entrypoints and schemas are constants of the coin package, not configuration.
type Config struct {
	Port                    string `envconfig:"PORT" default:"8080"`
	NodeGatewayURL          string `envconfig:"NODE_GATEWAY_URL" required:"true"`
	NodeTimeoutSeconds      int    `envconfig:"NODE_TIMEOUT_SECONDS" default:"30"`
	FinalizationPollSeconds int    `envconfig:"FINALIZATION_POLL_SECONDS" default:"2"`
	PriceEnabled            bool   `envconfig:"PRICE_ENABLED" default:"true"`
	PriceCurrency           string `envconfig:"PRICE_CURRENCY" default:"usd"`
	LogLevel                string `envconfig:"LOG_LEVEL" default:"info"`
	LogDevelopment          bool   `envconfig:"LOG_DEVELOPMENT" default:"false"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment take precedence.
func Init() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	cfg = c
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetNodeGatewayURL returns the node gateway base URL
func GetNodeGatewayURL() string {
	return Get().NodeGatewayURL
}

// GetNodeTimeout returns the HTTP timeout for gateway requests
func GetNodeTimeout() time.Duration {
	return time.Duration(Get().NodeTimeoutSeconds) * time.Second
}

// GetFinalizationPollInterval returns how often transaction status is polled
func GetFinalizationPollInterval() time.Duration {
	return time.Duration(Get().FinalizationPollSeconds) * time.Second
}

// PromptForPassword prompts for a password in the terminal without echo.
// With confirm set the password is asked twice and both entries must match.
// Caller must zero the returned slice after use.
func PromptForPassword(prompt string, confirm bool) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the tool interactively to enter password")
	}

	password, err := readPassword(prompt)
	if err != nil {
		return nil, err
	}
	if len(password) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	if confirm {
		again, err := readPassword("Repeat password: ")
		if err != nil {
			clear(password)
			return nil, err
		}
		defer clear(again)
		if string(again) != string(password) {
			clear(password)
			return nil, errors.New("passwords do not match")
		}
	}
	return password, nil
}

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return raw, nil
}
