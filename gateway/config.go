package main

import (
	"encoding/json"
	"io/ioutil"

	"github.com/brigadecore/brigade-foundations/file"
	"github.com/brigadecore/brigade-foundations/http"
	"github.com/brigadecore/brigade-foundations/os"
	"github.com/pkg/errors"

	libSlack "github.com/bugzooka/slack-summary-gateway/internal/slack"
)

// slackClientConfig populates Slack credentials from environment variables.
// The bot token authorizes Web API calls; the app-level token authorizes the
// Socket Mode connection.
func slackClientConfig() (string, string, error) {
	botToken, err := os.GetRequiredEnvVar("SLACK_BOT_TOKEN")
	if err != nil {
		return botToken, "", err
	}
	appToken, err := os.GetRequiredEnvVar("SLACK_APP_TOKEN")
	return botToken, appToken, err
}

// productConfigs populates per-product configuration from the JSON file named
// by the PRODUCTS_PATH environment variable.
func productConfigs() ([]libSlack.ProductConfig, error) {
	productsPath, err := os.GetRequiredEnvVar("PRODUCTS_PATH")
	if err != nil {
		return nil, err
	}
	var exists bool
	if exists, err = file.Exists(productsPath); err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.Errorf("file %s does not exist", productsPath)
	}
	productBytes, err := ioutil.ReadFile(productsPath)
	if err != nil {
		return nil, err
	}
	products := []libSlack.ProductConfig{}
	err = json.Unmarshal(productBytes, &products)
	return products, err
}

// defaultLookbackSeconds populates the lookback window used when a command
// doesn't specify one.
func defaultLookbackSeconds() (int, error) {
	return os.GetIntFromEnvVar("SUMMARY_LOOKBACK_SECONDS", 3600)
}

// serverConfig populates configuration for the HTTP/S server from environment
// variables.
func serverConfig() (http.ServerConfig, error) {
	config := http.ServerConfig{}
	var err error
	config.Port, err = os.GetIntFromEnvVar("PORT", 8080)
	if err != nil {
		return config, err
	}
	config.TLSEnabled, err = os.GetBoolFromEnvVar("TLS_ENABLED", false)
	if err != nil {
		return config, err
	}
	if config.TLSEnabled {
		config.TLSCertPath, err = os.GetRequiredEnvVar("TLS_CERT_PATH")
		if err != nil {
			return config, err
		}
		config.TLSKeyPath, err = os.GetRequiredEnvVar("TLS_KEY_PATH")
		if err != nil {
			return config, err
		}
	}
	return config, nil
}
