// Package config resolves client and server settings from environment
// variables. Command-line flags in cmd/ override these defaults.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Environment variable names.
const (
	APIURLEnv      = "MERCARI_API_URL"
	ImageHostEnv   = "MERCARI_IMAGE_HOST"
	FrontendURLEnv = "FRONTEND_URL"
	LogFileEnv     = "MERCARI_LOG"

	PortEnv      = "PORT"
	DBPathEnv    = "DB_PATH"
	ImagesDirEnv = "IMAGES_DIR"
	FrontURLEnv  = "FRONT_URL"
)

// Defaults match the local development setup: API and images on :9000,
// frontend assets on :3000.
const (
	DefaultAPIURL      = "http://localhost:9000"
	DefaultImageHost   = "http://localhost:9000"
	DefaultFrontendURL = "http://localhost:3000"
	DefaultPort        = "9000"
	DefaultDBPath      = "./db/mercari.sqlite3"
	DefaultImagesDir   = "./images"

	// PlaceholderPath is the fallback image served by the frontend.
	PlaceholderPath = "/logo192.png"
)

// Client holds terminal client settings.
type Client struct {
	APIURL      string
	ImageHost   string
	FrontendURL string
	LogFile     string
	Debug       bool
}

// Server holds items API settings.
type Server struct {
	Port      string
	DBPath    string
	ImagesDir string
	FrontURL  string
}

// LoadClient reads client settings from the environment.
func LoadClient() Client {
	return Client{
		APIURL:      GetEnv(APIURLEnv, DefaultAPIURL),
		ImageHost:   GetEnv(ImageHostEnv, DefaultImageHost),
		FrontendURL: GetEnv(FrontendURLEnv, DefaultFrontendURL),
		LogFile:     os.Getenv(LogFileEnv),
	}
}

// LoadServer reads server settings from the environment.
func LoadServer() Server {
	return Server{
		Port:      GetEnv(PortEnv, DefaultPort),
		DBPath:    GetEnv(DBPathEnv, DefaultDBPath),
		ImagesDir: GetEnv(ImagesDirEnv, DefaultImagesDir),
		FrontURL:  GetEnv(FrontURLEnv, DefaultFrontendURL),
	}
}

// Validate checks that every URL setting is absolute http(s).
func (c Client) Validate() error {
	for name, v := range map[string]string{
		"api url":      c.APIURL,
		"image host":   c.ImageHost,
		"frontend url": c.FrontendURL,
	} {
		if err := checkURL(v); err != nil {
			return fmt.Errorf("%s %q: %w", name, v, err)
		}
	}
	return nil
}

// PlaceholderURL is the fallback image shown when an item image fails to load.
func (c Client) PlaceholderURL() string {
	return strings.TrimRight(c.FrontendURL, "/") + PlaceholderPath
}

// GetEnv returns the value of key, or fallback when unset or empty.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
