package channel

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeChannelFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".yml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestConfigCacheLoadValidConfig(t *testing.T) {
	tempDir := t.TempDir()

	writeChannelFile(t, tempDir, "straits_times", `
title: "The Straits Times"
type: "opml"
catalog_url: "https://www.straitstimes.com/rss_breaking_news.opml"

settings:
  enabled: true
  timeout: 15
`)

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err != nil {
		t.Fatal(err)
	}

	if configCache.GetConfigCount() != 1 {
		t.Errorf("Expected 1 config, got %d", configCache.GetConfigCount())
	}

	config, err := configCache.GetConfig("straits_times")
	if err != nil {
		t.Fatal(err)
	}

	if config.Name != "straits_times" {
		t.Errorf("Expected name 'straits_times', got '%s'", config.Name)
	}
	if config.Title != "The Straits Times" {
		t.Errorf("Expected title 'The Straits Times', got '%s'", config.Title)
	}
	if config.CatalogURL != "https://www.straitstimes.com/rss_breaking_news.opml" {
		t.Errorf("Unexpected catalog URL '%s'", config.CatalogURL)
	}
	if !config.Settings.Enabled {
		t.Error("Expected channel to be enabled")
	}
	if config.Settings.Timeout != 15 {
		t.Errorf("Expected timeout 15, got %d", config.Settings.Timeout)
	}
}

func TestConfigCacheLoadConfigWithDefaults(t *testing.T) {
	tempDir := t.TempDir()

	writeChannelFile(t, tempDir, "minimal", `catalog_url: "https://example.com/catalog.opml"`)

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err != nil {
		t.Fatal(err)
	}

	config, err := configCache.GetConfig("minimal")
	if err != nil {
		t.Fatal(err)
	}

	if config.Type != TypeOPML {
		t.Errorf("Expected default type '%s', got '%s'", TypeOPML, config.Type)
	}
	if config.Title != "minimal" {
		t.Errorf("Expected title to fall back to name, got '%s'", config.Title)
	}
	if config.Settings.Timeout != 30 {
		t.Errorf("Expected default timeout 30, got %d", config.Settings.Timeout)
	}
	if config.Settings.Enabled {
		t.Error("Expected channel to be disabled by default")
	}
}

func TestConfigCacheInvalidConfigs(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"missing catalog url", `title: "No catalog"`, "catalog URL is required"},
		{"non http catalog url", `catalog_url: "ftp://example.com/catalog.opml"`, "must be http or https"},
		{"unsupported type", "type: \"atom\"\ncatalog_url: \"https://example.com/c.opml\"", "unsupported channel type"},
		{"negative timeout", "catalog_url: \"https://example.com/c.opml\"\nsettings:\n  timeout: -5", "timeout must be non-negative"},
		{"broken yaml", "catalog_url: [", "failed to parse YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			writeChannelFile(t, tempDir, "broken", tt.content)

			err := NewConfigCache(tempDir).Run()
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("Expected error containing '%s', got '%v'", tt.errText, err)
			}
		})
	}
}

func TestConfigCacheMissingDirectory(t *testing.T) {
	configCache := NewConfigCache(filepath.Join(t.TempDir(), "absent"))
	if err := configCache.Run(); err != nil {
		t.Fatalf("Expected no error for missing directory, got %v", err)
	}
	if configCache.GetConfigCount() != 0 {
		t.Errorf("Expected 0 configs, got %d", configCache.GetConfigCount())
	}
}

func TestConfigCacheEnabledConfigs(t *testing.T) {
	tempDir := t.TempDir()

	writeChannelFile(t, tempDir, "b_enabled", "catalog_url: \"https://b.example.com/c.opml\"\nsettings:\n  enabled: true")
	writeChannelFile(t, tempDir, "a_enabled", "catalog_url: \"https://a.example.com/c.opml\"\nsettings:\n  enabled: true")
	writeChannelFile(t, tempDir, "c_disabled", "catalog_url: \"https://c.example.com/c.opml\"\nsettings:\n  enabled: false")

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err != nil {
		t.Fatal(err)
	}

	if len(configCache.GetConfigs()) != 3 {
		t.Fatalf("Expected 3 configs, got %d", len(configCache.GetConfigs()))
	}

	enabled := configCache.GetEnabledConfigs()
	if len(enabled) != 2 {
		t.Fatalf("Expected 2 enabled configs, got %d", len(enabled))
	}
	if enabled[0].Name != "a_enabled" || enabled[1].Name != "b_enabled" {
		t.Errorf("Expected configs ordered by name, got %s, %s", enabled[0].Name, enabled[1].Name)
	}
}

func TestConfigCacheGetUnknownConfig(t *testing.T) {
	_, err := NewConfigCache(t.TempDir()).GetConfig("nope")
	if !errors.Is(err, ErrChannelNotFound) {
		t.Errorf("Expected ErrChannelNotFound, got %v", err)
	}
}
