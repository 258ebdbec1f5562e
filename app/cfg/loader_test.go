package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestValidateRequiresScrapeService(t *testing.T) {
	cfg := &Cfg{
		ScrapeToken: "token",
	}

	if err := validate(cfg); err == nil {
		t.Error("Expected error when scrape URL is missing")
	}

	cfg = &Cfg{
		ScrapeURL: "https://browserless.example.com/content",
	}

	if err := validate(cfg); err == nil {
		t.Error("Expected error when scrape token is missing")
	}
}

func TestValidateDryRunNeedsNoBlueskyCredentials(t *testing.T) {
	cfg := &Cfg{
		ScrapeURL:   "https://browserless.example.com/content",
		ScrapeToken: "token",
	}

	if err := validate(cfg); err != nil {
		t.Errorf("Expected dry run config to validate, got: %v", err)
	}
}

func TestValidateLivePostingRequiresCredentials(t *testing.T) {
	cfg := &Cfg{
		ScrapeURL:   "https://browserless.example.com/content",
		ScrapeToken: "token",
		Post:        true,
	}

	if err := validate(cfg); err == nil {
		t.Error("Expected error when posting without Bluesky credentials")
	}

	cfg.BlueskyHandle = "example.bsky.social"
	if err := validate(cfg); err == nil {
		t.Error("Expected error when posting without a Bluesky password")
	}

	cfg.BlueskyPassword = "app-password"
	if err := validate(cfg); err != nil {
		t.Errorf("Expected live config to validate, got: %v", err)
	}
}
