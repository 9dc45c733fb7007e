package models

import (
	"strings"
	"testing"
)

func TestGetPlatformConfig(t *testing.T) {
	config, err := GetPlatformConfig("twitter")
	if err != nil {
		t.Fatalf("Failed to get twitter config: %v", err)
	}
	if config.MaxChars != 280 {
		t.Errorf("Expected twitter limit 280, got %d", config.MaxChars)
	}

	config, err = GetPlatformConfig("linkedin")
	if err != nil {
		t.Fatalf("Failed to get linkedin config: %v", err)
	}
	if config.MaxChars != 3000 {
		t.Errorf("Expected linkedin limit 3000, got %d", config.MaxChars)
	}

	// Default platform has no limit
	config, err = GetPlatformConfig("default")
	if err != nil {
		t.Fatalf("Failed to get default config: %v", err)
	}
	if config.MaxChars != 0 {
		t.Errorf("Expected no limit for default, got %d", config.MaxChars)
	}

	// Unknown platform is an error
	_, err = GetPlatformConfig("tiktok")
	if err == nil {
		t.Error("Expected error for unsupported platform")
	}
	if !strings.Contains(err.Error(), "unsupported platform") {
		t.Errorf("Expected unsupported platform error, got: %v", err)
	}
}

func TestValidateSummaryLength(t *testing.T) {
	// Exactly at the limit passes
	if !ValidateSummaryLength(strings.Repeat("A", 280), "twitter") {
		t.Error("Expected 280 chars to pass twitter validation")
	}

	// One over fails
	if ValidateSummaryLength(strings.Repeat("A", 281), "twitter") {
		t.Error("Expected 281 chars to fail twitter validation")
	}

	// Default platform accepts any length
	if !ValidateSummaryLength(strings.Repeat("A", 10000), "default") {
		t.Error("Expected default platform to accept any length")
	}

	// Empty string passes
	if !ValidateSummaryLength("", "twitter") {
		t.Error("Expected empty string to pass validation")
	}
}

func TestCharacterCount(t *testing.T) {
	if got := CharacterCount("hello"); got != 5 {
		t.Errorf("Expected 5, got %d", got)
	}
	if got := CharacterCount(""); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
	// Emoji counts as one character, not its byte length
	if got := CharacterCount("🐦"); got != 1 {
		t.Errorf("Expected 1 for emoji, got %d", got)
	}
}

func TestFormatLengthError(t *testing.T) {
	text := strings.Repeat("A", 290) // 10 over
	msg := FormatLengthError(text, "twitter")

	for _, want := range []string{"10 characters", "290", "280"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected error message to contain %q, got: %s", want, msg)
		}
	}

	// No message for platforms without a limit
	if msg := FormatLengthError("any text", "default"); msg != "" {
		t.Errorf("Expected empty message for default platform, got: %s", msg)
	}
}

func TestSummarizeFormValidation(t *testing.T) {
	validForm := SummarizeForm{YouTubeURL: "https://youtu.be/u47GtXwePms", Platform: "twitter"}
	if errors := validForm.Validate(); len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}

	invalidForm := SummarizeForm{YouTubeURL: "  ", Platform: "tiktok"}
	if errors := invalidForm.Validate(); len(errors) != 2 {
		t.Errorf("Expected 2 errors for invalid form, got: %v", errors)
	}
}
