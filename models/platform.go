package models

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// PlatformConfig describes how summaries are shaped for one target platform.
type PlatformConfig struct {
	// MaxChars is the hard character limit for posts; 0 means no limit.
	MaxChars int

	// Tone steers the summarizer's instructions for this platform.
	Tone string

	DisplayName string
}

// platformConfigs is the fixed table of supported targets. "default" produces
// a plain summary with no posting target.
var platformConfigs = map[string]PlatformConfig{
	"twitter": {
		MaxChars:    280,
		Tone:        "casual, engaging, use hashtags",
		DisplayName: "Twitter/X",
	},
	"linkedin": {
		MaxChars:    3000,
		Tone:        "professional, structured, use bullet points",
		DisplayName: "LinkedIn",
	},
	"default": {
		MaxChars:    0,
		Tone:        "informative, concise",
		DisplayName: "Default",
	},
}

// GetPlatformConfig returns the configuration for the given platform name.
func GetPlatformConfig(platform string) (PlatformConfig, error) {
	config, ok := platformConfigs[platform]
	if !ok {
		return PlatformConfig{}, fmt.Errorf("unsupported platform %q, supported: %s",
			platform, strings.Join(SupportedPlatforms(), ", "))
	}
	return config, nil
}

// SupportedPlatforms lists the known platform names in stable order.
func SupportedPlatforms() []string {
	names := make([]string, 0, len(platformConfigs))
	for name := range platformConfigs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CharacterCount counts characters the way the platforms do: one per rune,
// so an emoji counts as a single character.
func CharacterCount(text string) int {
	return utf8.RuneCountInString(text)
}

// ValidateSummaryLength reports whether text fits the platform's limit.
// Unknown platforms fail validation.
func ValidateSummaryLength(text, platform string) bool {
	config, err := GetPlatformConfig(platform)
	if err != nil {
		return false
	}
	if config.MaxChars == 0 {
		return true
	}
	return CharacterCount(text) <= config.MaxChars
}

// FormatLengthError builds the user-facing message for text that exceeds the
// platform limit. Returns "" for platforms without a limit.
func FormatLengthError(text, platform string) string {
	config, err := GetPlatformConfig(platform)
	if err != nil || config.MaxChars == 0 {
		return ""
	}

	current := CharacterCount(text)
	excess := current - config.MaxChars
	return fmt.Sprintf("Summary exceeds %s limit by %d characters. Current: %d, Max: %d",
		config.DisplayName, excess, current, config.MaxChars)
}
