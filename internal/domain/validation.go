package domain

import "fmt"

// ValidationMode controls how deep a validation run goes.
type ValidationMode string

const (
	// ModeMinimal checks required-field presence only.
	ModeMinimal ValidationMode = "minimal"
	// ModeOperation scopes checks and guidance to the active
	// resource/operation branch.
	ModeOperation ValidationMode = "operation"
	// ModeFull adds type, shape and cross-field checks.
	ModeFull ValidationMode = "full"
)

// ValidationProfile controls which advisory categories are surfaced and how
// verbose the phrasing is. Errors always surface; profiles never change
// validity.
type ValidationProfile string

const (
	ProfileMinimal    ValidationProfile = "minimal"
	ProfileRuntime    ValidationProfile = "runtime"
	ProfileAIFriendly ValidationProfile = "ai-friendly"
	ProfileStrict     ValidationProfile = "strict"
)

// ParseMode validates a mode string, defaulting to full when empty.
func ParseMode(s string) (ValidationMode, error) {
	switch ValidationMode(s) {
	case "":
		return ModeFull, nil
	case ModeMinimal, ModeOperation, ModeFull:
		return ValidationMode(s), nil
	}
	return "", fmt.Errorf("unknown validation mode %q", s)
}

// ParseProfile validates a profile string, defaulting to ai-friendly when
// empty.
func ParseProfile(s string) (ValidationProfile, error) {
	switch ValidationProfile(s) {
	case "":
		return ProfileAIFriendly, nil
	case ProfileMinimal, ProfileRuntime, ProfileAIFriendly, ProfileStrict:
		return ValidationProfile(s), nil
	}
	return "", fmt.Errorf("unknown validation profile %q", s)
}

// FindingType classifies one diagnostic.
type FindingType string

const (
	FindingRequired     FindingType = "required"
	FindingTypeMismatch FindingType = "type_mismatch"
	FindingInvalidValue FindingType = "invalid_value"
	FindingDeprecated   FindingType = "deprecated"
	FindingSecurity     FindingType = "security"
	FindingBestPractice FindingType = "best_practice"
	FindingUnknownKey   FindingType = "unknown_property"
)

// Finding is one diagnostic. Severity is implied by the result list it lands
// in (errors vs warnings).
type Finding struct {
	Type     FindingType `json:"type"`
	Property string      `json:"property"`
	Message  string      `json:"message"`
	Fix      string      `json:"fix,omitempty"`
}

// ValidationResult is the full validation report. Valid is true exactly when
// Errors is empty; warnings and suggestions never affect it.
type ValidationResult struct {
	Valid       bool      `json:"valid"`
	Errors      []Finding `json:"errors"`
	Warnings    []Finding `json:"warnings"`
	Suggestions []string  `json:"suggestions"`
}

// MinimalResult is the compact report of the required-fields-only entry
// point.
type MinimalResult struct {
	Valid                 bool     `json:"valid"`
	MissingRequiredFields []string `json:"missingRequiredFields"`
}
