package validator

import "nodedex/internal/domain"

// Profiles tune verbosity, never validity. Errors always pass through
// unchanged; only warnings, suggestions and fix hints are filtered:
//
//	minimal     security warnings only, no suggestions, terse
//	runtime     adds deprecations and operational advisories, terse
//	ai-friendly adds usage-pattern warnings, suggestions and fix hints
//	strict      everything, including unknown-property notices
func applyProfile(res domain.ValidationResult, profile domain.ValidationProfile) domain.ValidationResult {
	kept := res.Warnings[:0:0]
	for _, w := range res.Warnings {
		if !warningVisible(w.Type, profile) {
			continue
		}
		if terse(profile) {
			w.Fix = ""
		}
		kept = append(kept, w)
	}
	res.Warnings = kept
	if terse(profile) {
		res.Suggestions = nil
	}
	return res
}

func warningVisible(t domain.FindingType, profile domain.ValidationProfile) bool {
	switch t {
	case domain.FindingSecurity:
		return true
	case domain.FindingDeprecated:
		return profile != domain.ProfileMinimal
	case domain.FindingBestPractice:
		return profile == domain.ProfileAIFriendly || profile == domain.ProfileStrict
	case domain.FindingUnknownKey:
		return profile == domain.ProfileStrict
	default:
		return true
	}
}

func terse(profile domain.ValidationProfile) bool {
	return profile == domain.ProfileMinimal || profile == domain.ProfileRuntime
}
