package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"pollbase/internal/domain"
)

// Result holds a sanitized string value and any validation errors.
// When Errors is non-empty the Sanitized value must not be persisted.
type Result struct {
	Sanitized string
	Errors    []string
}

// OptionsResult holds sanitized poll options and any validation errors.
type OptionsResult struct {
	Sanitized []string
	Errors    []string
}

// Valid reports whether the value passed every check.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

// Valid reports whether every option passed every check.
func (r OptionsResult) Valid() bool { return len(r.Errors) == 0 }

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const maxEmailLen = 254

// ValidatePollQuestion sanitizes and validates a poll question.
func ValidatePollQuestion(question string) Result {
	sanitized := strings.TrimSpace(SanitizeText(question))

	var errs []string
	if sanitized == "" {
		errs = append(errs, "Question is required")
	} else if len(sanitized) < domain.MinQuestionLen {
		errs = append(errs, fmt.Sprintf("Question must be at least %d characters", domain.MinQuestionLen))
	} else if len(sanitized) > domain.MaxQuestionLen {
		errs = append(errs, fmt.Sprintf("Question must be at most %d characters", domain.MaxQuestionLen))
	}

	return Result{Sanitized: sanitized, Errors: errs}
}

// ValidatePollOptions sanitizes and validates a poll's option list. A list
// outside the allowed count short-circuits with a single error and no
// sanitized options. Otherwise each option is sanitized and checked;
// failing options are reported with their 1-based position and excluded
// from the sanitized list. Duplicates among the surviving options add one
// more error.
func ValidatePollOptions(options []string) OptionsResult {
	if len(options) < domain.MinPollOptions || len(options) > domain.MaxPollOptions {
		return OptionsResult{
			Sanitized: []string{},
			Errors: []string{fmt.Sprintf("Polls must have between %d and %d options",
				domain.MinPollOptions, domain.MaxPollOptions)},
		}
	}

	sanitized := make([]string, 0, len(options))
	var errs []string

	for i, opt := range options {
		clean := strings.TrimSpace(SanitizeText(opt))
		if clean == "" {
			errs = append(errs, fmt.Sprintf("Option %d is empty", i+1))
			continue
		}
		if len(clean) > domain.MaxOptionLen {
			errs = append(errs, fmt.Sprintf("Option %d exceeds %d characters", i+1, domain.MaxOptionLen))
			continue
		}
		sanitized = append(sanitized, clean)
	}

	seen := make(map[string]bool, len(sanitized))
	for _, opt := range sanitized {
		if seen[opt] {
			errs = append(errs, "Options must be unique")
			break
		}
		seen[opt] = true
	}

	return OptionsResult{Sanitized: sanitized, Errors: errs}
}

// ValidateEmail lowercases, trims, and shape-checks an email address.
func ValidateEmail(email string) Result {
	sanitized := strings.ToLower(strings.TrimSpace(email))

	var errs []string
	if sanitized == "" {
		errs = append(errs, "Email is required")
	} else if !emailPattern.MatchString(sanitized) {
		errs = append(errs, "Email address is not valid")
	} else if len(sanitized) > maxEmailLen {
		errs = append(errs, fmt.Sprintf("Email must be at most %d characters", maxEmailLen))
	}

	return Result{Sanitized: sanitized, Errors: errs}
}

// ValidatePassword checks password rules. Passwords are never sanitized
// since they are not display values. The character-class rules run as a
// sequential chain, so only the first violated rule is reported; callers
// see length problems before composition problems.
func ValidatePassword(password string) Result {
	var errs []string

	if password == "" {
		errs = append(errs, "Password is required")
	} else if len(password) < 8 {
		errs = append(errs, "Password must be at least 8 characters")
	} else if len(password) > 128 {
		errs = append(errs, "Password must be at most 128 characters")
	} else if !strings.ContainsFunc(password, unicode.IsLower) {
		errs = append(errs, "Password must contain a lowercase letter")
	} else if !strings.ContainsFunc(password, unicode.IsUpper) {
		errs = append(errs, "Password must contain an uppercase letter")
	} else if !strings.ContainsFunc(password, unicode.IsDigit) {
		errs = append(errs, "Password must contain a digit")
	}

	return Result{Sanitized: password, Errors: errs}
}

// ValidateName sanitizes and validates a display name. Only letters,
// spaces, hyphens, and apostrophes are accepted. The character rules run
// on the tag-stripped text before entity escaping, so an apostrophe in a
// name is still valid even though the sanitized form escapes it.
func ValidateName(name string) Result {
	plain := strings.TrimSpace(tagPattern.ReplaceAllString(name, ""))
	sanitized := strings.TrimSpace(SanitizeText(name))

	var errs []string
	switch {
	case len([]rune(plain)) < 2:
		errs = append(errs, "Name must be at least 2 characters")
	case len([]rune(plain)) > 100:
		errs = append(errs, "Name must be at most 100 characters")
	default:
		for _, r := range plain {
			if !unicode.IsLetter(r) && r != ' ' && r != '-' && r != '\'' {
				errs = append(errs, "Name may only contain letters, spaces, hyphens, and apostrophes")
				break
			}
		}
	}

	return Result{Sanitized: sanitized, Errors: errs}
}
