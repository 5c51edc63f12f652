package validation

import (
	"strings"
	"testing"
)

func TestValidatePollQuestion(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantErr   string
	}{
		{
			name:      "valid question",
			input:     "What is your favorite language?",
			wantValid: true,
		},
		{
			name:      "empty yields required error not length error",
			input:     "   ",
			wantValid: false,
			wantErr:   "Question is required",
		},
		{
			name:      "too short after trimming",
			input:     "  Hi?  ",
			wantValid: false,
			wantErr:   "at least 5",
		},
		{
			name:      "too long",
			input:     strings.Repeat("a", 501),
			wantValid: false,
			wantErr:   "at most 500",
		},
		{
			name:      "markup stripped before length check",
			input:     "<b></b>",
			wantValid: false,
			wantErr:   "Question is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidatePollQuestion(tt.input)
			if res.Valid() != tt.wantValid {
				t.Fatalf("ValidatePollQuestion(%q) valid = %v, errors = %v", tt.input, res.Valid(), res.Errors)
			}
			if tt.wantErr != "" && !containsSubstring(res.Errors, tt.wantErr) {
				t.Errorf("errors %v missing %q", res.Errors, tt.wantErr)
			}
		})
	}
}

func TestValidatePollOptions(t *testing.T) {
	tests := []struct {
		name          string
		input         []string
		wantSanitized []string
		wantErrs      []string
	}{
		{
			name:          "two clean options",
			input:         []string{"Go", "Rust"},
			wantSanitized: []string{"Go", "Rust"},
		},
		{
			name:          "single option short-circuits with empty sanitized list",
			input:         []string{"A"},
			wantSanitized: []string{},
			wantErrs:      []string{"between 2 and 10"},
		},
		{
			name:          "too many options short-circuits",
			input:         []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"},
			wantSanitized: []string{},
			wantErrs:      []string{"between 2 and 10"},
		},
		{
			name:          "duplicate options reported once",
			input:         []string{"A", "A"},
			wantSanitized: []string{"A", "A"},
			wantErrs:      []string{"unique"},
		},
		{
			name:          "empty option reported with 1-based index and excluded",
			input:         []string{"", "B"},
			wantSanitized: []string{"B"},
			wantErrs:      []string{"Option 1 is empty"},
		},
		{
			name:          "over-length option reported and excluded",
			input:         []string{"ok", strings.Repeat("x", 201)},
			wantSanitized: []string{"ok"},
			wantErrs:      []string{"Option 2 exceeds 200"},
		},
		{
			name:          "options that sanitize to the same value collide",
			input:         []string{"<b>Go</b>", "Go"},
			wantSanitized: []string{"Go", "Go"},
			wantErrs:      []string{"unique"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidatePollOptions(tt.input)
			if len(res.Sanitized) != len(tt.wantSanitized) {
				t.Fatalf("sanitized = %v, want %v", res.Sanitized, tt.wantSanitized)
			}
			for i := range tt.wantSanitized {
				if res.Sanitized[i] != tt.wantSanitized[i] {
					t.Errorf("sanitized[%d] = %q, want %q", i, res.Sanitized[i], tt.wantSanitized[i])
				}
			}
			if len(res.Errors) != len(tt.wantErrs) {
				t.Fatalf("errors = %v, want %d errors matching %v", res.Errors, len(tt.wantErrs), tt.wantErrs)
			}
			for _, want := range tt.wantErrs {
				if !containsSubstring(res.Errors, want) {
					t.Errorf("errors %v missing %q", res.Errors, want)
				}
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantSanitized string
		wantValid     bool
	}{
		{
			name:          "lowercased and trimmed",
			input:         "  USER@Example.com ",
			wantSanitized: "user@example.com",
			wantValid:     true,
		},
		{
			name:      "empty",
			input:     "",
			wantValid: false,
		},
		{
			name:      "missing at sign",
			input:     "userexample.com",
			wantValid: false,
		},
		{
			name:      "no dot in domain",
			input:     "user@localhost",
			wantValid: false,
		},
		{
			name:      "embedded whitespace",
			input:     "us er@example.com",
			wantValid: false,
		},
		{
			name:      "over maximum length",
			input:     strings.Repeat("a", 250) + "@b.co",
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateEmail(tt.input)
			if res.Valid() != tt.wantValid {
				t.Fatalf("ValidateEmail(%q) valid = %v, errors = %v", tt.input, res.Valid(), res.Errors)
			}
			if tt.wantValid && res.Sanitized != tt.wantSanitized {
				t.Errorf("sanitized = %q, want %q", res.Sanitized, tt.wantSanitized)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantErr   string
	}{
		{
			name:      "valid password",
			input:     "Abcdefg1",
			wantValid: true,
		},
		{
			name:      "too short reports length error",
			input:     "short",
			wantValid: false,
			wantErr:   "at least 8",
		},
		{
			name:      "missing uppercase",
			input:     "abcdefg1",
			wantValid: false,
			wantErr:   "uppercase",
		},
		{
			name:      "missing digit",
			input:     "Abcdefgh",
			wantValid: false,
			wantErr:   "digit",
		},
		{
			name:      "empty",
			input:     "",
			wantValid: false,
			wantErr:   "required",
		},
		{
			name:      "too long",
			input:     "A1" + strings.Repeat("a", 127),
			wantValid: false,
			wantErr:   "at most 128",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidatePassword(tt.input)
			if res.Valid() != tt.wantValid {
				t.Fatalf("ValidatePassword valid = %v, errors = %v", res.Valid(), res.Errors)
			}
			if tt.wantErr != "" && !containsSubstring(res.Errors, tt.wantErr) {
				t.Errorf("errors %v missing %q", res.Errors, tt.wantErr)
			}
		})
	}
}

// The rules run as a sequential chain, so a password violating several
// rules still reports exactly one error. Kept as documented behavior.
func TestValidatePasswordReportsFirstViolationOnly(t *testing.T) {
	res := ValidatePassword("alllowercase")
	if len(res.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %v", res.Errors)
	}
	if !strings.Contains(res.Errors[0], "uppercase") {
		t.Errorf("expected the uppercase rule to fire first, got %q", res.Errors[0])
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
	}{
		{name: "simple name", input: "Ada Lovelace", wantValid: true},
		{name: "hyphen and apostrophe", input: "Anne-Marie O'Brien", wantValid: true},
		{name: "unicode letters", input: "José", wantValid: true},
		{name: "too short", input: "A", wantValid: false},
		{name: "digits rejected", input: "Ada99", wantValid: false},
		{name: "too long", input: strings.Repeat("a", 101), wantValid: false},
		{name: "tags stripped before checks", input: "<script>Ada</script>", wantValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateName(tt.input)
			if res.Valid() != tt.wantValid {
				t.Errorf("ValidateName(%q) valid = %v, errors = %v", tt.input, res.Valid(), res.Errors)
			}
		})
	}
}

func containsSubstring(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
