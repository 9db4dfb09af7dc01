package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "build", false},
		{"numeric", "42", false},
		{"with spaces", "run unit tests", false},
		{"unicode", "größe", false},
		{"path-like", "pkg/graph", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("a", MaxNodeNameLength+1), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"tab", "foo\tbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateNodeName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "deps.txt", false},
		{"nested", "testdata/chains.json", false},
		{"absolute", "/tmp/out.svg", false},
		{"parent", "../shared/sequences.toml", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	if err := ValidateFormat("svg", "json", "csv", "dot", "svg"); err != nil {
		t.Errorf("ValidateFormat(svg) = %v, want nil", err)
	}

	err := ValidateFormat("png", "json", "svg")
	if !Is(err, ErrCodeInvalidFormat) {
		t.Fatalf("ValidateFormat(png) = %v, want %s", err, ErrCodeInvalidFormat)
	}
	if !strings.Contains(err.Error(), "json, svg") {
		t.Errorf("error %q should list allowed formats", err)
	}
}

func TestValidateStruct(t *testing.T) {
	type window struct {
		From   int    `json:"from"`
		To     int    `json:"to" validate:"gtefield=From"`
		Format string `json:"format" validate:"required,oneof=json csv"`
	}

	if err := ValidateStruct(window{From: -1, To: 2, Format: "json"}); err != nil {
		t.Errorf("ValidateStruct(valid) = %v, want nil", err)
	}

	err := ValidateStruct(window{From: 2, To: 1, Format: "yaml"})
	if !Is(err, ErrCodeInvalidValue) {
		t.Fatalf("ValidateStruct(invalid) = %v, want %s", err, ErrCodeInvalidValue)
	}
	msg := UserMessage(err)
	for _, want := range []string{"to: must not be less than From", "format: must be one of: json csv"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q should contain %q", msg, want)
		}
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidValue,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeCyclicGraph,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
