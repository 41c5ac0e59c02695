package errors

import (
	"strings"
	"testing"
)

func TestValidateChartName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"sales", false},
		{"sales-by-month", false},
		{"q4_2025", false},
		{"", true},
		{"Sales", true},
		{"-sales", true},
		{"sales/../x", true},
		{"sales chart", true},
		{strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateChartName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChartName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateChartName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	if err := ValidateKey(""); err != nil {
		t.Errorf("empty key should be valid: %v", err)
	}
	if err := ValidateKey("store:42"); err != nil {
		t.Errorf("ValidateKey() error: %v", err)
	}
	if err := ValidateKey("bad\nkey"); err == nil {
		t.Error("key with newline should be rejected")
	}
	if err := ValidateKey(strings.Repeat("k", 257)); err == nil {
		t.Error("overlong key should be rejected")
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"#FF0000", false},
		{"#f00", false},
		{"#ff000080", false},
		{"rgba(0, 0, 0, 0.5)", false},
		{"hsl(120, 100%, 50%)", false},
		{"steelblue", false},
		{"", true},
		{"#GG0000", true},
		{"#12345", true},
		{"rgb(0,0,0", true},
		{"red;", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://example.com/data", false},
		{"http://localhost:8080/api", false},
		{"/api/charts/sales/data", false},
		{"", true},
		{"//evil.example.com", true},
		{"javascript:alert(1)", true},
		{"ftp://example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
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
		{"simple", "charts/sales.toml", false},
		{"absolute", "/etc/apexkit/sales.toml", false},
		{"empty", "", true},
		{"null byte", "sales\x00.toml", true},
		{"too long", strings.Repeat("a", 501), true},
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

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidOption,
		ErrCodeInvalidRefresh,
		ErrCodeSeriesMismatch,
		ErrCodeInvalidDefinition,
		ErrCodeInvalidName,
		ErrCodeInvalidFormat,
		ErrCodeInvalidConfig,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeChartNotFound,
		ErrCodeFileNotFound,
		ErrCodeDuplicate,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
