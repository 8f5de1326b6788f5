package config

import (
	"testing"
)

func TestParseJWKSEndpoints(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: map[string]string{},
		},
		{
			name:  "single pair",
			input: "https://auth.frostline.ph=https://auth.frostline.ph/.well-known/jwks.json",
			expected: map[string]string{
				"https://auth.frostline.ph": "https://auth.frostline.ph/.well-known/jwks.json",
			},
		},
		{
			name:  "multiple pairs with whitespace",
			input: "a=1, b=2",
			expected: map[string]string{
				"a": "1",
				"b": "2",
			},
		},
		{
			name:     "malformed pair skipped",
			input:    "justakey",
			expected: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseJWKSEndpoints(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d entries, want %d", len(got), len(tt.expected))
			}
			for k, v := range tt.expected {
				if got[k] != v {
					t.Errorf("endpoint %q = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestDatabaseConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "frostline", Password: "pw",
		Database: "frostline_admin", SSLMode: "disable",
	}
	want := "host=db port=5432 user=frostline password=pw dbname=frostline_admin sslmode=disable"
	if got := cfg.ConnectionString(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAIConfigIsAvailable(t *testing.T) {
	tests := []struct {
		name     string
		cfg      AIConfig
		expected bool
	}{
		{"unconfigured", AIConfig{}, false},
		{"openai needs base url", AIConfig{Provider: "openai", Model: "gpt-4o"}, false},
		{"openai complete", AIConfig{Provider: "openai", Model: "gpt-4o", BaseURL: "https://api.openai.com/v1"}, true},
		{"anthropic needs only model", AIConfig{Provider: "anthropic", Model: "claude-sonnet-4-5"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.IsAvailable(); got != tt.expected {
				t.Errorf("IsAvailable() = %v, want %v", got, tt.expected)
			}
		})
	}
}
