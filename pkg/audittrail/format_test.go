package audittrail

import (
	"strings"
	"testing"
	"time"
)

func TestFormatValue_NilIsNeverSilent(t *testing.T) {
	// Missing data must render as "N/A" in every type branch, never as an
	// empty string or "null".
	fields := []string{"total_amount", "delivery_date", "is_active", "status", "branches", "items", "stock_kg", "customer_name"}
	for _, field := range fields {
		if got := FormatValue(field, nil); got != "N/A" {
			t.Errorf("FormatValue(%q, nil) = %q, want N/A", field, got)
		}
	}
}

func TestFormatValue_Currency(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    any
		expected string
	}{
		{"float with grouping", "total_amount", 1234.5, "₱1,234.50"},
		{"integer", "unit_price", 250, "₱250.00"},
		{"numeric string", "discount_amount", "99.9", "₱99.90"},
		{"large value", "total_amount", 1234567.891, "₱1,234,567.89"},
		{"zero", "total_amount", 0, "₱0.00"},
		{"negative", "total_amount", -1500.0, "-₱1,500.00"},
		{"non-numeric falls back to raw", "total_amount", "not-a-number", "not-a-number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatValue(tt.field, tt.value)
			if got != tt.expected {
				t.Errorf("FormatValue(%q, %v) = %q, want %q", tt.field, tt.value, got, tt.expected)
			}
		})
	}
}

func TestFormatCurrency_NegativeGrouping(t *testing.T) {
	if got := FormatCurrency(-1234567.8); got != "-₱1,234,567.80" {
		t.Errorf("got %q", got)
	}
}

func TestFormatCurrencyCompact(t *testing.T) {
	tests := []struct {
		value    any
		expected string
	}{
		{1234.5, "₱1,235"},
		{1000000, "₱1,000,000"},
		{nil, "N/A"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		if got := FormatCurrencyCompact(tt.value); got != tt.expected {
			t.Errorf("FormatCurrencyCompact(%v) = %q, want %q", tt.value, got, tt.expected)
		}
	}
}

func TestFormatValue_Dates(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    any
		expected string
	}{
		{"rfc3339 string", "received_at", "2026-08-24T15:30:00Z", "Aug 24, 2026, 3:30 PM"},
		{"postgres style", "delivery_date", "2026-01-05 08:05:00", "Jan 5, 2026, 8:05 AM"},
		{"bare date", "expiry_date", "2026-03-01", "Mar 1, 2026, 12:00 AM"},
		{"native time", "received_at", time.Date(2025, 12, 31, 23, 45, 0, 0, time.UTC), "Dec 31, 2025, 11:45 PM"},
		{"unparseable returns raw", "delivery_date", "soon", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatValue(tt.field, tt.value)
			if got != tt.expected {
				t.Errorf("FormatValue(%q, %v) = %q, want %q", tt.field, tt.value, got, tt.expected)
			}
		})
	}
}

func TestFormatDate_ShortStyle(t *testing.T) {
	if got := FormatDate("2026-08-24T15:30:00Z"); got != "Aug 24, 2026" {
		t.Errorf("got %q", got)
	}
}

func TestFormatValue_Booleans(t *testing.T) {
	tests := []struct {
		field    string
		value    any
		expected string
	}{
		{"is_active", true, "Active"},
		{"is_active", false, "Inactive"},
		{"is_paid", true, "Yes"},
		{"is_paid", false, "No"},
		{"is_completed", true, "Yes"},
		{"is_featured", true, "True"},
		{"is_featured", false, "False"},
		{"is_active", "true", "Active"}, // string-typed snapshot values still resolve
	}
	for _, tt := range tests {
		if got := FormatValue(tt.field, tt.value); got != tt.expected {
			t.Errorf("FormatValue(%q, %v) = %q, want %q", tt.field, tt.value, got, tt.expected)
		}
	}
}

func TestFormatValue_Enums(t *testing.T) {
	tests := []struct {
		field    string
		value    any
		expected string
	}{
		{"status", "out_for_delivery", "Out for Delivery"},
		{"status", "pending", "Pending"},
		{"payment_method", "gcash", "GCash"},
		{"payment_method", "bank_transfer", "Bank Transfer"},
		{"pricing_type", "per_kilo", "Per Kilo"},
		{"product_status", "low_stock", "Low Stock"},
		{"status", "on_hold_pending_review", "On Hold Pending Review"}, // unmapped: humanized
	}
	for _, tt := range tests {
		if got := FormatValue(tt.field, tt.value); got != tt.expected {
			t.Errorf("FormatValue(%q, %v) = %q, want %q", tt.field, tt.value, got, tt.expected)
		}
	}
}

func TestFormatValue_Arrays(t *testing.T) {
	if got := FormatValue("branches", []any{}); got != "Empty" {
		t.Errorf("empty array: got %q, want Empty", got)
	}
	if got := FormatValue("branches", []any{"north", "south"}); got != "north, south" {
		t.Errorf("got %q", got)
	}
	if got := FormatValue("branches", []string{"east"}); got != "east" {
		t.Errorf("typed slice: got %q", got)
	}
}

func TestFormatValue_Objects(t *testing.T) {
	got := FormatValue("extra", map[string]any{"qty": 2})
	if !strings.Contains(got, `"qty": 2`) {
		t.Errorf("expected pretty JSON, got %q", got)
	}
}

func TestFormatValue_Numbers(t *testing.T) {
	if got := FormatValue("stock_kg", 12.5); got != "12.5" {
		t.Errorf("got %q", got)
	}
	if got := FormatValue("boxes", 7); got != "7" {
		t.Errorf("got %q", got)
	}
}

func TestFormatValue_Idempotent(t *testing.T) {
	first := FormatValue("total_amount", 1234.5)
	second := FormatValue("total_amount", 1234.5)
	if first != second {
		t.Errorf("formatting is not idempotent: %q vs %q", first, second)
	}
}

func TestHumanize(t *testing.T) {
	tests := []struct{ in, out string }{
		{"bank_transfer", "Bank Transfer"},
		{"per_box", "Per Box"},
		{"single", "Single"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Humanize(tt.in); got != tt.out {
			t.Errorf("Humanize(%q) = %q, want %q", tt.in, got, tt.out)
		}
	}
}
