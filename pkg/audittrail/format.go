package audittrail

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// The business runs on Philippine pesos. Currency is a fixed assumption here,
// not configuration — see the label maps below for the same stance on enums.
const pesoSign = "₱"

const (
	dateTimeLayout  = "Jan 2, 2006, 3:04 PM"
	dateOnlyLayout  = "Jan 2, 2006"
	notAvailable    = "N/A"
	emptyArrayLabel = "Empty"
)

// Enum label maps, one per field. A closed, rarely-changing set that is best
// kept as data; unmapped values fall back to Humanize.
var (
	orderStatusLabels = map[string]string{
		"pending":          "Pending",
		"confirmed":        "Confirmed",
		"preparing":        "Preparing",
		"out_for_delivery": "Out for Delivery",
		"delivered":        "Delivered",
		"cancelled":        "Cancelled",
	}
	paymentMethodLabels = map[string]string{
		"cash":          "Cash",
		"gcash":         "GCash",
		"bank_transfer": "Bank Transfer",
	}
	pricingTypeLabels = map[string]string{
		"per_box":  "Per Box",
		"per_kilo": "Per Kilo",
	}
	productStatusLabels = map[string]string{
		"in_stock":     "In Stock",
		"low_stock":    "Low Stock",
		"out_of_stock": "Out of Stock",
	}
	roleLabels = map[string]string{
		"super_admin": "Super Admin",
		"admin":       "Admin",
		"staff":       "Staff",
	}

	enumLabels = map[string]map[string]string{
		"status":         orderStatusLabels,
		"payment_method": paymentMethodLabels,
		"pricing_type":   pricingTypeLabels,
		"product_status": productStatusLabels,
	}
)

// FormatValue renders a snapshot value as a human-readable string, dispatching
// on DetectFieldType. Nil always renders as "N/A" — missing data must never
// show up as an empty string or "null". Unparseable values fall back to their
// raw stringification; this function never fails.
func FormatValue(field string, value any) string {
	if value == nil {
		return notAvailable
	}

	switch DetectFieldType(field, value) {
	case TypeCurrency:
		return FormatCurrency(value)
	case TypeDate:
		return FormatDateTime(value)
	case TypeBoolean:
		return formatBoolean(field, value)
	case TypeEnum:
		return EnumLabel(field, stringify(value))
	case TypeArray:
		return formatArray(value)
	case TypeObject:
		return formatObject(value)
	case TypeNumber:
		return stringify(value)
	default:
		return stringify(value)
	}
}

// FormatCurrency renders a peso amount with grouped thousands and exactly two
// decimals, e.g. "₱1,234.50". Strings are parsed; anything non-numeric is
// returned as-is rather than failing.
func FormatCurrency(value any) string {
	if value == nil {
		return notAvailable
	}
	n, ok := toFloat(value)
	if !ok {
		return stringify(value)
	}
	return pesoAmount(strconv.FormatFloat(n, 'f', 2, 64))
}

// FormatCurrencyCompact is the space-constrained variant used in chart labels:
// peso glyph, grouped thousands, no decimals.
func FormatCurrencyCompact(value any) string {
	if value == nil {
		return notAvailable
	}
	n, ok := toFloat(value)
	if !ok {
		return stringify(value)
	}
	return pesoAmount(strconv.FormatFloat(math.Round(n), 'f', 0, 64))
}

// pesoAmount places the sign ahead of the currency symbol: "-₱1,500.00".
func pesoAmount(fixed string) string {
	if strings.HasPrefix(fixed, "-") {
		return "-" + pesoSign + groupThousands(fixed[1:])
	}
	return pesoSign + groupThousands(fixed)
}

// FormatDateTime renders a timestamp as "Jan 2, 2006, 3:04 PM". Unparseable
// input is returned stringified instead of failing.
func FormatDateTime(value any) string {
	if value == nil {
		return notAvailable
	}
	t, ok := toTime(value)
	if !ok {
		return stringify(value)
	}
	return t.Format(dateTimeLayout)
}

// FormatDate is the shorter style used where only the calendar date matters.
func FormatDate(value any) string {
	if value == nil {
		return notAvailable
	}
	t, ok := toTime(value)
	if !ok {
		return stringify(value)
	}
	return t.Format(dateOnlyLayout)
}

// EnumLabel looks up the label for a coded enum value on the given field,
// falling back to Humanize for unmapped values.
func EnumLabel(field, value string) string {
	if m, ok := enumLabels[strings.ToLower(field)]; ok {
		if label, ok := m[value]; ok {
			return label
		}
	}
	return Humanize(value)
}

// RoleLabel returns the display label for an admin role.
func RoleLabel(role string) string {
	if label, ok := roleLabels[role]; ok {
		return label
	}
	return Humanize(role)
}

// Humanize turns a snake_case identifier into a title-cased label:
// "bank_transfer" -> "Bank Transfer".
func Humanize(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Boolean labels depend on what the field means: activation flags read as
// Active/Inactive, payment and completion flags as Yes/No.
func formatBoolean(field string, value any) string {
	truthy := isTruthy(value)
	name := strings.ToLower(field)
	switch {
	case strings.Contains(name, "active"):
		if truthy {
			return "Active"
		}
		return "Inactive"
	case strings.Contains(name, "paid"), strings.Contains(name, "completed"):
		if truthy {
			return "Yes"
		}
		return "No"
	default:
		if truthy {
			return "True"
		}
		return "False"
	}
}

func formatArray(value any) string {
	items, ok := value.([]any)
	if !ok {
		// Typed slices arrive via models rather than decoded JSON; normalize
		// through a JSON round trip and fall back to stringification.
		raw, err := json.Marshal(value)
		if err != nil || json.Unmarshal(raw, &items) != nil {
			return stringify(value)
		}
	}
	if len(items) == 0 {
		return emptyArrayLabel
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = stringify(item)
	}
	return strings.Join(parts, ", ")
}

// Object-valued fields are rare and mainly debugging display, so pretty JSON
// is an acceptable fallback.
func formatObject(value any) string {
	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return stringify(value)
	}
	return string(raw)
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return notAvailable
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		n, err := t.Float64()
		return n, err == nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// Timestamp formats seen in snapshot data: RFC3339 from the API layer,
// Postgres text output, and bare dates.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

func isTruthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "t" || t == "1"
	default:
		if n, ok := toFloat(v); ok {
			return n != 0
		}
	}
	return false
}

// groupThousands inserts commas into the integer part of a fixed-point
// decimal string produced by strconv.FormatFloat.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := b.String() + frac
	if neg {
		return "-" + out
	}
	return out
}
