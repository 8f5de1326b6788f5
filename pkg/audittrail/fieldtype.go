// Package audittrail turns raw audit rows — before/after JSON snapshots plus
// free-form metadata — into human-readable change descriptions, timeline groups
// and CSV exports. Every function here is total: malformed input degrades to a
// visible placeholder instead of an error, because the audit trail must stay
// informative even on bad data.
package audittrail

import (
	"encoding/json"
	"reflect"
	"strings"
)

// FieldType is the semantic classification of a snapshot field, used to pick a
// formatting strategy.
type FieldType string

const (
	TypeCurrency FieldType = "currency"
	TypeDate     FieldType = "date"
	TypeBoolean  FieldType = "boolean"
	TypeEnum     FieldType = "enum"
	TypeArray    FieldType = "array"
	TypeObject   FieldType = "object"
	TypeNumber   FieldType = "number"
	TypeText     FieldType = "text"
)

// Field names mapped to enum label tables. Exact-match only; anything else
// falls through to number/text detection.
var enumFieldNames = map[string]bool{
	"status":         true,
	"payment_method": true,
	"pricing_type":   true,
	"product_status": true,
}

// DetectFieldType classifies a field by name and value. Rules apply in priority
// order and the first match wins; unknown fields never error, they land on
// TypeText. Pure function.
func DetectFieldType(field string, value any) FieldType {
	name := strings.ToLower(field)

	switch {
	case strings.Contains(name, "amount"),
		strings.Contains(name, "price"),
		strings.Contains(name, "total"),
		strings.Contains(name, "discount"):
		return TypeCurrency
	case strings.Contains(name, "date"), strings.HasSuffix(name, "_at"):
		return TypeDate
	case isBool(value), strings.Contains(name, "is_"), strings.Contains(name, "has_"):
		return TypeBoolean
	case isArray(value):
		return TypeArray
	case isObject(value):
		return TypeObject
	case enumFieldNames[name]:
		return TypeEnum
	case isNumber(value):
		return TypeNumber
	default:
		return TypeText
	}
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return true
	}
	return false
}

// isArray covers []any from decoded JSON plus typed slices handed in directly
// (e.g. []string branch lists read off a model).
func isArray(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.([]any); ok {
		return true
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

func isObject(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(map[string]any); ok {
		return true
	}
	return reflect.TypeOf(v).Kind() == reflect.Map
}
