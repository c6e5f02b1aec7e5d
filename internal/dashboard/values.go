package dashboard

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/validation"
)

// Placeholder is rendered for missing or malformed values.
const Placeholder = "—"

// text turns a scalar into its display string. Objects and arrays give "".
func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// number reads numbers and numeric strings like "50.000", "1.234,5" or "$ 1500".
func number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "$"))
		return validation.ParseNumber(s)
	}
	return 0, false
}

// first returns the first non-empty value among keys.
func first(item models.ListItem, keys []string) (any, bool) {
	for _, k := range keys {
		v, ok := item[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

func firstText(item models.ListItem, keys []string) string {
	v, ok := first(item, keys)
	if !ok {
		return ""
	}
	return text(v)
}

func firstNumber(item models.ListItem, keys []string) (float64, bool) {
	v, ok := first(item, keys)
	if !ok {
		return 0, false
	}
	return number(v)
}

func rowID(item models.ListItem) string {
	return firstText(item, []string{"_id", "id"})
}
