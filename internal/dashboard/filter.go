package dashboard

import (
	"sort"
	"strings"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
)

// Apply returns the items matching every non-empty filter value. items is not modified.
func Apply(items []models.ListItem, filters []Filter, values map[string]string) []models.ListItem {
	out := make([]models.ListItem, 0, len(items))
	for _, it := range items {
		if matches(it, filters, values) {
			out = append(out, it)
		}
	}
	return out
}

func matches(it models.ListItem, filters []Filter, values map[string]string) bool {
	for _, f := range filters {
		want := strings.TrimSpace(values[f.Param])
		if want == "" {
			continue
		}
		got := text(it[f.Key])
		switch f.Kind {
		case Equals:
			if got != want {
				return false
			}
		case Contains:
			if !strings.Contains(strings.ToLower(got), strings.ToLower(want)) {
				return false
			}
		}
	}
	return true
}

// Options lists the distinct non-empty values of key, sorted.
func Options(items []models.ListItem, key string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range items {
		v := text(it[key])
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
