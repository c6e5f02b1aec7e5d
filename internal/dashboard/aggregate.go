package dashboard

import (
	"time"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
)

// Sum adds the numeric value of keys over items. Non-numeric values are skipped.
func Sum(items []models.ListItem, keys []string) float64 {
	var total float64
	for _, it := range items {
		if n, ok := firstNumber(it, keys); ok {
			total += n
		}
	}
	return total
}

// Average is Sum divided by the item count, 0 for an empty list.
func Average(items []models.ListItem, keys []string) float64 {
	if len(items) == 0 {
		return 0
	}
	return Sum(items, keys) / float64(len(items))
}

// SameDay counts items whose date string starts with now's YYYY-MM-DD in UTC.
func SameDay(items []models.ListItem, dateKeys []string, now time.Time) int {
	today := now.UTC().Format("2006-01-02")
	n := 0
	for _, it := range items {
		d := firstText(it, dateKeys)
		if len(d) >= 10 && d[:10] == today {
			n++
		}
	}
	return n
}
