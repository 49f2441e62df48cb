package listctl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dheerendra45/news-analyzer/internal/models"
)

// Chip is one active filter shown above a list.
type Chip struct {
	Key   string
	Value string
	Label string
}

var dateLabels = map[string]string{
	"7d":  "Last 7 days",
	"30d": "Last 30 days",
	"90d": "Last 90 days",
}

var sortLabels = map[string]string{
	"newest":   "Newest first",
	"oldest":   "Oldest first",
	"rpi-high": "Highest RPI",
	"rpi-low":  "Lowest RPI",
	"jobs":     "Most jobs affected",
}

// ChipLabel returns the display text of a filter value.
func ChipLabel(key, value string) string {
	switch key {
	case "tier":
		return models.Tier(value).Label()
	case "date_filter":
		if l, ok := dateLabels[value]; ok {
			return l
		}
		return value
	case "sort_by":
		if l, ok := sortLabels[value]; ok {
			return l
		}
		return value
	case "search":
		return fmt.Sprintf("%q", value)
	case "status":
		if value == "" {
			return value
		}
		return strings.ToUpper(value[:1]) + value[1:]
	default:
		return value
	}
}

// chips lists filters that are set and differ from their default, sorted
// by key.
func chips(filters, defaults map[string]string) []Chip {
	var out []Chip
	for k, v := range filters {
		if v == "" || defaults[k] == v {
			continue
		}
		out = append(out, Chip{Key: k, Value: v, Label: ChipLabel(k, v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
