package events

import (
	"sort"
	"strings"
	"time"

	"gatherly/models"
	"gatherly/utils"
)

// FilterOptions are the three listing-page predicates, ANDed together.
type FilterOptions struct {
	SearchTerm   string
	Type         string
	FeaturedOnly bool
}

// FilterEvents applies the predicates over the list, preserving relative
// order. A blank search term and a blank type each match everything;
// FeaturedOnly keeps only events currently open for registration.
func FilterEvents(list []models.Event, opts FilterOptions, now time.Time) []models.Event {
	search := strings.TrimSpace(opts.SearchTerm)
	typ := strings.TrimSpace(opts.Type)

	out := make([]models.Event, 0, len(list))
	for _, e := range list {
		if search != "" &&
			!utils.ContainsIgnoreCase(e.Title, search) &&
			!utils.ContainsIgnoreCase(e.Description, search) &&
			!utils.ContainsIgnoreCase(e.Location, search) {
			continue
		}
		if typ != "" && !strings.EqualFold(e.Type, typ) {
			continue
		}
		if opts.FeaturedOnly && !IsRegistrationOpen(e, now) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// TypeOptions derives the filter vocabulary from the current list:
// lower-cased, deduplicated, non-empty, then capitalized and sorted for
// display. Matching stays case-insensitive whatever the display casing.
func TypeOptions(list []models.Event) []string {
	seen := make(map[string]bool)
	var types []string
	for _, e := range list {
		t := strings.ToLower(strings.TrimSpace(e.Type))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		types = append(types, utils.Capitalize(t))
	}
	sort.Strings(types)
	return types
}
