// Package aggregate groups event and attendance records for the dashboard
// charts. All sorts are stable so ties keep the order keys were first seen
// in, and the output of a given input never changes between calls.
package aggregate

import (
	"math"
	"sort"
	"strings"

	"gatherly/models"
)

const (
	DefaultTagTopK      = 8
	DefaultLocationTopK = 10
)

// Bucket is one slice of a count distribution.
type Bucket struct {
	Key        string `json:"key"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// TagDistribution counts tag occurrences across events. An event with N tags
// contributes to N buckets; the percentage base is the number of events, not
// the number of occurrences. Sorted by count descending, truncated to topK
// (<= 0 means the default of 8).
func TagDistribution(events []models.Event, topK int) []Bucket {
	if topK <= 0 {
		topK = DefaultTagTopK
	}
	buckets := countBy(events, func(e models.Event) []string { return e.Tags })
	percentages(buckets, len(events))
	if len(buckets) > topK {
		buckets = buckets[:topK]
	}
	return buckets
}

// TypeDistribution groups events by type. No truncation.
func TypeDistribution(events []models.Event) []Bucket {
	buckets := countBy(events, func(e models.Event) []string {
		if t := strings.TrimSpace(e.Type); t != "" {
			return []string{strings.ToLower(t)}
		}
		return nil
	})
	percentages(buckets, len(events))
	return buckets
}

// countBy builds count buckets in key-discovery order, then stable-sorts
// them by count descending.
func countBy(events []models.Event, keys func(models.Event) []string) []Bucket {
	index := make(map[string]int)
	var buckets []Bucket
	for _, e := range events {
		for _, k := range keys(e) {
			i, ok := index[k]
			if !ok {
				i = len(buckets)
				index[k] = i
				buckets = append(buckets, Bucket{Key: k})
			}
			buckets[i].Count++
		}
	}
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Count > buckets[j].Count })
	return buckets
}

func percentages(buckets []Bucket, total int) {
	for i := range buckets {
		buckets[i].Percentage = roundPct(buckets[i].Count, total)
	}
}

// roundPct is part/whole as a whole percentage, rounded half up; a zero
// denominator yields 0.
func roundPct(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

// CityStat is one row of the location aggregation.
type CityStat struct {
	City         string `json:"city"`
	Participants int    `json:"participants"`
	Events       int    `json:"events"`
}

// LocationAggregation groups events by city (the location up to the first
// comma), summing confirmed participants per city and counting events whose
// location mentions the city. Sorted by participant sum descending,
// truncated to topK (<= 0 means the default of 10).
func LocationAggregation(events []models.Event, topK int) []CityStat {
	if topK <= 0 {
		topK = DefaultLocationTopK
	}

	index := make(map[string]int)
	var stats []CityStat
	for _, e := range events {
		city := e.City()
		if city == "" {
			continue
		}
		key := strings.ToLower(city)
		i, ok := index[key]
		if !ok {
			i = len(stats)
			index[key] = i
			stats = append(stats, CityStat{City: city})
		}
		stats[i].Participants += e.CurrentParticipants
	}

	for i := range stats {
		for _, e := range events {
			if containsFold(e.Location, stats[i].City) {
				stats[i].Events++
			}
		}
	}

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Participants > stats[j].Participants })
	if len(stats) > topK {
		stats = stats[:topK]
	}
	return stats
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
