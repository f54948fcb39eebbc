package aggregate

import (
	"testing"

	"gatherly/models"
)

func tagEvents() []models.Event {
	return []models.Event{
		{EventID: "1", Tags: []string{"go", "web"}, Type: "workshop", Location: "Pune, India", CurrentParticipants: 40},
		{EventID: "2", Tags: []string{"go"}, Type: "conference", Location: "Pune, India", CurrentParticipants: 60},
		{EventID: "3", Tags: []string{"ai", "web"}, Type: "workshop", Location: "Delhi, India", CurrentParticipants: 30},
		{EventID: "4", Tags: []string{"go", "ai"}, Type: "meetup", Location: "Mumbai", CurrentParticipants: 10},
	}
}

func TestTagDistributionCounts(t *testing.T) {
	buckets := TagDistribution(tagEvents(), 0)

	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	if total != 7 {
		t.Fatalf("counts sum to %d, want 7 tag occurrences", total)
	}

	if buckets[0].Key != "go" || buckets[0].Count != 3 {
		t.Fatalf("top bucket = %+v, want go with 3", buckets[0])
	}
	// go appears on 3 of 4 events: 75%.
	if buckets[0].Percentage != 75 {
		t.Errorf("go percentage = %d, want 75", buckets[0].Percentage)
	}
}

func TestTagDistributionTieBreakIsDiscoveryOrder(t *testing.T) {
	buckets := TagDistribution(tagEvents(), 0)

	// web and ai both count 2; web was discovered first.
	if buckets[1].Key != "web" || buckets[2].Key != "ai" {
		t.Fatalf("tie order = %s, %s; want web before ai", buckets[1].Key, buckets[2].Key)
	}
}

func TestTagDistributionTopK(t *testing.T) {
	buckets := TagDistribution(tagEvents(), 2)
	if len(buckets) != 2 {
		t.Fatalf("topK=2 returned %d buckets", len(buckets))
	}

	many := make([]models.Event, 0, 12)
	for i := 0; i < 12; i++ {
		many = append(many, models.Event{Tags: []string{string(rune('a' + i))}})
	}
	if got := len(TagDistribution(many, 0)); got != DefaultTagTopK {
		t.Fatalf("default topK returned %d buckets, want %d", got, DefaultTagTopK)
	}
}

func TestTagPercentagesBounded(t *testing.T) {
	events := []models.Event{
		{Tags: []string{"a"}},
		{Tags: []string{"b"}},
		{Tags: []string{"c"}},
	}
	sum := 0
	for _, b := range TagDistribution(events, 0) {
		sum += b.Percentage
	}
	// 3 x 33% with round-half-up rounding; never far above 100.
	if sum > 101 {
		t.Fatalf("percentages sum to %d, beyond rounding epsilon", sum)
	}
}

func TestTypeDistributionNoTruncation(t *testing.T) {
	buckets := TypeDistribution(tagEvents())
	if len(buckets) != 3 {
		t.Fatalf("got %d type buckets, want 3", len(buckets))
	}
	if buckets[0].Key != "workshop" || buckets[0].Count != 2 {
		t.Fatalf("top type = %+v, want workshop with 2", buckets[0])
	}
	if buckets[0].Percentage != 50 {
		t.Errorf("workshop percentage = %d, want 50", buckets[0].Percentage)
	}
}

func TestTypeDistributionSkipsEmptyAndFoldsCase(t *testing.T) {
	events := []models.Event{
		{Type: "Workshop"},
		{Type: "workshop"},
		{Type: ""},
	}
	buckets := TypeDistribution(events)
	if len(buckets) != 1 || buckets[0].Count != 2 {
		t.Fatalf("buckets = %+v, want single workshop bucket of 2", buckets)
	}
}

func TestLocationAggregation(t *testing.T) {
	stats := LocationAggregation(tagEvents(), 0)

	if stats[0].City != "Pune" {
		t.Fatalf("top city = %q, want Pune", stats[0].City)
	}
	if stats[0].Participants != 100 {
		t.Errorf("Pune participants = %d, want 100", stats[0].Participants)
	}
	if stats[0].Events != 2 {
		t.Errorf("Pune events = %d, want 2", stats[0].Events)
	}

	for _, s := range stats {
		if s.City == "India" {
			t.Fatal("city token must stop at the first comma")
		}
	}
}

func TestLocationAggregationTopK(t *testing.T) {
	stats := LocationAggregation(tagEvents(), 1)
	if len(stats) != 1 || stats[0].City != "Pune" {
		t.Fatalf("topK=1 returned %+v", stats)
	}
}

func TestDistributionsOfEmptyInput(t *testing.T) {
	if got := TagDistribution(nil, 0); len(got) != 0 {
		t.Errorf("TagDistribution(nil) = %v", got)
	}
	if got := TypeDistribution(nil); len(got) != 0 {
		t.Errorf("TypeDistribution(nil) = %v", got)
	}
	if got := LocationAggregation(nil, 0); len(got) != 0 {
		t.Errorf("LocationAggregation(nil) = %v", got)
	}
}
