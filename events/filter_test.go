package events

import (
	"reflect"
	"testing"
	"time"

	"gatherly/models"
)

func sampleEvents(t *testing.T) []models.Event {
	future := mustTime(t, "2025-09-01T10:00:00Z")
	past := mustTime(t, "2024-01-01T10:00:00Z")
	return []models.Event{
		{EventID: "1", Title: "AI Summit", Type: "conference", Location: "Bengaluru, India", EventDate: future},
		{EventID: "2", Title: "Dev Days", Type: "Workshop", Location: "Pune, India", EventDate: future},
		{EventID: "3", Title: "Retro Expo", Type: "workshop", Description: "vintage computing", Location: "Mumbai", EventDate: past},
	}
}

func TestFilterIdentityLaw(t *testing.T) {
	list := sampleEvents(t)
	got := FilterEvents(list, FilterOptions{}, time.Now())

	if !reflect.DeepEqual(got, list) {
		t.Fatalf("empty predicates must return the list unchanged, got %v", got)
	}
}

func TestFilterIdempotent(t *testing.T) {
	list := sampleEvents(t)
	opts := FilterOptions{SearchTerm: "india", Type: "workshop"}
	now := mustTime(t, "2025-01-01T00:00:00Z")

	once := FilterEvents(list, opts, now)
	twice := FilterEvents(once, opts, now)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filtering an already-filtered list changed it: %v vs %v", once, twice)
	}
}

func TestFilterSearchTermCaseInsensitive(t *testing.T) {
	list := []models.Event{{Title: "AI Summit"}, {Title: "Dev Days"}}
	got := FilterEvents(list, FilterOptions{SearchTerm: "ai"}, time.Now())

	if len(got) != 1 || got[0].Title != "AI Summit" {
		t.Fatalf("search %q returned %v, want only AI Summit", "ai", got)
	}
}

func TestFilterSearchesDescriptionAndLocation(t *testing.T) {
	list := sampleEvents(t)

	got := FilterEvents(list, FilterOptions{SearchTerm: "vintage"}, time.Now())
	if len(got) != 1 || got[0].EventID != "3" {
		t.Fatalf("description search returned %v", got)
	}

	got = FilterEvents(list, FilterOptions{SearchTerm: "pune"}, time.Now())
	if len(got) != 1 || got[0].EventID != "2" {
		t.Fatalf("location search returned %v", got)
	}
}

func TestFilterTypeEqualityIgnoresCase(t *testing.T) {
	list := sampleEvents(t)
	got := FilterEvents(list, FilterOptions{Type: "WORKSHOP"}, time.Now())

	if len(got) != 2 || got[0].EventID != "2" || got[1].EventID != "3" {
		t.Fatalf("type filter returned %v, want events 2 and 3 in order", got)
	}
}

func TestFilterFeaturedKeepsOnlyOpenEvents(t *testing.T) {
	list := sampleEvents(t)
	now := mustTime(t, "2025-01-01T00:00:00Z")

	got := FilterEvents(list, FilterOptions{FeaturedOnly: true}, now)
	if len(got) != 2 {
		t.Fatalf("featured filter returned %d events, want 2 (the past event is closed)", len(got))
	}
	for _, e := range got {
		if e.EventID == "3" {
			t.Fatal("past event leaked through the featured filter")
		}
	}
}

func TestFilterPreservesRelativeOrder(t *testing.T) {
	list := sampleEvents(t)
	got := FilterEvents(list, FilterOptions{SearchTerm: "india"}, time.Now())

	if len(got) != 2 || got[0].EventID != "1" || got[1].EventID != "2" {
		t.Fatalf("filter re-ordered results: %v", got)
	}
}

func TestTypeOptions(t *testing.T) {
	list := append(sampleEvents(t), models.Event{Title: "Untyped"})
	got := TypeOptions(list)

	want := []string{"Conference", "Workshop"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TypeOptions = %v, want %v", got, want)
	}
}
