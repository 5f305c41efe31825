package collector

import (
	"strings"
	"testing"
	"time"

	"github.com/LJTian/PuntoPe/internal/model"
	"github.com/LJTian/PuntoPe/internal/processor"
)

func TestMockSynthesizerAggregateSpansAllSubCategories(t *testing.T) {
	m := NewMockSynthesizer(nil)
	feed := m.Synthesize(model.Portada)

	if len(feed.Articles) != 30 {
		t.Fatalf("expected 30 mock articles, got %d", len(feed.Articles))
	}
	counts := make(map[string]int)
	for _, a := range feed.Articles {
		counts[a.Category]++
	}
	for _, c := range model.SubCategories {
		if counts[string(c)] != 6 {
			t.Fatalf("category %s has %d mock articles, want 6", c, counts[string(c)])
		}
	}
	if len(feed.Hashtags) != len(MockHashtags) {
		t.Fatalf("hashtags = %v", feed.Hashtags)
	}
}

func TestMockSynthesizerSingleCategory(t *testing.T) {
	now := time.Unix(1_700_000_000, 42)
	m := NewMockSynthesizer(func() time.Time { return now })
	feed := m.Synthesize(model.Seguridad)

	if len(feed.Articles) != 6 {
		t.Fatalf("expected 6 mock articles, got %d", len(feed.Articles))
	}

	seen := make(map[string]struct{})
	for i, a := range feed.Articles {
		if !model.MatchesCategory(a.Category, model.Seguridad) {
			t.Fatalf("article %d category %q does not match", i, a.Category)
		}
		if !strings.HasPrefix(a.ID, "mock-SeguridadNacional-") {
			t.Fatalf("unexpected mock id %q", a.ID)
		}
		if a.URL != "#" || a.Source != "Punto Pe Alerta" || a.PublishedTime != "En desarrollo" {
			t.Fatalf("unexpected mock fields: %+v", a)
		}
		if a.ImageURL != processor.ImageFor("Seguridad Nacional", "Seguridad Nacional") {
			t.Fatalf("mock image should come from the enricher: %q", a.ImageURL)
		}
		if !strings.Contains(a.Title, "Seguridad Nacional") {
			t.Fatalf("mock title should name the category: %q", a.Title)
		}
		if _, dup := seen[a.ID]; dup {
			t.Fatalf("duplicate mock id %q", a.ID)
		}
		seen[a.ID] = struct{}{}
	}
}

func TestMockSynthesizerIdsDifferAcrossCalls(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	clock := func() time.Time {
		now = now.Add(time.Nanosecond)
		return now
	}
	m := NewMockSynthesizer(clock)

	a := m.Synthesize(model.Politica)
	b := m.Synthesize(model.Politica)
	if a.Articles[0].ID == b.Articles[0].ID {
		t.Fatalf("mock ids should differ across calls: %q", a.Articles[0].ID)
	}
}

func TestMockSynthesizerUnknownCategoryIsNotEmpty(t *testing.T) {
	feed := NewMockSynthesizer(nil).Synthesize(model.Category("Deportes"))
	if len(feed.Articles) != 6 || feed.Articles[0].Category != "Deportes" {
		t.Fatalf("unexpected feed for free-form category: %+v", feed.Articles)
	}
}
