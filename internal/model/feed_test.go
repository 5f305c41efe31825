package model

import (
	"reflect"
	"testing"
)

func TestMergeCategoryReplacesBlockAndKeepsOthers(t *testing.T) {
	prev := &Feed{
		Articles: []Article{
			{ID: "a1", Title: "old A1", Category: "Economía"},
			{ID: "b1", Title: "B1", Category: "Sociales", Summary: "keep me"},
			{ID: "a2", Title: "old A2", Category: "Economía y Finanzas"},
			{ID: "b2", Title: "B2", Category: "Seguridad Nacional"},
		},
		Hashtags: []string{"#prev"},
	}
	fresh := Feed{
		Articles: []Article{
			{ID: "n1", Title: "new 1", Category: "economia"},
			{ID: "n2", Title: "new 2", Category: ""},
		},
		Hashtags: []string{"#fresh"},
	}

	got := MergeCategory(prev, Economia, fresh)

	if len(got.Articles) != 4 {
		t.Fatalf("expected 4 articles, got %d: %+v", len(got.Articles), got.Articles)
	}
	if got.Articles[0].ID != "n1" || got.Articles[1].ID != "n2" {
		t.Fatalf("fresh articles should be prepended in order: %+v", got.Articles[:2])
	}
	for _, a := range got.Articles[:2] {
		if a.Category != string(Economia) {
			t.Fatalf("fresh article %s should be relabeled, got %q", a.ID, a.Category)
		}
	}
	if !reflect.DeepEqual(got.Articles[2], prev.Articles[1]) || !reflect.DeepEqual(got.Articles[3], prev.Articles[3]) {
		t.Fatalf("other categories must be preserved unchanged: %+v", got.Articles[2:])
	}
	if !reflect.DeepEqual(got.Hashtags, []string{"#prev"}) {
		t.Fatalf("hashtags should come from the previous feed, got %v", got.Hashtags)
	}
	// 原 Feed 不应被修改
	if prev.Articles[0].ID != "a1" || len(prev.Articles) != 4 {
		t.Fatalf("previous feed mutated: %+v", prev.Articles)
	}
}

func TestMergeCategoryWithoutPrevious(t *testing.T) {
	fresh := Feed{Articles: []Article{{ID: "x", Category: "Otro"}}, Hashtags: []string{"#t"}}
	got := MergeCategory(nil, Politica, fresh)
	if !reflect.DeepEqual(got, fresh) {
		t.Fatalf("MergeCategory(nil) = %+v, want %+v", got, fresh)
	}
}

func TestFeaturedAndSection(t *testing.T) {
	f := Feed{Articles: []Article{
		{ID: "1", Category: "Economía"},
		{ID: "2", Category: "Elecciones 2026"},
		{ID: "3", Category: "seguridad nacional"},
	}}

	a, ok := f.Featured()
	if !ok || a.ID != "2" {
		t.Fatalf("Featured() = %+v, %v; want article 2", a, ok)
	}

	sec := f.Section("Seguridad")
	if len(sec) != 1 || sec[0].ID != "3" {
		t.Fatalf("Section(Seguridad) = %+v", sec)
	}

	if _, ok := (Feed{}).Featured(); ok {
		t.Fatalf("empty feed should have no featured article")
	}

	plain := Feed{Articles: []Article{{ID: "only", Category: "Sociales"}}}
	if a, _ := plain.Featured(); a.ID != "only" {
		t.Fatalf("Featured() should fall back to the first article, got %+v", a)
	}
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
	}{
		{"", Portada},
		{"  ", Portada},
		{" Economía ", Economia},
		{"Deportes", Category("Deportes")},
	}
	for _, c := range cases {
		if got := ParseCategory(c.in); got != c.want {
			t.Fatalf("ParseCategory(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
