package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCollyPreviewerReadsOpenGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head>
<title>Fallback title</title>
<meta property="og:title" content="Congreso aprueba reforma">
<meta name="description" content="Descripción corta">
<meta property="og:image" content="https://example.com/img.jpg">
</head><body><p>cuerpo</p></body></html>`)
	}))
	defer srv.Close()

	p := NewCollyPreviewer()
	got, err := p.Preview(context.Background(), srv.URL+"/nota")
	if err != nil {
		t.Fatalf("Preview error: %v", err)
	}
	want := Preview{
		Title:       "Congreso aprueba reforma",
		Description: "Descripción corta",
		Image:       "https://example.com/img.jpg",
	}
	if got != want {
		t.Fatalf("Preview = %+v, want %+v", got, want)
	}
}

func TestCollyPreviewerRejectsNonHTTP(t *testing.T) {
	p := NewCollyPreviewer()
	for _, u := range []string{"#", "", "ftp://example.com/x", "/relative"} {
		if _, err := p.Preview(context.Background(), u); !errors.Is(err, ErrUnsupportedURL) {
			t.Fatalf("Preview(%q) err = %v, want ErrUnsupportedURL", u, err)
		}
	}
}

func TestCollyPreviewerStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewCollyPreviewer().Preview(context.Background(), srv.URL)
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusNotFound {
		t.Fatalf("Preview err = %v, want 404 StatusError", err)
	}
}

func TestTruncateRunes(t *testing.T) {
	s := strings.Repeat("ñ", 10)
	if got := truncateRunes(s, 4); got != "ññññ…" {
		t.Fatalf("truncateRunes = %q", got)
	}
	if got := truncateRunes("corto", 10); got != "corto" {
		t.Fatalf("truncateRunes should keep short text: %q", got)
	}
}
