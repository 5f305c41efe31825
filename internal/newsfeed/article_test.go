package newsfeed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/LJTian/PuntoPe/internal/collector"
	"github.com/LJTian/PuntoPe/internal/model"
)

var testArticle = model.Article{
	ID:       "news-3-1760797800000",
	Title:    "Congreso aprueba reforma electoral",
	Summary:  "El pleno aprobó en primera votación la reforma.",
	Source:   "El Comercio",
	URL:      "https://elcomercio.pe/politica/reforma",
	Category: "Política",
}

type stubPreviewer struct {
	preview collector.Preview
	err     error
	calls   int
}

func (s *stubPreviewer) Preview(_ context.Context, _ string) (collector.Preview, error) {
	s.calls++
	return s.preview, s.err
}

func TestGenerateBodySuccess(t *testing.T) {
	gen := &fakeGenerator{out: "## Introducción\n\nTexto generado."}
	b := NewBodyGenerator(gen, nil)

	got := b.GenerateBody(context.Background(), testArticle)
	if got != "## Introducción\n\nTexto generado." {
		t.Fatalf("GenerateBody = %q", got)
	}

	req := gen.reqs[0]
	if req.WebSearch {
		t.Fatalf("article body should not request web search")
	}
	for _, want := range []string{testArticle.Title, testArticle.Summary, testArticle.Source, testArticle.Category, "mínimo 300 palabras", "NO inventes hechos"} {
		if !strings.Contains(req.Prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, req.Prompt)
		}
	}
}

func TestGenerateBodyFallbacks(t *testing.T) {
	cases := []struct {
		name string
		gen  collector.Generator
		want string
	}{
		{"missing credential", nil, bodyMissingCredential},
		{"empty response", &fakeGenerator{out: "  "}, bodyEmpty},
		{"quota", &fakeGenerator{err: errors.New("googleapi: Error 429: quota exceeded")}, "## Alta Demanda de Servicios"},
		{"generic", &fakeGenerator{err: errors.New("connection reset")}, "## Error de Generación"},
	}

	for _, c := range cases {
		b := NewBodyGenerator(c.gen, nil)
		got := b.GenerateBody(context.Background(), testArticle)
		if !strings.Contains(got, c.want) {
			t.Fatalf("%s: GenerateBody = %q, want it to contain %q", c.name, got, c.want)
		}
		if c.name == "quota" || c.name == "generic" {
			if !strings.Contains(got, testArticle.Summary) {
				t.Fatalf("%s: fallback should embed the original summary: %q", c.name, got)
			}
		}
	}
}

func TestGenerateBodyUsesSourcePreview(t *testing.T) {
	gen := &fakeGenerator{out: "texto"}
	prev := &stubPreviewer{preview: collector.Preview{Description: "Descripción de la fuente"}}
	b := NewBodyGenerator(gen, prev)

	b.GenerateBody(context.Background(), testArticle)
	if !strings.Contains(gen.reqs[0].Prompt, "CONTEXTO DE LA FUENTE (solo referencia): Descripción de la fuente") {
		t.Fatalf("prompt should include source context:\n%s", gen.reqs[0].Prompt)
	}

	// 预览失败或链接不是 http 时照常生成
	prev.err = errors.New("timeout")
	if got := b.GenerateBody(context.Background(), testArticle); got != "texto" {
		t.Fatalf("preview failure should be ignored, got %q", got)
	}

	calls := prev.calls
	mock := testArticle
	mock.URL = "#"
	b.GenerateBody(context.Background(), mock)
	if prev.calls != calls {
		t.Fatalf("non-http urls should not be previewed")
	}
}
