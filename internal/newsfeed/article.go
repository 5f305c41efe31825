package newsfeed

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/LJTian/PuntoPe/internal/collector"
	"github.com/LJTian/PuntoPe/internal/model"
)

const (
	bodyMissingCredential = "API Key no disponible para generar el artículo completo."
	bodyEmpty             = "No se pudo generar el artículo."
)

const bodyHighDemandTemplate = `
## Alta Demanda de Servicios

Lo sentimos, nuestros servidores de redacción con IA están experimentando una carga inusual en este momento.

**Resumen Original:**
%s

El sistema reintentará conectar en breve para ofrecerle el análisis completo.
`

const bodyErrorTemplate = `
## Error de Generación

Lo sentimos, no pudimos redactar el artículo completo en este momento.

**Resumen Original:**
%s

Inténtelo de nuevo en unos minutos.
`

// BodyGenerator 为单篇新闻生成完整正文，不做缓存；失败时返回带原摘要的模板文案
type BodyGenerator struct {
	generator collector.Generator       // nil 表示没有配置 API Key
	previewer collector.SourcePreviewer // 可选
}

func NewBodyGenerator(generator collector.Generator, previewer collector.SourcePreviewer) *BodyGenerator {
	return &BodyGenerator{generator: generator, previewer: previewer}
}

// GenerateBody 永远返回一段 Markdown 文本
func (b *BodyGenerator) GenerateBody(ctx context.Context, a model.Article) string {
	if b.generator == nil {
		return bodyMissingCredential
	}

	text, err := b.generator.Generate(ctx, collector.Request{
		Prompt: articlePrompt(a, b.sourceContext(ctx, a)),
	})
	if err != nil {
		log.Printf("error: generating full article %s: %v", a.ID, err)
		if collector.IsQuotaExceeded(err) {
			return fmt.Sprintf(bodyHighDemandTemplate, a.Summary)
		}
		return fmt.Sprintf(bodyErrorTemplate, a.Summary)
	}

	if strings.TrimSpace(text) == "" {
		return bodyEmpty
	}
	return text
}

// sourceContext 抓取来源页面摘要作为参考，失败时忽略
func (b *BodyGenerator) sourceContext(ctx context.Context, a model.Article) string {
	if b.previewer == nil || !strings.HasPrefix(a.URL, "http") {
		return ""
	}
	p, err := b.previewer.Preview(ctx, a.URL)
	if err != nil {
		log.Printf("warn: source preview %s: %v", a.URL, err)
		return ""
	}
	return p.Description
}
