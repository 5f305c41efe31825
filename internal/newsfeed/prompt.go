package newsfeed

import (
	"fmt"
	"strings"
	"time"

	"github.com/LJTian/PuntoPe/internal/model"
)

// 利马时间，用于提示词中的“今天”
var locLima *time.Location

func init() {
	locLima, _ = time.LoadLocation("America/Lima")
	if locLima == nil {
		locLima = time.FixedZone("PET", -5*3600)
	}
}

var (
	weekdaysES = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	monthsES   = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}
)

// longDateES 形如 "domingo, 18 de octubre de 2026"
func longDateES(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d", weekdaysES[t.Weekday()], t.Day(), monthsES[t.Month()-1], t.Year())
}

// feedPrompt 首页（无搜索词）请求五个分类各 4 条；其它情况围绕分类或搜索词请求至少 20 条
func feedPrompt(c model.Category, query string, now time.Time) string {
	local := now.In(locLima)
	date := longDateES(local)
	clock := local.Format("15:04:05")

	if c.IsAggregate() && strings.TrimSpace(query) == "" {
		var wanted strings.Builder
		for _, sc := range model.SubCategories {
			fmt.Fprintf(&wanted, "- 4 noticias de %s\n", strings.ToUpper(string(sc)))
		}
		return fmt.Sprintf(`Hoy es %s, hora %s.
Eres el editor en jefe de "Punto Pe".
Genera un DASHBOARD completo de noticias de ÚLTIMA HORA (últimas 24 horas).

NECESITO EXPLICITAMENTE:
%s
Usa Google Search para encontrar hechos reales y recientes.

Tu respuesta DEBE ser UNICAMENTE un objeto JSON válido (sin texto introductorio):
{
  "news_items": [
    {
      "headline": "Titular",
      "summary": "Resumen breve",
      "source_name": "Medio",
      "source_url": "URL",
      "relevant_category": "Política"
    }
    ... (total 20 items aprox)
  ],
  "hashtags": ["#Tag1", "#Tag2"]
}
`, date, clock, wanted.String())
	}

	topic := strings.TrimSpace(query)
	if topic == "" {
		topic = string(c)
	}
	return fmt.Sprintf(`Hoy es %s, hora %s.
Eres un editor de noticias de "Punto Pe".
Investiga las ÚLTIMAS noticias (últimas 24 horas) sobre: "%s".
Usa Google Search para encontrar información real y reciente.

Tu respuesta DEBE ser UNICAMENTE un objeto JSON válido (sin texto introductorio).
Estructura deseada:
{
  "news_items": [
    {
      "headline": "Titular corto e impactante",
      "summary": "Resumen de 20-30 palabras",
      "source_name": "Nombre del medio",
      "source_url": "URL de la noticia",
      "relevant_category": "%s"
    }
  ],
  "hashtags": ["#Tag1", "#Tag2", "#Tag3"]
}
Genera una lista exhaustiva de al menos 20 noticias relevantes para esta categoría.
`, date, clock, topic, string(c))
}

// articlePrompt 根据标题与摘要撰写完整报道；sourceContext 为来源页面摘要，可为空
func articlePrompt(a model.Article, sourceContext string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `Actúa como un periodista senior de "Punto Pe".
Escribe un artículo completo, detallado y profesional basado en este titular y resumen:

TITULAR: %s
RESUMEN: %s
FUENTE ORIGINAL REFERENCIAL: %s
CATEGORÍA: %s
`, a.Title, a.Summary, a.Source, a.Category)

	if sourceContext != "" {
		fmt.Fprintf(&sb, "CONTEXTO DE LA FUENTE (solo referencia): %s\n", sourceContext)
	}

	sb.WriteString(`
Instrucciones:
1. Redacta el contenido completo de la noticia (mínimo 300 palabras).
2. Usa un tono periodístico, neutral y formal.
3. Estructura: Introducción fuerte, Desarrollo de los hechos, Contexto político, y Conclusión.
4. Usa formato Markdown (h2 para subtítulos, negritas para énfasis).
5. NO inventes hechos falsos, apégate al contexto del resumen y usa conocimiento general de la política peruana actual para dar contexto.
6. NO incluyas enlaces en el cuerpo del texto, solo redacción.
`)
	return sb.String()
}
