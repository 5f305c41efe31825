package collector

import (
	"fmt"
	"strings"
	"time"

	"github.com/LJTian/PuntoPe/internal/model"
	"github.com/LJTian/PuntoPe/internal/processor"
)

const (
	mockItemsPerCategory = 6
	mockSource           = "Punto Pe Alerta"
	mockPublishedTime    = "En desarrollo"
)

// MockHashtags 服务降级时的热门标签
var MockHashtags = []string{"#AltaDemanda", "#Actualizando", "#PuntoPeEnVivo", "#AlertaInformativa"}

// MockSynthesizer 没有实时数据也没有旧缓存时，生成带有降级提示的占位新闻，保证页面不空
type MockSynthesizer struct {
	now func() time.Time
}

func NewMockSynthesizer(now func() time.Time) *MockSynthesizer {
	if now == nil {
		now = time.Now
	}
	return &MockSynthesizer{now: now}
}

// Synthesize 首页为五个分类各生成 6 条；单个分类只生成该分类的 6 条
func (m *MockSynthesizer) Synthesize(c model.Category) model.Feed {
	categories := []model.Category{c}
	if c.IsAggregate() {
		categories = model.SubCategories
	}

	// id 里带上纳秒时间戳，重复调用也不会撞 key
	stamp := m.now().UnixNano()
	articles := make([]model.Article, 0, len(categories)*mockItemsPerCategory)
	for _, cat := range categories {
		name := string(cat)
		compact := strings.Join(strings.Fields(name), "")
		for i := 1; i <= mockItemsPerCategory; i++ {
			articles = append(articles, model.Article{
				ID:            fmt.Sprintf("mock-%s-%d-%d", compact, i, stamp),
				Title:         fmt.Sprintf("Cobertura en desarrollo: %s en el Perú", name),
				Summary:       fmt.Sprintf("Estamos experimentando una alta demanda en nuestros servidores de IA. Mostrando contenido preliminar sobre %s. La información detallada se actualizará automáticamente en breve.", name),
				Source:        mockSource,
				URL:           "#",
				ImageURL:      processor.ImageFor(name, name),
				Category:      name,
				PublishedTime: mockPublishedTime,
			})
		}
	}

	return model.Feed{
		Articles: articles,
		Hashtags: append([]string(nil), MockHashtags...),
	}
}
