package processor

import (
	"strings"
	"unicode/utf16"
)

// 生成端不返回图片，这里按关键词把新闻映射到固定的图片池
var (
	poolCongreso = []string{
		"https://images.unsplash.com/photo-1555848962-6e79363ec58f?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1577962917302-cd874c4e31d2?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1541872703-74c5963631df?auto=format&fit=crop&q=80&w=800",
	}
	poolPalacio = []string{
		"https://images.unsplash.com/photo-1529108190281-9a4f620bc2d8?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1569937756447-e2845e6f9d95?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1590942109862-95d13e6252d5?auto=format&fit=crop&q=80&w=800",
	}
	poolJusticia = []string{
		"https://images.unsplash.com/photo-1589829085413-56de8ae18c73?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1505664194779-8beaceb93744?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1589994965851-a08a09c96962?auto=format&fit=crop&q=80&w=800",
	}
	poolEconomia = []string{
		"https://images.unsplash.com/photo-1611974765270-ca1258634369?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1526304640581-d334cdbbf45e?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1518186285589-2f7649de83e0?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1554224155-6726b3ff858f?auto=format&fit=crop&q=80&w=800",
	}
	poolPolicia = []string{
		"https://images.unsplash.com/photo-1473186505569-9c61870c11f9?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1551882547-ff40c63fe5fa?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1606332025129-5b6f3d22c57e?auto=format&fit=crop&q=80&w=800",
	}
	poolProtesta = []string{
		"https://images.unsplash.com/photo-1642080342386-423f540a97b5?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1531324916406-07d15d999016?auto=format&fit=crop&q=80&w=800",
	}
	poolElecciones = []string{
		"https://images.unsplash.com/photo-1540910419868-474947cebacb?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1573496359142-b8d87734a5a2?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1609252553023-244b2108d01c?auto=format&fit=crop&q=80&w=800",
	}
	poolSociales = []string{
		"https://images.unsplash.com/photo-1491438590914-bc09fcaaf77a?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1517486808906-6ca8b3f04846?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1576091160399-112ba8d25d1d?auto=format&fit=crop&q=80&w=800",
	}
	poolGeneral = []string{
		"https://images.unsplash.com/photo-1504711434969-e33886168f5c?auto=format&fit=crop&q=80&w=1200",
		"https://images.unsplash.com/photo-1495020686659-d24098c20cc8?auto=format&fit=crop&q=80&w=1200",
		"https://images.unsplash.com/photo-1585829365295-ab7cd400c167?auto=format&fit=crop&q=80&w=1200",
	}
)

// imageRule 命中任意一个分类关键词或标题关键词即选中对应图片池
type imageRule struct {
	category []string
	title    []string
	pool     []string
}

// 顺序即优先级：选举、治安、社会、立法、行政、司法、经济、抗议，最后按分类兜底
var imageRules = []imageRule{
	{category: []string{"elecciones"}, title: []string{"voto", "onpe", "jne"}, pool: poolElecciones},
	{category: []string{"seguridad"}, title: []string{"policia", "crimen", "estado de emergencia"}, pool: poolPolicia},
	{category: []string{"sociales"}, title: []string{"salud", "educacion"}, pool: poolSociales},
	{title: []string{"congreso", "legislativo", "parlamento"}, pool: poolCongreso},
	{title: []string{"dina", "boluarte", "ejecutivo", "gobierno"}, pool: poolPalacio},
	{title: []string{"fiscal", "juez", "justicia", "policia"}, pool: poolJusticia},
	{title: []string{"sol", "bcr", "economia", "dolar", "mineria"}, pool: poolEconomia},
	{title: []string{"marcha", "protesta"}, pool: poolProtesta},
	{category: []string{"congreso", "política"}, pool: poolCongreso},
	{category: []string{"economia"}, pool: poolEconomia},
	{category: []string{"justicia"}, pool: poolJusticia},
}

// ImageFor 为新闻确定性地挑选一张配图：同样的标题与分类永远得到同一张图，无需持久化映射
func ImageFor(title, category string) string {
	t := strings.ToLower(title)
	c := strings.ToLower(category)

	pool := poolGeneral
	for _, r := range imageRules {
		if containsAny(c, r.category) || containsAny(t, r.title) {
			pool = r.pool
			break
		}
	}
	return pool[poolIndex(t, len(pool))]
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// poolIndex 多项式字符串哈希取模。
// 按 UTF-16 码元迭代，左移前先截断为 int32，与线上网页端的取值逐位一致，已展示过的配图不会变化。
func poolIndex(title string, n int) int {
	if title == "" {
		title = "default"
	}
	var h int64
	for _, cu := range utf16.Encode([]rune(title)) {
		h = int64(cu) + (int64(int32(h)<<5) - h)
	}
	if h < 0 {
		h = -h
	}
	return int(h % int64(n))
}
