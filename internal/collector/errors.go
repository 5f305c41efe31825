package collector

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ErrMissingCredential 未配置 API Key
var ErrMissingCredential = errors.New("api key is missing")

// StatusError 上游返回了非 2xx 状态码
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Provider, e.StatusCode, e.Body)
}

var quotaPatterns = []string{"429", "quota", "RESOURCE_EXHAUSTED"}

// IsQuotaExceeded 判断是否为配额耗尽 / 限流。处理方式与普通错误相同，只是日志级别和文章兜底文案不同
func IsQuotaExceeded(err error) bool {
	if err == nil {
		return false
	}

	var se *StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusTooManyRequests {
		return true
	}
	var oe *openai.APIError
	if errors.As(err, &oe) && oe.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	var re *openai.RequestError
	if errors.As(err, &re) && re.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}

	// Gemini 的 APIError 文本里带有状态码与 RESOURCE_EXHAUSTED，按文本匹配即可
	msg := err.Error()
	for _, p := range quotaPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
