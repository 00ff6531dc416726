package analysis

import (
	"strings"

	"factcheck/models"
)

// Attribution 提供方返回的原始引用信息，字段均可能为空
type Attribution struct {
	URI   string
	Title string
}

// DedupeSources 按 URI 去重并保持首次出现顺序，丢弃 URI 为空的条目
func DedupeSources(attrs []Attribution) []models.Source {
	out := make([]models.Source, 0, len(attrs))
	seen := make(map[string]struct{}, len(attrs))
	for _, a := range attrs {
		if strings.TrimSpace(a.URI) == "" {
			continue
		}
		if _, dup := seen[a.URI]; dup {
			continue
		}
		seen[a.URI] = struct{}{}
		out = append(out, models.Source{Title: a.Title, URI: a.URI})
	}
	return out
}
