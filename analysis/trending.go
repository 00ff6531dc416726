package analysis

import (
	"sort"

	"factcheck/models"
)

// Trending 按 Claim 精确分组计数，仅保留 count > threshold 的分组，按次数降序取前 limit 个。
// records 需按扫描顺序（最早在前）传入；每组的结论和分数取首条记录，次数相同时保持首次出现顺序。
func Trending(records []models.Analysis, threshold, limit int) []models.TrendingClaim {
	index := make(map[string]int)
	groups := make([]models.TrendingClaim, 0)
	for _, r := range records {
		if i, ok := index[r.Claim]; ok {
			groups[i].Count++
			continue
		}
		index[r.Claim] = len(groups)
		groups = append(groups, models.TrendingClaim{
			Claim:   r.Claim,
			Count:   1,
			Verdict: r.Verdict,
			Score:   r.Score,
		})
	}

	out := groups[:0]
	for _, g := range groups {
		if g.Count > threshold {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
