package store

import (
	"context"
	"testing"
	"time"

	"factcheck/analysis"
	"factcheck/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func newRecord(claim string, owner *uint, at time.Time) *models.Analysis {
	return &models.Analysis{
		OwnerID:     owner,
		Claim:       claim,
		FullClaim:   claim + " (full)",
		Verdict:     models.VerdictFake,
		Score:       90,
		Explanation: "because [1]",
		Sources:     []models.Source{{Title: "NASA", URI: "https://nasa.gov"}},
		CreatedAt:   at,
	}
}

func TestMemoryHistoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryHistoryStore()
	ctx := context.Background()

	rec := newRecord("The moon is made of cheese", nil, time.Now())
	require.NoError(t, s.Create(ctx, rec))
	require.NotEmpty(t, rec.ID)

	got, err := s.Get(ctx, rec.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, rec.Claim, got.Claim)
	assert.Equal(t, rec.FullClaim, got.FullClaim)
	assert.Equal(t, rec.Verdict, got.Verdict)
	assert.Equal(t, rec.Score, got.Score)
	assert.Equal(t, rec.Explanation, got.Explanation)
	assert.Equal(t, rec.Sources, got.Sources)

	// 返回副本，修改不影响存储
	got.Sources[0].URI = "https://changed.example"
	again, err := s.Get(ctx, rec.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://nasa.gov", again.Sources[0].URI)
}

func TestMemoryHistoryStore_ListRecent(t *testing.T) {
	s := NewMemoryHistoryStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Create(ctx, newRecord("old", uintPtr(1), base)))
	require.NoError(t, s.Create(ctx, newRecord("new", uintPtr(1), base.Add(2*time.Hour))))
	require.NoError(t, s.Create(ctx, newRecord("other", uintPtr(2), base.Add(time.Hour))))

	all, err := s.ListRecent(ctx, nil, 50)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"new", "other", "old"}, claims(all))

	mine, err := s.ListRecent(ctx, uintPtr(1), 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, claims(mine))

	limited, err := s.ListRecent(ctx, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, claims(limited))
}

func TestMemoryHistoryStore_Delete(t *testing.T) {
	s := NewMemoryHistoryStore()
	ctx := context.Background()

	rec := newRecord("A", uintPtr(1), time.Now())
	require.NoError(t, s.Create(ctx, rec))

	// 不存在的 ID
	assert.ErrorIs(t, s.DeleteByID(ctx, "00000000-0000-0000-0000-000000000000", nil), analysis.ErrNotFound)
	// 其他用户不可删除
	assert.ErrorIs(t, s.DeleteByID(ctx, rec.ID, uintPtr(2)), analysis.ErrNotFound)

	list, _ := s.ListRecent(ctx, nil, 50)
	assert.Len(t, list, 1)

	require.NoError(t, s.DeleteByID(ctx, rec.ID, uintPtr(1)))
	_, err := s.Get(ctx, rec.ID, nil)
	assert.ErrorIs(t, err, analysis.ErrNotFound)
	assert.ErrorIs(t, s.DeleteByID(ctx, rec.ID, nil), analysis.ErrNotFound)
}

func TestMemoryHistoryStore_ScanForTrending(t *testing.T) {
	s := NewMemoryHistoryStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Create(ctx, newRecord("second", nil, base.Add(time.Minute))))
	require.NoError(t, s.Create(ctx, newRecord("first", nil, base)))

	list, err := s.ScanForTrending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, claims(list))
}

func claims(list []models.Analysis) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.Claim)
	}
	return out
}
