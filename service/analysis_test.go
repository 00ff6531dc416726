package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"factcheck/analysis"
	"factcheck/cache"
	"factcheck/models"
	"factcheck/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	reply *Reply
	err   error
	calls int
	last  string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Analyze(ctx context.Context, claim string) (*Reply, error) {
	f.calls++
	f.last = claim
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

type failingStore struct {
	*store.MemoryHistoryStore
}

func (failingStore) Create(context.Context, *models.Analysis) error {
	return errors.New("disk full")
}

func testOptions() Options {
	return Options{MaxClaimLength: 5000, SummaryLength: 150, HistoryLimit: 50, TrendingLimit: 5, TrendingThreshold: 1}
}

func moonReply() *Reply {
	return &Reply{
		Text: "Sure!\n```json\n{\"verdict\":\"Fake\",\"score\":97,\"explanation\":\"No scientific evidence [1].\"}\n```",
		Attributions: []analysis.Attribution{
			{URI: "https://nasa.gov", Title: "NASA"},
			{URI: "https://nasa.gov", Title: "NASA duplicate"},
			{Title: "no uri"},
		},
	}
}

func TestAnalysisService_SubmitEndToEnd(t *testing.T) {
	p := &fakeProvider{reply: moonReply()}
	st := store.NewMemoryHistoryStore()
	svc := NewAnalysisService(p, st, nil, testOptions())
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	owner := uint(7)
	rec, err := svc.Submit(context.Background(), "  The moon is made of cheese  ", &owner)
	require.NoError(t, err)

	assert.Equal(t, 1, p.calls)
	assert.Equal(t, "The moon is made of cheese", p.last)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, models.VerdictFake, rec.Verdict)
	assert.Equal(t, 97, rec.Score)
	assert.Equal(t, "No scientific evidence [1].", rec.Explanation)
	assert.Equal(t, []models.Source{{Title: "NASA", URI: "https://nasa.gov"}}, rec.Sources)
	assert.Equal(t, "The moon is made of cheese", rec.Claim)
	assert.Equal(t, "The moon is made of cheese", rec.FullClaim)
	assert.Equal(t, fixed, rec.CreatedAt)
	require.NotNil(t, rec.OwnerID)
	assert.Equal(t, owner, *rec.OwnerID)

	stored, err := svc.Get(context.Background(), rec.ID, &owner)
	require.NoError(t, err)
	assert.Equal(t, rec.Sources, stored.Sources)
	assert.Equal(t, rec.Explanation, stored.Explanation)
}

func TestAnalysisService_SubmitTruncatesSummary(t *testing.T) {
	p := &fakeProvider{reply: moonReply()}
	svc := NewAnalysisService(p, store.NewMemoryHistoryStore(), nil, testOptions())

	long := strings.Repeat("claim ", 60)
	rec, err := svc.Submit(context.Background(), long, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, len([]rune(rec.Claim)), 150)
	assert.True(t, strings.HasSuffix(rec.Claim, "..."))
	assert.Equal(t, strings.TrimSpace(long), rec.FullClaim)
	assert.Nil(t, rec.OwnerID)
}

func TestAnalysisService_SubmitInvalidInput(t *testing.T) {
	p := &fakeProvider{reply: moonReply()}
	st := store.NewMemoryHistoryStore()
	svc := NewAnalysisService(p, st, nil, testOptions())

	for _, in := range []string{"", "   ", strings.Repeat("x", 5001)} {
		_, err := svc.Submit(context.Background(), in, nil)
		assert.ErrorIs(t, err, analysis.ErrInvalidInput)
	}
	assert.Equal(t, 0, p.calls)

	_, err := svc.Submit(context.Background(), strings.Repeat("x", 5000), nil)
	assert.NoError(t, err)
}

func TestAnalysisService_SubmitFailuresDoNotPersist(t *testing.T) {
	tests := []struct {
		name    string
		reply   *Reply
		err     error
		wantErr error
	}{
		{name: "no json", reply: &Reply{Text: "I think this is false."}, wantErr: analysis.ErrMalformedResponse},
		{name: "missing score", reply: &Reply{Text: `{"verdict":"Fake","explanation":"x"}`}, wantErr: analysis.ErrIncompleteResponse},
		{name: "only markup", reply: &Reply{Text: `{"verdict":"Fake","score":5,"explanation":"<script>alert(1)</script>"}`}, wantErr: analysis.ErrIncompleteResponse},
		{name: "provider down", err: analysis.ErrProviderUnavailable, wantErr: analysis.ErrProviderUnavailable},
		{name: "provider empty", err: analysis.ErrEmptyProviderResponse, wantErr: analysis.ErrEmptyProviderResponse},
		{name: "not configured", err: analysis.ErrProviderConfiguration, wantErr: analysis.ErrProviderConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{reply: tt.reply, err: tt.err}
			st := store.NewMemoryHistoryStore()
			svc := NewAnalysisService(p, st, nil, testOptions())

			_, err := svc.Submit(context.Background(), "The moon is made of cheese", nil)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 1, p.calls)

			history, err := svc.History(context.Background(), nil)
			require.NoError(t, err)
			assert.Empty(t, history)
		})
	}
}

func TestAnalysisService_SubmitPersistenceError(t *testing.T) {
	p := &fakeProvider{reply: moonReply()}
	svc := NewAnalysisService(p, failingStore{store.NewMemoryHistoryStore()}, nil, testOptions())

	_, err := svc.Submit(context.Background(), "The moon is made of cheese", nil)
	assert.ErrorIs(t, err, analysis.ErrPersistence)
}

func TestAnalysisService_SanitizesModelText(t *testing.T) {
	p := &fakeProvider{reply: &Reply{
		Text:         `{"verdict":"Real","score":80,"explanation":"<b>Confirmed</b> by NASA & ESA [1]."}`,
		Attributions: []analysis.Attribution{{URI: "https://esa.int", Title: "<i>ESA</i>"}},
	}}
	svc := NewAnalysisService(p, store.NewMemoryHistoryStore(), nil, testOptions())

	rec, err := svc.Submit(context.Background(), "claim", nil)
	require.NoError(t, err)
	assert.Equal(t, "Confirmed by NASA & ESA [1].", rec.Explanation)
	assert.Equal(t, "ESA", rec.Sources[0].Title)
}

func TestAnalysisService_DeleteAndHistory(t *testing.T) {
	p := &fakeProvider{reply: moonReply()}
	svc := NewAnalysisService(p, store.NewMemoryHistoryStore(), nil, testOptions())
	ctx := context.Background()

	rec, err := svc.Submit(ctx, "A", nil)
	require.NoError(t, err)

	err = svc.Delete(ctx, "00000000-0000-0000-0000-000000000000", nil)
	assert.ErrorIs(t, err, analysis.ErrNotFound)
	history, _ := svc.History(ctx, nil)
	assert.Len(t, history, 1)

	require.NoError(t, svc.Delete(ctx, rec.ID, nil))
	history, _ = svc.History(ctx, nil)
	assert.Empty(t, history)
}

func TestAnalysisService_Trending(t *testing.T) {
	p := &fakeProvider{reply: moonReply()}
	tc := cache.NewMemoryCache(time.Minute)
	svc := NewAnalysisService(p, store.NewMemoryHistoryStore(), tc, testOptions())
	ctx := context.Background()

	for _, c := range []string{"A", "A", "B"} {
		_, err := svc.Submit(ctx, c, nil)
		require.NoError(t, err)
	}

	got, err := svc.Trending(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Claim)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, models.VerdictFake, got[0].Verdict)

	// 新增记录后缓存失效
	_, err = svc.Submit(ctx, "B", nil)
	require.NoError(t, err)
	got, err = svc.Trending(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

// scanHookStore 在扫描热门数据时执行 hook，模拟扫描期间的并发写入
type scanHookStore struct {
	*store.MemoryHistoryStore
	hook func()
}

func (s *scanHookStore) ScanForTrending(ctx context.Context) ([]models.Analysis, error) {
	records, err := s.MemoryHistoryStore.ScanForTrending(ctx)
	if s.hook != nil {
		hook := s.hook
		s.hook = nil
		hook()
	}
	return records, err
}

func TestAnalysisService_TrendingSkipsCacheOnConcurrentWrite(t *testing.T) {
	p := &fakeProvider{reply: moonReply()}
	tc := cache.NewMemoryCache(time.Minute)
	st := &scanHookStore{MemoryHistoryStore: store.NewMemoryHistoryStore()}
	svc := NewAnalysisService(p, st, tc, testOptions())
	ctx := context.Background()

	for _, c := range []string{"A", "A"} {
		_, err := svc.Submit(ctx, c, nil)
		require.NoError(t, err)
	}

	// 扫描完成后、回填缓存前又写入一条
	st.hook = func() {
		_, err := svc.Submit(ctx, "B", nil)
		require.NoError(t, err)
	}
	got, err := svc.Trending(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, cached := tc.Get(ctx)
	assert.False(t, cached, "扫描期间有写入时不应缓存旧结果")

	// 下一次读取重新扫描，能看到新写入
	_, err = svc.Submit(ctx, "B", nil)
	require.NoError(t, err)
	got, err = svc.Trending(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, cached = tc.Get(ctx)
	assert.True(t, cached)
}
