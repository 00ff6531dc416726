package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"factcheck/analysis"
	"factcheck/cache"
	"factcheck/config"
	"factcheck/models"
	"factcheck/store"
)

// Options 核查流程参数
type Options struct {
	MaxClaimLength    int
	SummaryLength     int
	HistoryLimit      int
	TrendingLimit     int
	TrendingThreshold int
}

// OptionsFromConfig 从配置生成参数
func OptionsFromConfig(cfg config.AnalysisConfig) Options {
	return Options{
		MaxClaimLength:    cfg.MaxClaimLength,
		SummaryLength:     cfg.SummaryLength,
		HistoryLimit:      cfg.HistoryLimit,
		TrendingLimit:     cfg.TrendingLimit,
		TrendingThreshold: cfg.TrendingThreshold,
	}
}

// AnalysisService 声明核查：校验 → 调用模型 → 解析 → 去重来源 → 保存
type AnalysisService struct {
	provider Provider
	store    store.HistoryStore
	cache    cache.TrendingCache
	opts     Options
	now      func() time.Time

	// generation 每次写入后递增，扫描期间发生写入时不回填缓存
	generation atomic.Uint64
}

// NewAnalysisService 创建核查服务，cache 为 nil 时不缓存热门结果
func NewAnalysisService(provider Provider, st store.HistoryStore, tc cache.TrendingCache, opts Options) *AnalysisService {
	if tc == nil {
		tc = cache.Noop{}
	}
	return &AnalysisService{
		provider: provider,
		store:    st,
		cache:    tc,
		opts:     opts,
		now:      time.Now,
	}
}

// Submit 核查一条声明。任一步失败立即返回，不保存任何记录。
func (s *AnalysisService) Submit(ctx context.Context, claimText string, ownerID *uint) (*models.Analysis, error) {
	claim, err := analysis.ValidateClaim(claimText, s.opts.MaxClaimLength)
	if err != nil {
		return nil, err
	}

	reply, err := s.provider.Analyze(ctx, claim)
	if err != nil {
		log.Printf("调用模型 %s 失败: %v", s.provider.Name(), err)
		return nil, err
	}

	assessment, err := analysis.Normalize(reply.Text)
	if err != nil {
		logResponseError(err)
		return nil, err
	}
	if assessment.VerdictCoerced || assessment.ScoreClamped {
		log.Printf("模型输出已修正: verdict=%s(修正:%v) score=%d(截断:%v)",
			assessment.Verdict, assessment.VerdictCoerced, assessment.Score, assessment.ScoreClamped)
	}

	explanation := sanitizeText(assessment.Explanation)
	if explanation == "" {
		err := &analysis.ResponseError{Kind: analysis.ErrIncompleteResponse, Reason: "explanation is empty after sanitizing", Raw: reply.Text}
		logResponseError(err)
		return nil, err
	}

	sources := analysis.DedupeSources(reply.Attributions)
	for i := range sources {
		sources[i].Title = sanitizeText(sources[i].Title)
	}

	rec := &models.Analysis{
		OwnerID:     ownerID,
		Claim:       analysis.Summarize(claim, s.opts.SummaryLength),
		FullClaim:   claim,
		Verdict:     assessment.Verdict,
		Score:       assessment.Score,
		Explanation: explanation,
		Sources:     sources,
		CreatedAt:   s.now(),
	}
	if err := s.store.Create(ctx, rec); err != nil {
		log.Printf("保存核查记录失败，本次结果丢失: %v", err)
		return nil, asPersistence(err)
	}
	s.invalidate(ctx)
	return rec, nil
}

// Get 查询单条记录
func (s *AnalysisService) Get(ctx context.Context, id string, ownerID *uint) (*models.Analysis, error) {
	rec, err := s.store.Get(ctx, id, ownerID)
	if err != nil {
		return nil, asPersistence(err)
	}
	return rec, nil
}

// History 最近的核查记录，最新在前
func (s *AnalysisService) History(ctx context.Context, ownerID *uint) ([]models.Analysis, error) {
	list, err := s.store.ListRecent(ctx, ownerID, s.opts.HistoryLimit)
	if err != nil {
		return nil, asPersistence(err)
	}
	return list, nil
}

// Delete 物理删除记录，不存在时返回 analysis.ErrNotFound
func (s *AnalysisService) Delete(ctx context.Context, id string, ownerID *uint) error {
	if err := s.store.DeleteByID(ctx, id, ownerID); err != nil {
		return asPersistence(err)
	}
	s.invalidate(ctx)
	return nil
}

// Trending 出现多次的声明，按次数降序
func (s *AnalysisService) Trending(ctx context.Context) ([]models.TrendingClaim, error) {
	if claims, ok := s.cache.Get(ctx); ok {
		return claims, nil
	}
	gen := s.generation.Load()
	records, err := s.store.ScanForTrending(ctx)
	if err != nil {
		return nil, asPersistence(err)
	}
	claims := analysis.Trending(records, s.opts.TrendingThreshold, s.opts.TrendingLimit)
	if s.generation.Load() == gen {
		s.cache.Set(ctx, claims)
	}
	return claims, nil
}

func (s *AnalysisService) invalidate(ctx context.Context) {
	s.generation.Add(1)
	s.cache.Invalidate(ctx)
}

// asPersistence 存储层未分类的错误统一归为 ErrPersistence
func asPersistence(err error) error {
	if errors.Is(err, analysis.ErrNotFound) || errors.Is(err, analysis.ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %v", analysis.ErrPersistence, err)
}

func logResponseError(err error) {
	var re *analysis.ResponseError
	if errors.As(err, &re) {
		log.Printf("解析模型回复失败: %v; 原始回复: %s", err, truncate(re.Raw, 2000))
		return
	}
	log.Printf("解析模型回复失败: %v", err)
}
