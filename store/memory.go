package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"factcheck/analysis"
	"factcheck/models"

	"github.com/google/uuid"
)

// MemoryHistoryStore 进程内存储，用于匿名部署和测试，重启后数据丢失
type MemoryHistoryStore struct {
	mu      sync.RWMutex
	records []models.Analysis
}

// NewMemoryHistoryStore 创建内存存储
func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{}
}

func (s *MemoryHistoryStore) Create(ctx context.Context, rec *models.Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, clone(*rec))
	return nil
}

func (s *MemoryHistoryStore) Get(ctx context.Context, id string, ownerID *uint) (*models.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id && owns(r, ownerID) {
			out := clone(r)
			return &out, nil
		}
	}
	return nil, analysis.ErrNotFound
}

func (s *MemoryHistoryStore) ListRecent(ctx context.Context, ownerID *uint, limit int) ([]models.Analysis, error) {
	s.mu.RLock()
	list := make([]models.Analysis, 0, len(s.records))
	// 倒序追加，时间相同时后写入的在前
	for i := len(s.records) - 1; i >= 0; i-- {
		if owns(s.records[i], ownerID) {
			list = append(list, clone(s.records[i]))
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (s *MemoryHistoryStore) DeleteByID(ctx context.Context, id string, ownerID *uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id && owns(r, ownerID) {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return analysis.ErrNotFound
}

func (s *MemoryHistoryStore) ScanForTrending(ctx context.Context) ([]models.Analysis, error) {
	s.mu.RLock()
	list := make([]models.Analysis, 0, len(s.records))
	for _, r := range s.records {
		list = append(list, clone(r))
	}
	s.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func owns(r models.Analysis, ownerID *uint) bool {
	if ownerID == nil {
		return true
	}
	return r.OwnerID != nil && *r.OwnerID == *ownerID
}

func clone(r models.Analysis) models.Analysis {
	if r.Sources != nil {
		r.Sources = append([]models.Source(nil), r.Sources...)
	}
	if r.OwnerID != nil {
		id := *r.OwnerID
		r.OwnerID = &id
	}
	return r
}
