package store

import (
	"context"
	"errors"
	"fmt"

	"factcheck/analysis"
	"factcheck/models"

	"gorm.io/gorm"
)

// GormHistoryStore 基于 gorm 的记录存储
type GormHistoryStore struct {
	db *gorm.DB
}

// NewGormHistoryStore 创建 gorm 存储
func NewGormHistoryStore(db *gorm.DB) *GormHistoryStore {
	return &GormHistoryStore{db: db}
}

func (s *GormHistoryStore) scoped(ctx context.Context, ownerID *uint) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Analysis{})
	if ownerID != nil {
		q = q.Where("owner_id = ?", *ownerID)
	}
	return q
}

func (s *GormHistoryStore) Create(ctx context.Context, rec *models.Analysis) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("%w: 保存核查记录失败: %v", analysis.ErrPersistence, err)
	}
	return nil
}

func (s *GormHistoryStore) Get(ctx context.Context, id string, ownerID *uint) (*models.Analysis, error) {
	var rec models.Analysis
	err := s.scoped(ctx, ownerID).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, analysis.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: 查询核查记录失败: %v", analysis.ErrPersistence, err)
	}
	return &rec, nil
}

func (s *GormHistoryStore) ListRecent(ctx context.Context, ownerID *uint, limit int) ([]models.Analysis, error) {
	list := make([]models.Analysis, 0)
	q := s.scoped(ctx, ownerID).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("%w: 查询历史记录失败: %v", analysis.ErrPersistence, err)
	}
	return list, nil
}

func (s *GormHistoryStore) DeleteByID(ctx context.Context, id string, ownerID *uint) error {
	q := s.db.WithContext(ctx).Where("id = ?", id)
	if ownerID != nil {
		q = q.Where("owner_id = ?", *ownerID)
	}
	res := q.Delete(&models.Analysis{})
	if res.Error != nil {
		return fmt.Errorf("%w: 删除核查记录失败: %v", analysis.ErrPersistence, res.Error)
	}
	if res.RowsAffected == 0 {
		return analysis.ErrNotFound
	}
	return nil
}

func (s *GormHistoryStore) ScanForTrending(ctx context.Context) ([]models.Analysis, error) {
	list := make([]models.Analysis, 0)
	err := s.db.WithContext(ctx).
		Model(&models.Analysis{}).
		Select("id", "claim", "verdict", "score", "created_at").
		Order("created_at ASC").
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("%w: 扫描记录失败: %v", analysis.ErrPersistence, err)
	}
	return list, nil
}
