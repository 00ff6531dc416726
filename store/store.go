package store

import (
	"context"

	"factcheck/models"
)

// HistoryStore 核查记录持久化。
// ownerID 为 nil 表示不按用户过滤（匿名部署）。
// 未找到记录时返回 analysis.ErrNotFound，其他存储错误包装为 analysis.ErrPersistence。
type HistoryStore interface {
	Create(ctx context.Context, rec *models.Analysis) error
	Get(ctx context.Context, id string, ownerID *uint) (*models.Analysis, error)
	ListRecent(ctx context.Context, ownerID *uint, limit int) ([]models.Analysis, error)
	DeleteByID(ctx context.Context, id string, ownerID *uint) error
	// ScanForTrending 按创建时间升序返回全部记录
	ScanForTrending(ctx context.Context) ([]models.Analysis, error)
}
