package main

import (
	"fmt"
	"io"
	"log"

	"factcheck/cache"
	"factcheck/config"
	"factcheck/database"
	"factcheck/service"
	"factcheck/store"

	"gorm.io/gorm"
)

// app 运行期依赖，serve 与 check 共用
type app struct {
	cfg     *config.Config
	db      *gorm.DB
	cache   cache.TrendingCache
	service *service.AnalysisService
}

func newApp(cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}

	var st store.HistoryStore
	if cfg.Database.Driver == config.DriverMySQL {
		db, err := database.Open(cfg)
		if err != nil {
			return nil, fmt.Errorf("数据库初始化失败: %w", err)
		}
		a.db = db
		st = store.NewGormHistoryStore(db)
	} else {
		log.Println("警告: 使用内存存储，重启后核查记录会丢失")
		st = store.NewMemoryHistoryStore()
	}

	tc, err := cache.New(cfg.Cache)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("缓存初始化失败: %w", err)
	}
	a.cache = tc

	provider, err := service.NewProvider(cfg.Provider)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("模型初始化失败: %w", err)
	}
	if cfg.Provider.APIKey == "" {
		log.Printf("警告: 未配置 %s 密钥，核查请求将返回 503", provider.Name())
	}

	a.service = service.NewAnalysisService(provider, st, tc, service.OptionsFromConfig(cfg.Analysis))
	return a, nil
}

func (a *app) close() {
	if c, ok := a.cache.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Printf("关闭缓存失败: %v", err)
		}
	}
	if err := database.Close(a.db); err != nil {
		log.Printf("关闭数据库失败: %v", err)
	}
}
