package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Verdict 核查结论
type Verdict string

const (
	VerdictReal      Verdict = "Real"
	VerdictFake      Verdict = "Fake"
	VerdictDisputed  Verdict = "Disputed"
	VerdictUncertain Verdict = "Uncertain"
)

// Verdicts 全部合法结论（顺序固定）
var Verdicts = []Verdict{VerdictReal, VerdictFake, VerdictDisputed, VerdictUncertain}

// ParseVerdict 不区分大小写匹配结论枚举，未命中返回 false
func ParseVerdict(s string) (Verdict, bool) {
	s = strings.TrimSpace(s)
	for _, v := range Verdicts {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	return "", false
}

// Source 引用来源
type Source struct {
	Title string `json:"title,omitempty"`
	URI   string `json:"uri"`
}

// Analysis 单次声明核查记录
type Analysis struct {
	ID          string    `json:"_id" gorm:"primaryKey;size:36"`
	OwnerID     *uint     `json:"user,omitempty" gorm:"index:idx_analyses_owner_created,priority:1"` // 匿名部署时为空
	Claim       string    `json:"claim" gorm:"size:255;not null;index"`                               // 截断后的展示文本
	FullClaim   string    `json:"fullClaim" gorm:"type:text;not null"`
	Verdict     Verdict   `json:"verdict" gorm:"size:16;not null"`
	Score       int       `json:"score" gorm:"not null"`
	Explanation string    `json:"explanation" gorm:"type:text;not null"`
	Sources     []Source  `json:"sources" gorm:"serializer:json;type:text"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index:idx_analyses_created_at,sort:desc;index:idx_analyses_owner_created,priority:2,sort:desc"`
}

// TableName 设置表名
func (Analysis) TableName() string {
	return "analyses"
}

// BeforeCreate 创建前分配不透明 ID
func (a *Analysis) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// TrendingClaim 热门声明聚合结果
type TrendingClaim struct {
	Claim   string  `json:"_id"`
	Count   int     `json:"count"`
	Verdict Verdict `json:"verdict"`
	Score   int     `json:"score"`
}
