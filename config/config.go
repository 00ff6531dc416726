package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultConfigYAML 内置默认配置
//
//go:embed config.yaml
var DefaultConfigYAML []byte

const (
	// ScopeUser 按登录用户隔离历史记录
	ScopeUser = "user"
	// ScopeGlobal 匿名部署，历史记录全局共享
	ScopeGlobal = "global"

	DriverMySQL  = "mysql"
	DriverMemory = "memory"

	// DefaultJWTSecret 内置配置中的占位密钥，release 模式下禁止使用
	DefaultJWTSecret = "change-me"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Provider  ProviderConfig  `mapstructure:"provider"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    string `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	BaseURL string `mapstructure:"base_url"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	ExpireHours int           `mapstructure:"expire_hours"`
	ExpireTime  time.Duration `mapstructure:"-"`
}

// ProviderConfig 外部模型配置
type ProviderConfig struct {
	Name            string `mapstructure:"name"` // gemini | anthropic | openai
	APIKey          string `mapstructure:"api_key"`
	Model           string `mapstructure:"model"`
	BaseURL         string `mapstructure:"base_url"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
	MaxOutputTokens int    `mapstructure:"max_output_tokens"`
	EnableSearch    bool   `mapstructure:"enable_search"`
}

// Timeout 单次调用超时
func (p ProviderConfig) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// AnalysisConfig 核查流程配置
type AnalysisConfig struct {
	Scope             string `mapstructure:"scope"`
	MaxClaimLength    int    `mapstructure:"max_claim_length"`
	SummaryLength     int    `mapstructure:"summary_length"`
	HistoryLimit      int    `mapstructure:"history_limit"`
	TrendingLimit     int    `mapstructure:"trending_limit"`
	TrendingThreshold int    `mapstructure:"trending_threshold"`
}

// CacheConfig 热门结果缓存配置
type CacheConfig struct {
	Driver     string `mapstructure:"driver"` // memory | redis | none
	TTLSeconds int    `mapstructure:"ttl_seconds"`
	RedisURL   string `mapstructure:"redis_url"`
}

// TTL 缓存有效期
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	LoginAttempts      int `mapstructure:"login_attempts"`
	LoginWindowSeconds int `mapstructure:"login_window_seconds"`
	ClaimsPerMinute    int `mapstructure:"claims_per_minute"`
	ClaimsBurst        int `mapstructure:"claims_burst"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

var (
	// GlobalConfig 全局配置实例，仅供 SafeErrorMessage 判断运行模式
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 首先加载嵌入的默认配置
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}

	// 2. 尝试加载外部配置文件（可选，用于覆盖默认配置）
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件 %s 失败: %w", configPath, err)
		}
		log.Printf("已合并外部配置文件: %s", configPath)
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("/etc/factcheck")
		externalViper.AddConfigPath("$HOME/.factcheck")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				log.Printf("警告: 合并外部配置失败: %v", err)
			} else {
				log.Printf("已合并外部配置文件: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	// 3. 环境变量覆盖，如 FACTCHECK_PROVIDER_API_KEY
	v.SetEnvPrefix("FACTCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("provider.api_key", "FACTCHECK_PROVIDER_API_KEY", "GEMINI_API_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	GlobalConfig = &cfg
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.JWT.ExpireHours <= 0 {
		cfg.JWT.ExpireHours = 24
	}
	cfg.JWT.ExpireTime = time.Duration(cfg.JWT.ExpireHours) * time.Hour

	a := &cfg.Analysis
	if a.Scope == "" {
		a.Scope = ScopeUser
	}
	if a.MaxClaimLength <= 0 {
		a.MaxClaimLength = 5000
	}
	if a.SummaryLength <= 0 {
		a.SummaryLength = 150
	}
	if a.HistoryLimit <= 0 {
		a.HistoryLimit = 50
	}
	if a.TrendingLimit <= 0 {
		a.TrendingLimit = 5
	}
	if a.TrendingThreshold <= 0 {
		a.TrendingThreshold = 1
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverMySQL
	}
}

// Validate 校验配置组合是否合法
func (c *Config) Validate() error {
	switch c.Analysis.Scope {
	case ScopeUser, ScopeGlobal:
	default:
		return fmt.Errorf("analysis.scope 取值无效: %q", c.Analysis.Scope)
	}
	switch c.Database.Driver {
	case DriverMySQL, DriverMemory:
	default:
		return fmt.Errorf("database.driver 取值无效: %q", c.Database.Driver)
	}
	if c.Analysis.Scope == ScopeUser && c.Database.Driver != DriverMySQL {
		return fmt.Errorf("analysis.scope=user 需要 database.driver=mysql")
	}
	if c.Analysis.SummaryLength < 4 || c.Analysis.SummaryLength > 255 {
		return fmt.Errorf("analysis.summary_length 需在 [4,255] 之间")
	}
	if c.Server.Mode == "release" {
		secret := strings.TrimSpace(c.JWT.Secret)
		if secret == "" || secret == DefaultJWTSecret {
			return fmt.Errorf("release 模式下必须设置 jwt.secret（如 FACTCHECK_JWT_SECRET）")
		}
	}
	return nil
}

// UserScoped 是否按用户隔离
func (c *Config) UserScoped() bool {
	return c.Analysis.Scope == ScopeUser
}

// SafeErrorMessage release 模式下不向客户端暴露内部错误详情
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	log.Printf("当前配置:")
	log.Printf("  服务器: %s (模式: %s)", cfg.Server.Port, cfg.Server.Mode)
	if cfg.Database.Driver == DriverMySQL {
		log.Printf("  数据库: %s@%s:%s/%s", cfg.Database.Username, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	} else {
		log.Printf("  数据库: %s", cfg.Database.Driver)
	}
	log.Printf("  模型: %s/%s (搜索: %v, 密钥已配置: %v)", cfg.Provider.Name, cfg.Provider.Model, cfg.Provider.EnableSearch, cfg.Provider.APIKey != "")
	log.Printf("  隔离范围: %s, 缓存: %s", cfg.Analysis.Scope, cfg.Cache.Driver)
}
